package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator produces deterministic session identifiers for tests.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
}

// NewIDGenerator yields "<prefix>_<n>" identifiers. When prefix is empty,
// "user" is used.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "user"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s_%d", g.prefix, g.counter)
}

// NextFunc exposes Next for injection into services.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// CodeGenerator hands out scripted meeting codes, then sequential ones
// ("CODE01", "CODE02", ...) once the script is exhausted.
type CodeGenerator struct {
	mu      sync.Mutex
	script  []string
	counter int
}

// NewCodeGenerator returns a generator that first yields script in order.
func NewCodeGenerator(script ...string) *CodeGenerator {
	return &CodeGenerator{script: append([]string(nil), script...)}
}

// Next returns the next meeting code.
func (g *CodeGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.script) > 0 {
		code := g.script[0]
		g.script = g.script[1:]
		return code
	}
	g.counter++
	return fmt.Sprintf("CODE%02d", g.counter%100)
}

// NextFunc exposes Next for injection into services.
func (g *CodeGenerator) NextFunc() func() string {
	return g.Next
}
