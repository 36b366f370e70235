package application

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/persistence/memory"
)

var testNow = time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)

func newTestStore() (persistence.Store, *memory.Storage) {
	base := memory.Open()
	return persistence.Namespace(base, persistence.DefaultPrefix), base
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// steppingClock returns a now func that advances one minute per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	current := testNow
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := current
		current = current.Add(time.Minute)
		return now
	}
}

// scriptedCodes yields codes in order and then repeats the last one.
func scriptedCodes(codes ...string) func() string {
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		code := codes[0]
		if len(codes) > 1 {
			codes = codes[1:]
		}
		return code
	}
}

func hostSession() Session {
	return Session{ID: "user_host", Name: "Hana", LinkedInURL: "https://linkedin.com/in/hana", CreatedAt: testNow.UnixMilli()}
}

func guestSession() Session {
	return Session{ID: "user_guest", Name: "Gabe", LinkedInURL: "https://linkedin.com/in/gabe", CreatedAt: testNow.UnixMilli()}
}

func slot(dayOffset int, hour string) string {
	return testNow.AddDate(0, 0, dayOffset).Format("2006-01-02") + "|" + hour
}
