package testfixtures

import "testing"

func TestIDGeneratorProducesSequentialIDs(t *testing.T) {
	gen := NewIDGenerator("")

	first := gen.Next()
	second := gen.Next()

	if first != "user_1" || second != "user_2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
}

func TestCodeGeneratorReplaysScriptFirst(t *testing.T) {
	gen := NewCodeGenerator("ABC123", "ABC123")

	got := []string{gen.Next(), gen.Next(), gen.Next(), gen.Next()}
	want := []string{"ABC123", "ABC123", "CODE01", "CODE02"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	}
}
