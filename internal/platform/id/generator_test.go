package id

import "testing"

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator()

	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		got, err := gen.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if len(got) != 32 {
			t.Fatalf("expected 32 hex chars, got %d (%q)", len(got), got)
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("duplicate id generated: %q", got)
		}
		seen[got] = struct{}{}
	}
}
