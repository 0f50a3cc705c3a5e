package idgen

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDv7_Format(t *testing.T) {
	id := UUIDv7()()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("UUIDv7: invalid uuid %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("UUIDv7: got version %d, want 7", parsed.Version())
	}
}

func TestUUIDv7_Uniqueness(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := gen()
		if _, ok := seen[id]; ok {
			t.Fatalf("UUIDv7: duplicate at iteration %d", i)
		}
		seen[id] = struct{}{}
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("load_", Sequence(""))
	if got := gen(); got != "load_1" {
		t.Fatalf("Prefixed: got %q, want %q", got, "load_1")
	}
}

func TestSequence(t *testing.T) {
	gen := Sequence("l")
	for _, want := range []string{"l1", "l2", "l3"} {
		if got := gen(); got != want {
			t.Fatalf("Sequence: got %q, want %q", got, want)
		}
	}
}

func TestDefault_Prefix(t *testing.T) {
	id := Default()
	if !strings.HasPrefix(id, "load_") {
		t.Fatalf("Default: expected load_ prefix, got %q", id)
	}
	if _, err := uuid.Parse(strings.TrimPrefix(id, "load_")); err != nil {
		t.Fatalf("Default: suffix is not a uuid: %v", err)
	}
}
