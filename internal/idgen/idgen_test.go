package idgen

import (
	"regexp"
	"testing"
)

func TestNewRunID_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^run-[a-z0-9]{8}$`)
	for i := 0; i < 100; i++ {
		id, err := NewRunID()
		if err != nil {
			t.Fatalf("NewRunID() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("NewRunID() = %q, does not match %s", id, pattern)
		}
	}
}

func TestNewRunID_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := NewRunID()
		if err != nil {
			t.Fatalf("NewRunID() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
