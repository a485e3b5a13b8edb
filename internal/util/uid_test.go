package util

import (
	"strings"
	"testing"
)

func TestLocalID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := LocalID()
		if len(id) != LocalIDLength {
			t.Fatalf("LocalID length = %d, want %d", len(id), LocalIDLength)
		}
		for _, r := range id {
			if !strings.ContainsRune(shortIDChars, r) {
				t.Fatalf("LocalID %q contains invalid char %q", id, r)
			}
		}
		seen[id] = true
	}
	if len(seen) < 90 {
		t.Fatalf("too many collisions in 100 ids: %d unique", len(seen))
	}
}
