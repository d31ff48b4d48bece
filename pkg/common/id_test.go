package common

import (
	"strconv"
	"strings"
	"testing"
)

func TestGenerateIDFormat(t *testing.T) {
	id := GenerateID()
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 {
		t.Fatalf("id %q missing separator", id)
	}
	if _, err := strconv.ParseInt(parts[0], 10, 64); err != nil {
		t.Fatalf("id prefix %q is not a millisecond timestamp", parts[0])
	}
	if len(parts[1]) != idSuffixLen {
		t.Fatalf("id suffix %q length = %d, want %d", parts[1], len(parts[1]), idSuffixLen)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := GenerateID()
		if seen[id] {
			t.Fatalf("duplicate id after %d generations: %s", i, id)
		}
		seen[id] = true
	}
}
