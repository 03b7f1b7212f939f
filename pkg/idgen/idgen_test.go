package idgen

import (
	"strings"
	"testing"
)

func TestGenerate_PrefixAndLength(t *testing.T) {
	id, err := Generate(NodePrefix)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.HasPrefix(id, NodePrefix) {
		t.Errorf("expected prefix %q, got %q", NodePrefix, id)
	}
	if len(id) != len(NodePrefix)+Length {
		t.Errorf("expected length %d, got %d (%q)", len(NodePrefix)+Length, len(id), id)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := Interval()
		if err != nil {
			t.Fatalf("Interval error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerate_AlphabetOnly(t *testing.T) {
	id, err := Reason()
	if err != nil {
		t.Fatalf("Reason error: %v", err)
	}
	random := strings.TrimPrefix(id, ReasonPrefix)
	for _, c := range random {
		if !strings.ContainsRune(Alphabet, c) {
			t.Errorf("unexpected character %q in id %q", c, id)
		}
	}
}
