package hashutil

import "testing"

func TestContentHashDeterministic(t *testing.T) {
	a := ContentHash([]byte("def add(a, b): return a + b"))
	b := ContentHash([]byte("def add(a, b): return a + b"))
	if a != b {
		t.Fatalf("expected same hash for same content, got %s vs %s", a, b)
	}
	c := ContentHash([]byte("def add(a, b): return a - b"))
	if a == c {
		t.Fatalf("expected different hash for different content")
	}
}

func TestSymbolIDStable(t *testing.T) {
	id1 := SymbolID("ws1", "util.py", "add", "def add(a, b):", 1)
	id2 := SymbolID("ws1", "util.py", "add", "def add(a, b):", 1)
	if id1 != id2 {
		t.Fatalf("symbol id must be deterministic: %s vs %s", id1, id2)
	}

	id3 := SymbolID("ws1", "util.py", "plus", "def plus(a, b):", 1)
	if id1 == id3 {
		t.Fatalf("symbol id must differ when name differs")
	}
}

func TestCanonicalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean relative", "a/b/../c", "a/c"},
		{"windows separators", `a\b\c`, "a/b/c"},
		{"dot", ".", ""},
		{"already clean", "a/b/c", "a/b/c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalizePath(tt.in); got != tt.want {
				t.Errorf("CanonicalizePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
