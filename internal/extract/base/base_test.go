package base

import (
	"context"
	"testing"

	"github.com/oxhq/julie/internal/extract"
	"github.com/oxhq/julie/internal/extract/lang"
)

func TestExtractGoFunction(t *testing.T) {
	src := []byte("package util\n\n// Add sums two ints.\nfunc Add(a, b int) int {\n\treturn a + b\n}\n")

	e := New(lang.Go)
	res, err := e.Extract(context.Background(), "ws1", "util.go", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(res.Symbols) == 0 {
		t.Fatalf("expected at least one symbol")
	}
	var fn *extract.Symbol
	for i := range res.Symbols {
		if res.Symbols[i].Name == "Add" {
			fn = &res.Symbols[i]
		}
	}
	if fn == nil {
		t.Fatalf("expected symbol named Add, got %+v", res.Symbols)
	}
	if fn.Kind != extract.KindFunction {
		t.Errorf("Kind = %q, want function", fn.Kind)
	}
	if fn.Visibility != extract.VisibilityPublic {
		t.Errorf("Visibility = %q, want public", fn.Visibility)
	}
	if fn.DocComment == "" {
		t.Errorf("expected doc comment to be captured")
	}
	if fn.Range.StartByte > fn.Range.EndByte {
		t.Errorf("invalid byte range: start %d > end %d", fn.Range.StartByte, fn.Range.EndByte)
	}
}

func TestExtractDeterministicID(t *testing.T) {
	src := []byte("package util\nfunc Add(a, b int) int { return a + b }\n")

	id1 := extractAddID(t, src)
	id2 := extractAddID(t, src)
	if id1 != id2 {
		t.Fatalf("expected stable id across extractions: %s vs %s", id1, id2)
	}
}

func extractAddID(t *testing.T, src []byte) string {
	t.Helper()
	e := New(lang.Go)
	res, err := e.Extract(context.Background(), "ws1", "util.go", src)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, s := range res.Symbols {
		if s.Name == "Add" {
			return s.ID
		}
	}
	t.Fatalf("Add symbol not found")
	return ""
}

func TestExtractEmptyFile(t *testing.T) {
	e := New(lang.Go)
	res, err := e.Extract(context.Background(), "ws1", "empty.go", []byte(""))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.Symbols) != 0 {
		t.Errorf("expected zero symbols for empty file, got %d", len(res.Symbols))
	}
}
