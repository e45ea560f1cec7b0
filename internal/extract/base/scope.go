package base

import "github.com/oxhq/julie/internal/extract"

// frame is one entry of the scope stack: an already-minted symbol id,
// its name, and its kind. The stack holds ids, never node pointers, so
// parent resolution is a simple lookup once a symbol is emitted
// (SPEC_FULL.md §9 "Scope stack and parent references").
type frame struct {
	id   string
	name string
	kind extract.SymbolKind
}

// scopeStack is a mutable, instance-per-extraction stack of container
// frames. It is never shared across files or goroutines.
type scopeStack struct {
	frames []frame
}

func (s *scopeStack) push(id, name string, kind extract.SymbolKind) {
	s.frames = append(s.frames, frame{id: id, name: name, kind: kind})
}

func (s *scopeStack) pop() {
	if len(s.frames) == 0 {
		return
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// parent returns the id of the top-of-stack frame, or "" at file scope.
// This becomes a new symbol's ParentSymbolID and an identifier's
// ContainingSymbol.
func (s *scopeStack) parent() string {
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1].id
}

// containingSymbol is parent() under the name identifier occurrences use.
func (s *scopeStack) containingSymbol() string { return s.parent() }

// path returns the dotted enclosing-scope path (e.g. "Outer.Inner"),
// stored on Symbol.Scope.
func (s *scopeStack) path() string {
	if len(s.frames) == 0 {
		return ""
	}
	out := s.frames[0].name
	for _, f := range s.frames[1:] {
		out += "." + f.name
	}
	return out
}
