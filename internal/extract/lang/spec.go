// Package lang declares one Spec per supported grammar: the data tables
// that parameterize internal/extract/base's shared walker. This mirrors
// the teacher's base.Provider + LanguageConfig split (providers/base,
// providers/golang, providers/python, ...), generalized from "find query
// matches" to "emit symbols/identifiers/relationships".
package lang

import sitter "github.com/smacker/go-tree-sitter"

// NodeTable maps a tree-sitter node type to the symbol kind it declares.
// A node type absent from the table is not a symbol boundary and is
// simply walked through.
type NodeTable map[string]string // node type -> extract.SymbolKind value

// Spec is the per-language configuration the shared extractor base walks
// against. Every field is data, not behavior, so new languages are added
// by constructing a Spec literal (see golang.go, python.go, generic.go)
// rather than by writing a new tree-walking algorithm.
type Spec struct {
	// Name is the canonical language tag stored on Symbol.Language and
	// used as the registry key.
	Name string

	// Extensions lists the file extensions (without leading dot) that
	// dispatch to this Spec.
	Extensions []string

	// Shebangs lists interpreter-line substrings (e.g. "python3") used to
	// disambiguate extension-less scripts.
	Shebangs []string

	// Sitter returns the compiled tree-sitter grammar. A function instead
	// of a value so grammars are only loaded for languages actually seen.
	Sitter func() *sitter.Language

	// Symbols maps container/declaration node types to the SymbolKind
	// they introduce.
	Symbols NodeTable

	// Containers lists node types that push a new scope frame (their
	// emitted symbol becomes the parent of symbols nested inside).
	Containers map[string]bool

	// NameField is the tree-sitter field name holding a node's
	// identifier, keyed by node type; "name" is assumed when absent.
	NameField map[string]string

	// CommentNodeType is the node type for source comments, used for
	// doc-comment capture by scanning upward through contiguous
	// siblings of this type.
	CommentNodeType string

	// CallNodeTypes lists node types representing call expressions, used
	// for identifier-occurrence extraction and the "calls" relationship.
	CallNodeTypes []string

	// ImportNodeTypes lists node types representing import/include
	// statements.
	ImportNodeTypes []string

	// TypeRefNodeTypes lists node types representing a reference to a
	// type name (extends/implements clauses, type annotations, generics).
	TypeRefNodeTypes []string

	// ExtendsNodeTypes / ImplementsNodeTypes narrow TypeRefNodeTypes
	// further for the "extends" / "implements" relationship kinds, when
	// the grammar distinguishes them syntactically (e.g. Java/Kotlin).
	ExtendsNodeTypes    []string
	ImplementsNodeTypes []string

	// IsExported reports whether a declared name should be considered
	// publicly visible, used to compute Symbol.Visibility and feed the
	// confidence score.
	IsExported func(name string) bool
}

// FuncNameField returns the configured name field for nodeType, defaulting
// to "name".
func (s *Spec) FuncNameField(nodeType string) string {
	if s.NameField == nil {
		return "name"
	}
	if f, ok := s.NameField[nodeType]; ok {
		return f
	}
	return "name"
}
