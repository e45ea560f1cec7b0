// Package extract holds the record types produced by symbol extraction --
// Symbol, Identifier, and Relationship -- and the SymbolKind/Visibility
// enumerations the whole pipeline shares. Concrete extraction logic lives
// in internal/extract/base (the shared walking/construction base) and
// internal/extract/lang (one lang.Spec per grammar).
package extract

// SymbolKind enumerates the kinds of declarations an extractor can emit,
// per spec.md §3's Symbol record.
type SymbolKind string

const (
	KindFunction     SymbolKind = "function"
	KindMethod       SymbolKind = "method"
	KindClass        SymbolKind = "class"
	KindStruct       SymbolKind = "struct"
	KindEnum         SymbolKind = "enum"
	KindInterface    SymbolKind = "interface"
	KindVariable     SymbolKind = "variable"
	KindConstant     SymbolKind = "constant"
	KindField        SymbolKind = "field"
	KindProperty     SymbolKind = "property"
	KindModule       SymbolKind = "module"
	KindNamespace    SymbolKind = "namespace"
	KindTypeAlias    SymbolKind = "type-alias"
	KindTrait        SymbolKind = "trait"
	KindMacro        SymbolKind = "macro"
	KindImport       SymbolKind = "import"
	KindParameter    SymbolKind = "parameter"
)

// Visibility enumerates symbol visibility, defaulting to Unknown when a
// grammar doesn't expose an explicit modifier.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityUnknown   Visibility = "unknown"
)

// IdentifierKind enumerates identifier-occurrence kinds (spec.md §3).
type IdentifierKind string

const (
	IdentCall            IdentifierKind = "call"
	IdentMemberAccess    IdentifierKind = "member-access"
	IdentTypeReference   IdentifierKind = "type-reference"
	IdentImport          IdentifierKind = "import"
	IdentGenericArgument IdentifierKind = "generic-argument"
)

// RelationshipKind enumerates typed edges between symbols (spec.md §3).
type RelationshipKind string

const (
	RelCalls        RelationshipKind = "calls"
	RelExtends      RelationshipKind = "extends"
	RelImplements   RelationshipKind = "implements"
	RelUsesType     RelationshipKind = "uses-type"
	RelImports      RelationshipKind = "imports"
	RelOverrides    RelationshipKind = "overrides"
	RelInstantiates RelationshipKind = "instantiates"
	RelReferences   RelationshipKind = "references"
)

// Range captures both the byte range and the line/column range of a node,
// matching spec.md §3's dual positional requirement.
type Range struct {
	StartByte uint32
	EndByte   uint32
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// Symbol is a single named declaration extracted from source.
type Symbol struct {
	ID             string
	WorkspaceID    string
	File           string
	Name           string
	Kind           SymbolKind
	Language       string
	Range          Range
	Signature      string
	DocComment     string
	ParentSymbolID string
	Scope          string
	Visibility     Visibility
	SemanticGroup  string
	Confidence     float64
	Hash           string
}

// Identifier is a lightweight reference to a name in source -- fuel for
// the cross-language tracer (internal/trace) without storing a full AST.
type Identifier struct {
	Name             string
	Kind             IdentifierKind
	File             string
	StartByte        uint32
	EndByte          uint32
	Line             int
	Col              int
	ContainingSymbol string // may be empty: occurrence is outside any scope
}

// Relationship is a typed edge between two symbols. ToSymbolID may be
// empty when the target hasn't been indexed yet; ToName always carries
// the raw identifier so resolution can happen lazily (SPEC_FULL.md Open
// Question #1).
type Relationship struct {
	FromSymbolID string
	ToSymbolID   string
	ToName       string
	Kind         RelationshipKind
	File         string
	Line         int
	Confidence   float64
}

// FileRecord mirrors spec.md §3's File record.
type FileRecord struct {
	Path        string
	Language    string
	Size        int64
	ModTime     int64 // unix millis
	Hash        string
	SymbolCount int
	WorkspaceID string
}

// Diagnostic is a non-fatal warning produced during extraction (e.g. a
// partial tree-sitter parse), satisfying spec.md §4.B's failure semantics.
type Diagnostic struct {
	File     string
	Severity string
	Message  string
}

// Result is everything one file's extraction produces.
type Result struct {
	File          FileRecord
	Symbols       []Symbol
	Identifiers   []Identifier
	Relationships []Relationship
	Diagnostics   []Diagnostic
}
