package lang

import "github.com/smacker/go-tree-sitter/c"

// C: tree-sitter-c nests the declared name inside a function_declarator,
// not in a flat "name" field, so function/variable names come through as
// the full declarator text (e.g. "add(int a, int b)") rather than a bare
// identifier -- an accepted best-effort limitation for this grammar
// (spec.md §1 Non-goals: "extraction is best-effort per grammar").
var C = &Spec{
	Name:       "c",
	Extensions: []string{"c", "h"},
	Sitter:     c.GetLanguage,
	Symbols: NodeTable{
		"function_definition": "function",
		"struct_specifier":    "struct",
		"enum_specifier":      "enum",
		"union_specifier":     "struct",
		"field_declaration":   "field",
		"preproc_include":     "import",
	},
	Containers: map[string]bool{
		"function_definition": true,
		"struct_specifier":    true,
	},
	NameField: map[string]string{
		"function_definition": "declarator",
		"struct_specifier":    "name",
		"enum_specifier":      "name",
	},
	CommentNodeType:  "comment",
	CallNodeTypes:    []string{"call_expression"},
	ImportNodeTypes:  []string{"preproc_include"},
	TypeRefNodeTypes: []string{"type_identifier"},
	IsExported: func(name string) bool {
		return name != "" // C visibility is a storage-class keyword, not name-encoded.
	},
}
