package lang

import "github.com/smacker/go-tree-sitter/rust"

// Rust: tree-sitter-rust's function_item/struct_item/impl_item family.
var Rust = &Spec{
	Name:       "rust",
	Extensions: []string{"rs"},
	Sitter:     rust.GetLanguage,
	Symbols: NodeTable{
		"function_item":      "function",
		"struct_item":        "struct",
		"enum_item":          "enum",
		"trait_item":         "trait",
		"impl_item":          "class",
		"field_declaration":  "field",
		"const_item":         "constant",
		"static_item":        "variable",
		"use_declaration":    "import",
		"macro_definition":   "macro",
	},
	Containers: map[string]bool{
		"function_item": true,
		"struct_item":   true,
		"trait_item":    true,
		"impl_item":     true,
	},
	NameField: map[string]string{
		"impl_item": "type",
	},
	CommentNodeType:     "line_comment",
	CallNodeTypes:       []string{"call_expression"},
	ImportNodeTypes:     []string{"use_declaration"},
	TypeRefNodeTypes:    []string{"trait_bounds", "type_identifier"},
	ImplementsNodeTypes: []string{"trait_bounds"},
	IsExported: func(name string) bool {
		return len(name) > 0
	},
}
