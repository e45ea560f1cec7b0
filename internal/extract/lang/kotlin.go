package lang

import "github.com/smacker/go-tree-sitter/kotlin"

var Kotlin = &Spec{
	Name:       "kotlin",
	Extensions: []string{"kt", "kts"},
	Sitter:     kotlin.GetLanguage,
	Symbols: NodeTable{
		"class_declaration":    "class",
		"object_declaration":   "class",
		"function_declaration": "function",
		"property_declaration": "property",
		"import_header":        "import",
	},
	Containers: map[string]bool{
		"class_declaration":    true,
		"object_declaration":   true,
		"function_declaration": true,
	},
	CommentNodeType:  "comment",
	CallNodeTypes:    []string{"call_expression"},
	ImportNodeTypes:  []string{"import_header"},
	TypeRefNodeTypes: []string{"delegation_specifier", "user_type"},
	ExtendsNodeTypes: []string{"delegation_specifier"},
	IsExported: func(name string) bool {
		return len(name) > 0 // "private" is a modifier keyword, not name-encoded.
	},
}
