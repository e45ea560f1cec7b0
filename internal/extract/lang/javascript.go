package lang

import "github.com/smacker/go-tree-sitter/javascript"

// JavaScript grounded on providers/javascript/config.go's alias map
// (function_declaration, class_declaration, method_definition,
// variable_declarator, import_statement).
var JavaScript = &Spec{
	Name:       "javascript",
	Extensions: []string{"js", "jsx", "mjs", "cjs"},
	Shebangs:   []string{"node"},
	Sitter:     javascript.GetLanguage,
	Symbols: NodeTable{
		"function_declaration": "function",
		"function_expression":  "function",
		"arrow_function":       "function",
		"method_definition":    "method",
		"class_declaration":    "class",
		"field_definition":     "field",
		"variable_declarator":  "variable",
	},
	Containers: map[string]bool{
		"function_declaration": true,
		"function_expression":  true,
		"arrow_function":       true,
		"method_definition":    true,
		"class_declaration":    true,
	},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"call_expression"},
	ImportNodeTypes: []string{"import_statement"},
	// JavaScript carries no type annotations; "uses-type" relationships
	// come only from class_heritage (extends/implements clauses).
	TypeRefNodeTypes: []string{"class_heritage"},
	ExtendsNodeTypes: []string{"class_heritage"},
	IsExported: func(name string) bool {
		return name != "" // JS has no casing visibility convention; default open.
	},
}
