package lang

import "github.com/smacker/go-tree-sitter/php"

// PHP grounded on providers/php/config.go's switch-based node-type
// mapping (function_definition, method_declaration, class_declaration,
// interface_declaration, trait_declaration, namespace_use_declaration).
var PHP = &Spec{
	Name:       "php",
	Extensions: []string{"php", "phtml", "php4", "php5", "phps"},
	Sitter:     php.GetLanguage,
	Symbols: NodeTable{
		"function_definition":      "function",
		"method_declaration":       "method",
		"class_declaration":        "class",
		"interface_declaration":    "interface",
		"trait_declaration":        "trait",
		"property_declaration":     "property",
		"const_declaration":        "constant",
		"namespace_definition":     "namespace",
		"namespace_use_declaration": "import",
	},
	Containers: map[string]bool{
		"function_definition":   true,
		"method_declaration":    true,
		"class_declaration":     true,
		"interface_declaration": true,
		"trait_declaration":     true,
		"namespace_definition":  true,
	},
	CommentNodeType:     "comment",
	CallNodeTypes:        []string{"function_call_expression", "member_call_expression", "scoped_call_expression"},
	ImportNodeTypes:      []string{"namespace_use_declaration"},
	TypeRefNodeTypes:     []string{"base_clause", "class_interface_clause"},
	ExtendsNodeTypes:     []string{"base_clause"},
	ImplementsNodeTypes:  []string{"class_interface_clause"},
	IsExported: func(name string) bool {
		return len(name) > 0 && name[0] != '_'
	},
}
