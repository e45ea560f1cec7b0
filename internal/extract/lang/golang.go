package lang

import "github.com/smacker/go-tree-sitter/golang"

// Go grounded on providers/golang/config.go's node-type table
// (function_declaration, method_declaration, type_spec, var_declaration,
// const_declaration, import_declaration, field_declaration, comment).
var Go = &Spec{
	Name:       "go",
	Extensions: []string{"go"},
	Sitter:     golang.GetLanguage,
	Symbols: NodeTable{
		"function_declaration": "function",
		"method_declaration":   "method",
		"type_spec":            "struct",
		"var_spec":             "variable",
		"const_spec":           "constant",
		"field_declaration":    "field",
		"import_spec":          "import",
	},
	Containers: map[string]bool{
		"function_declaration": true,
		"method_declaration":   true,
		"type_spec":            true,
	},
	CommentNodeType:  "comment",
	CallNodeTypes:    []string{"call_expression"},
	ImportNodeTypes:  []string{"import_spec"},
	TypeRefNodeTypes: []string{"type_identifier"},
	IsExported: func(name string) bool {
		if name == "" {
			return false
		}
		r := name[0]
		return r >= 'A' && r <= 'Z'
	},
}
