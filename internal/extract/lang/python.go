package lang

import "github.com/smacker/go-tree-sitter/python"

// Python grounded on providers/python/config.go's alias map
// (function_definition, class_definition, assignment, import_statement,
// import_from_statement, decorator).
var Python = &Spec{
	Name:       "python",
	Extensions: []string{"py", "pyw", "pyi"},
	Shebangs:   []string{"python", "python3"},
	Sitter:     python.GetLanguage,
	Symbols: NodeTable{
		"function_definition":       "function",
		"class_definition":          "class",
		"decorated_definition":      "function",
		"assignment":                "variable",
		"import_statement":          "import",
		"import_from_statement":     "import",
	},
	Containers: map[string]bool{
		"function_definition":  true,
		"class_definition":     true,
		"decorated_definition": true,
	},
	NameField: map[string]string{
		"assignment": "left",
	},
	CommentNodeType:  "comment",
	CallNodeTypes:    []string{"call"},
	ImportNodeTypes:  []string{"import_statement", "import_from_statement"},
	TypeRefNodeTypes: []string{"type"},
	IsExported: func(name string) bool {
		return len(name) > 0 && name[0] != '_'
	},
}
