package lang

import "github.com/smacker/go-tree-sitter/csharp"

var CSharp = &Spec{
	Name:       "csharp",
	Extensions: []string{"cs"},
	Sitter:     csharp.GetLanguage,
	Symbols: NodeTable{
		"class_declaration":       "class",
		"interface_declaration":   "interface",
		"struct_declaration":      "struct",
		"enum_declaration":        "enum",
		"method_declaration":      "method",
		"constructor_declaration": "method",
		"property_declaration":    "property",
		"field_declaration":       "field",
		"namespace_declaration":   "namespace",
		"using_directive":         "import",
	},
	Containers: map[string]bool{
		"class_declaration":       true,
		"interface_declaration":   true,
		"struct_declaration":      true,
		"enum_declaration":        true,
		"method_declaration":      true,
		"constructor_declaration": true,
		"namespace_declaration":   true,
	},
	CommentNodeType:     "comment",
	CallNodeTypes:       []string{"invocation_expression"},
	ImportNodeTypes:     []string{"using_directive"},
	TypeRefNodeTypes:    []string{"base_list", "identifier"},
	ExtendsNodeTypes:    []string{"base_list"},
	ImplementsNodeTypes: []string{"base_list"}, // grammar doesn't distinguish base class from interfaces syntactically
	IsExported: func(name string) bool {
		return len(name) > 0 // visibility modifier isn't inspected; default open.
	},
}
