package lang

import "github.com/smacker/go-tree-sitter/cpp"

// C++ extends C's grammar with classes/namespaces; same declarator
// best-effort limitation as C applies to function names.
var Cpp = &Spec{
	Name:       "cpp",
	Extensions: []string{"cpp", "cc", "cxx", "hpp", "hh", "hxx"},
	Sitter:     cpp.GetLanguage,
	Symbols: NodeTable{
		"function_definition":  "function",
		"class_specifier":      "class",
		"struct_specifier":     "struct",
		"enum_specifier":       "enum",
		"namespace_definition": "namespace",
		"field_declaration":    "field",
		"preproc_include":      "import",
	},
	Containers: map[string]bool{
		"function_definition":  true,
		"class_specifier":      true,
		"struct_specifier":     true,
		"namespace_definition": true,
	},
	NameField: map[string]string{
		"function_definition": "declarator",
	},
	CommentNodeType:     "comment",
	CallNodeTypes:       []string{"call_expression"},
	ImportNodeTypes:     []string{"preproc_include"},
	TypeRefNodeTypes:    []string{"base_class_clause", "type_identifier"},
	ExtendsNodeTypes:    []string{"base_class_clause"},
	ImplementsNodeTypes: nil,
	IsExported: func(name string) bool {
		return name != ""
	},
}
