package lang

import "github.com/smacker/go-tree-sitter/java"

// Java: class/interface/enum declarations, methods, constructors, fields,
// imports -- tree-sitter-java's standard node vocabulary.
var Java = &Spec{
	Name:       "java",
	Extensions: []string{"java"},
	Sitter:     java.GetLanguage,
	Symbols: NodeTable{
		"class_declaration":       "class",
		"interface_declaration":   "interface",
		"enum_declaration":        "enum",
		"method_declaration":      "method",
		"constructor_declaration": "method",
		"field_declaration":       "field",
		"import_declaration":      "import",
	},
	Containers: map[string]bool{
		"class_declaration":       true,
		"interface_declaration":   true,
		"enum_declaration":        true,
		"method_declaration":      true,
		"constructor_declaration": true,
	},
	CommentNodeType:     "block_comment",
	CallNodeTypes:       []string{"method_invocation"},
	ImportNodeTypes:     []string{"import_declaration"},
	TypeRefNodeTypes:    []string{"superclass", "super_interfaces", "type_identifier"},
	ExtendsNodeTypes:    []string{"superclass"},
	ImplementsNodeTypes: []string{"super_interfaces"},
	IsExported: func(name string) bool {
		return len(name) > 0 // visibility modifier isn't inspected; default open.
	},
}
