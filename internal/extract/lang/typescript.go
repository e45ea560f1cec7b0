package lang

import (
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeScript grounded on providers/typescript/config.go's alias map
// (class_declaration, interface_declaration, type_alias_declaration,
// enum_declaration, method_definition/method_signature).
var TypeScript = &Spec{
	Name:       "typescript",
	Extensions: []string{"ts"},
	Sitter:     typescript.GetLanguage,
	Symbols: NodeTable{
		"function_declaration":   "function",
		"function_expression":    "function",
		"arrow_function":         "function",
		"method_definition":      "method",
		"method_signature":       "method",
		"class_declaration":      "class",
		"interface_declaration":  "interface",
		"type_alias_declaration": "type-alias",
		"enum_declaration":       "enum",
		"enum_member":            "field",
		"public_field_definition": "property",
		"variable_declarator":    "variable",
	},
	Containers: map[string]bool{
		"function_declaration":   true,
		"function_expression":    true,
		"arrow_function":         true,
		"method_definition":      true,
		"class_declaration":      true,
		"interface_declaration":  true,
		"enum_declaration":       true,
	},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"call_expression"},
	ImportNodeTypes: []string{"import_statement"},
	TypeRefNodeTypes: []string{
		"type_annotation", "type_identifier", "extends_clause", "implements_clause",
	},
	ExtendsNodeTypes:    []string{"extends_clause"},
	ImplementsNodeTypes: []string{"implements_clause"},
	IsExported: func(name string) bool {
		return name != ""
	},
}

// TSX shares TypeScript's symbol table over the JSX-flavored grammar.
var TSX = &Spec{
	Name:             "tsx",
	Extensions:       []string{"tsx"},
	Sitter:           tsx.GetLanguage,
	Symbols:          TypeScript.Symbols,
	Containers:       TypeScript.Containers,
	CommentNodeType:  TypeScript.CommentNodeType,
	CallNodeTypes:    TypeScript.CallNodeTypes,
	ImportNodeTypes:  TypeScript.ImportNodeTypes,
	TypeRefNodeTypes: TypeScript.TypeRefNodeTypes,
	IsExported:       TypeScript.IsExported,
}
