package lang

import "github.com/smacker/go-tree-sitter/ruby"

var Ruby = &Spec{
	Name:       "ruby",
	Extensions: []string{"rb", "rake", "gemspec"},
	Shebangs:   []string{"ruby"},
	Sitter:     ruby.GetLanguage,
	Symbols: NodeTable{
		"method":          "method",
		"singleton_method": "method",
		"class":           "class",
		"module":          "module",
		"assignment":      "variable",
	},
	Containers: map[string]bool{
		"method":           true,
		"singleton_method": true,
		"class":            true,
		"module":           true,
	},
	NameField: map[string]string{
		"assignment": "left",
	},
	CommentNodeType:  "comment",
	CallNodeTypes:    []string{"call", "method_call"},
	ImportNodeTypes:  []string{"call"}, // require/require_relative surface as ordinary calls in this grammar
	TypeRefNodeTypes: []string{"superclass"},
	ExtendsNodeTypes: []string{"superclass"},
	IsExported: func(name string) bool {
		return len(name) > 0 && name[0] != '_'
	},
}
