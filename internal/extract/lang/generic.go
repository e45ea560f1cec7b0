package lang

import (
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/elixir"
	"github.com/smacker/go-tree-sitter/groovy"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"
)

// The remaining ~13 languages get a best-effort, data-only Spec: a handful
// of node types mapped to the closest SymbolKind, no relationship tables
// beyond what the grammar makes trivial. spec.md §1 Non-goals: extraction
// is best-effort per grammar, deepest for the hand-tuned 12 above.

var Bash = &Spec{
	Name:       "bash",
	Extensions: []string{"sh", "bash"},
	Shebangs:   []string{"bash", "sh"},
	Sitter:     bash.GetLanguage,
	Symbols: NodeTable{
		"function_definition": "function",
		"variable_assignment": "variable",
	},
	Containers:      map[string]bool{"function_definition": true},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"command"},
	IsExported:      func(name string) bool { return len(name) > 0 },
}

var HTML = &Spec{
	Name:       "html",
	Extensions: []string{"html", "htm"},
	Sitter:     html.GetLanguage,
	Symbols: NodeTable{
		"script_element": "module",
		"style_element":  "module",
	},
	CommentNodeType: "comment",
	IsExported:      func(string) bool { return true },
}

var CSS = &Spec{
	Name:       "css",
	Extensions: []string{"css"},
	Sitter:     css.GetLanguage,
	Symbols: NodeTable{
		"rule_set":   "module",
		"media_statement": "module",
	},
	CommentNodeType: "comment",
	ImportNodeTypes: []string{"import_statement"},
	IsExported:      func(string) bool { return true },
}

var YAML = &Spec{
	Name:       "yaml",
	Extensions: []string{"yaml", "yml"},
	Sitter:     yaml.GetLanguage,
	Symbols: NodeTable{
		"block_mapping_pair": "field",
	},
	NameField:       map[string]string{"block_mapping_pair": "key"},
	CommentNodeType: "comment",
	IsExported:      func(string) bool { return true },
}

var TOML = &Spec{
	Name:       "toml",
	Extensions: []string{"toml"},
	Sitter:     toml.GetLanguage,
	Symbols: NodeTable{
		"table": "module",
		"pair":  "field",
	},
	Containers:      map[string]bool{"table": true},
	CommentNodeType: "comment",
	IsExported:      func(string) bool { return true },
}

var SQL = &Spec{
	Name:       "sql",
	Extensions: []string{"sql"},
	Sitter:     sql.GetLanguage,
	Symbols: NodeTable{
		"create_table": "struct",
	},
	CommentNodeType: "comment",
	IsExported:      func(string) bool { return true },
}

var Dockerfile = &Spec{
	Name:       "dockerfile",
	Extensions: []string{"dockerfile"},
	Shebangs:   nil,
	Sitter:     dockerfile.GetLanguage,
	Symbols: NodeTable{
		"from_instruction": "import",
	},
	CommentNodeType: "comment",
	ImportNodeTypes: []string{"from_instruction"},
	IsExported:      func(string) bool { return true },
}

var Scala = &Spec{
	Name:       "scala",
	Extensions: []string{"scala", "sc"},
	Sitter:     scala.GetLanguage,
	Symbols: NodeTable{
		"class_definition":  "class",
		"object_definition":  "class",
		"trait_definition":  "trait",
		"function_definition": "function",
		"import_declaration": "import",
	},
	Containers: map[string]bool{
		"class_definition":  true,
		"object_definition":  true,
		"trait_definition":  true,
		"function_definition": true,
	},
	CommentNodeType:  "comment",
	CallNodeTypes:    []string{"call_expression"},
	ImportNodeTypes:  []string{"import_declaration"},
	TypeRefNodeTypes: []string{"extends_clause"},
	ExtendsNodeTypes: []string{"extends_clause"},
	IsExported: func(name string) bool {
		return len(name) > 0 && name[0] != '_'
	},
}

var Swift = &Spec{
	Name:       "swift",
	Extensions: []string{"swift"},
	Sitter:     swift.GetLanguage,
	Symbols: NodeTable{
		"class_declaration":    "class",
		"protocol_declaration": "interface",
		"function_declaration": "function",
		"import_declaration":   "import",
	},
	Containers: map[string]bool{
		"class_declaration":    true,
		"protocol_declaration": true,
		"function_declaration": true,
	},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"call_expression"},
	ImportNodeTypes: []string{"import_declaration"},
	IsExported: func(name string) bool {
		return len(name) > 0 // `private`/`fileprivate` are modifiers, not name-encoded.
	},
}

var Lua = &Spec{
	Name:       "lua",
	Extensions: []string{"lua"},
	Sitter:     lua.GetLanguage,
	Symbols: NodeTable{
		"function_declaration": "function",
		"local_function":       "function",
	},
	Containers:      map[string]bool{"function_declaration": true, "local_function": true},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"function_call"},
	IsExported: func(name string) bool {
		return len(name) > 0 && name[0] != '_'
	},
}

var HCL = &Spec{
	Name:       "hcl",
	Extensions: []string{"hcl", "tf"},
	Sitter:     hcl.GetLanguage,
	Symbols: NodeTable{
		"block": "module",
	},
	Containers:      map[string]bool{"block": true},
	CommentNodeType: "comment",
	IsExported:      func(string) bool { return true },
}

var Groovy = &Spec{
	Name:       "groovy",
	Extensions: []string{"groovy", "gradle"},
	Sitter:     groovy.GetLanguage,
	Symbols: NodeTable{
		"class_declaration":  "class",
		"method_declaration": "function",
	},
	Containers:      map[string]bool{"class_declaration": true, "method_declaration": true},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"method_call"},
	IsExported:      func(name string) bool { return len(name) > 0 },
}

var Elixir = &Spec{
	Name:       "elixir",
	Extensions: []string{"ex", "exs"},
	Sitter:     elixir.GetLanguage,
	// defmodule/def surface as generic "call" nodes in this grammar rather
	// than dedicated declaration node types; best-effort name capture only.
	Symbols: NodeTable{
		"call": "function",
	},
	CommentNodeType: "comment",
	CallNodeTypes:   []string{"call"},
	IsExported: func(name string) bool {
		return len(name) > 0 && name[0] != '_'
	},
}

// All registers every Spec this package defines, hand-tuned and generic
// alike, keyed by name for internal/extract/registry to range over.
var All = []*Spec{
	Go, Python, JavaScript, TypeScript, TSX, Java, C, Cpp, Rust, Ruby, PHP, CSharp, Kotlin,
	Bash, HTML, CSS, YAML, TOML, SQL, Dockerfile, Scala, Swift, Lua, HCL, Groovy, Elixir,
}
