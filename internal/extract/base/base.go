// Package base provides the shared extractor contract of spec.md §4.B:
// given (source bytes, parse tree), produce symbols, identifiers, and
// relationships through common construction, scoping, and traversal
// helpers. Each language extractor (internal/extract/lang) supplies only
// a lang.Spec; all walking logic lives here exactly once.
//
// Grounded on providers/base/provider.go's Provider+LanguageConfig split:
// the teacher walks a tree looking for *query* matches against a single
// LanguageConfig; this extractor walks the same way but *emits* the full
// symbol/identifier/relationship triple for every matching node.
package base

import (
	"bytes"
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/julie/internal/extract"
	"github.com/oxhq/julie/internal/extract/lang"
	"github.com/oxhq/julie/internal/hashutil"
)

// Extractor walks one parsed file for one language. It carries no state
// across files: callers construct a fresh Extractor (or call Extract
// repeatedly on one, which is safe since the scope stack is reset per
// call) for each file.
type Extractor struct {
	spec   *lang.Spec
	parser *sitter.Parser
}

// New builds an Extractor bound to spec, with a parser of its own.
// registry.For calls New on every lookup, so no two callers share a parser.
func New(spec *lang.Spec) *Extractor {
	p := sitter.NewParser()
	p.SetLanguage(spec.Sitter())
	return &Extractor{spec: spec, parser: p}
}

// Extract parses source and walks it, returning everything spec.md §4.B
// requires. A parse error never aborts extraction: whatever the partial
// tree yields is still emitted, and a non-fatal diagnostic records the
// problem (spec.md §4.B "Failure semantics").
func (e *Extractor) Extract(ctx context.Context, workspaceID, path string, source []byte) (extract.Result, error) {
	tree, err := e.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return extract.Result{}, err
	}
	if tree == nil {
		return extract.Result{}, nil
	}
	defer tree.Close()

	res := extract.Result{
		File: extract.FileRecord{
			Path:     path,
			Language: e.spec.Name,
			Size:     int64(len(source)),
			Hash:     hashutil.ContentHash(source),
		},
	}

	root := tree.RootNode()
	if root.HasError() {
		res.Diagnostics = append(res.Diagnostics, extract.Diagnostic{
			File:     path,
			Severity: "warning",
			Message:  "partial parse: tree-sitter reported syntax errors",
		})
	}

	w := &walker{
		e:           e,
		workspaceID: workspaceID,
		path:        path,
		source:      source,
		scope:       &scopeStack{},
	}
	w.walk(root, &res)

	res.File.SymbolCount = len(res.Symbols)
	return res, nil
}

type walker struct {
	e           *Extractor
	workspaceID string
	path        string
	source      []byte
	scope       *scopeStack
}

// walk performs the depth-first, source-order traversal spec.md §4.B
// requires. Nodes the spec doesn't recognize are skipped without error
// by simply recursing into their children.
func (w *walker) walk(node *sitter.Node, res *extract.Result) {
	if node == nil {
		return
	}
	nodeType := node.Type()

	if kindStr, ok := w.e.spec.Symbols[nodeType]; ok {
		sym := w.emitSymbol(node, extract.SymbolKind(kindStr))
		res.Symbols = append(res.Symbols, sym)

		pushed := w.e.spec.Containers[nodeType]
		if pushed {
			w.scope.push(sym.ID, sym.Name, sym.Kind)
		}
		w.walkChildren(node, res)
		if pushed {
			w.scope.pop()
		}
		return
	}

	if w.isCallNode(nodeType) {
		w.emitCallIdentifier(node, res)
	}
	if w.isImportNode(nodeType) {
		w.emitImportIdentifier(node, res)
	}
	if w.isTypeRefNode(nodeType) {
		w.emitTypeRefIdentifier(node, res)
	}

	w.walkChildren(node, res)
}

func (w *walker) walkChildren(node *sitter.Node, res *extract.Result) {
	for i := 0; i < int(node.ChildCount()); i++ {
		w.walk(node.Child(i), res)
	}
}

func (w *walker) isCallNode(nodeType string) bool {
	return contains(w.e.spec.CallNodeTypes, nodeType)
}
func (w *walker) isImportNode(nodeType string) bool {
	return contains(w.e.spec.ImportNodeTypes, nodeType)
}
func (w *walker) isTypeRefNode(nodeType string) bool {
	return contains(w.e.spec.TypeRefNodeTypes, nodeType)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// emitSymbol fills a Symbol's range, signature, doc comment, confidence,
// and id from node, per spec.md §4.B's "Symbol construction" contract.
func (w *walker) emitSymbol(node *sitter.Node, kind extract.SymbolKind) extract.Symbol {
	name := w.nodeName(node)
	startLine := int(node.StartPoint().Row) + 1
	sig := w.signature(node)

	sym := extract.Symbol{
		ID:             hashutil.SymbolID(w.workspaceID, w.path, name, sig, startLine),
		WorkspaceID:    w.workspaceID,
		File:           w.path,
		Name:           name,
		Kind:           kind,
		Language:       w.e.spec.Name,
		Range:          rangeOf(node),
		Signature:      sig,
		DocComment:     w.docComment(node),
		ParentSymbolID: w.scope.parent(),
		Scope:          w.scope.path(),
		Visibility:     w.visibility(name),
		Hash:           hashutil.ContentHash(w.slice(node)),
	}
	sym.Confidence = confidence(sym)
	return sym
}

func rangeOf(node *sitter.Node) extract.Range {
	return extract.Range{
		StartByte: node.StartByte(),
		EndByte:   node.EndByte(),
		StartLine: int(node.StartPoint().Row) + 1,
		StartCol:  int(node.StartPoint().Column) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		EndCol:    int(node.EndPoint().Column) + 1,
	}
}

func (w *walker) slice(node *sitter.Node) []byte {
	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(w.source) {
		end = uint32(len(w.source))
	}
	if int(start) > len(w.source) {
		return nil
	}
	return w.source[start:end]
}

// nodeName extracts the identifier for node via the field the spec names
// for this node type, falling back to "anonymous".
func (w *walker) nodeName(node *sitter.Node) string {
	field := w.e.spec.FuncNameField(node.Type())
	child := node.ChildByFieldName(field)
	if child == nil {
		return "anonymous"
	}
	return string(w.slice(child))
}

// signature copies the node's first source line, trimmed, per spec.md
// §4.B.
func (w *walker) signature(node *sitter.Node) string {
	raw := w.slice(node)
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(string(raw))
}

// docComment scans upward through contiguous comment siblings
// immediately preceding node, per spec.md §4.B.
func (w *walker) docComment(node *sitter.Node) string {
	if w.e.spec.CommentNodeType == "" {
		return ""
	}
	parent := node.Parent()
	if parent == nil {
		return ""
	}
	var idx int = -1
	for i := 0; i < int(parent.ChildCount()); i++ {
		if parent.Child(i) == node {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return ""
	}
	var lines []string
	lastRow := int(node.StartPoint().Row)
	for i := idx - 1; i >= 0; i-- {
		sib := parent.Child(i)
		if sib.Type() != w.e.spec.CommentNodeType {
			break
		}
		if lastRow-int(sib.EndPoint().Row) > 1 {
			break
		}
		lines = append([]string{strings.TrimSpace(string(w.slice(sib)))}, lines...)
		lastRow = int(sib.StartPoint().Row)
	}
	return strings.Join(lines, "\n")
}

func (w *walker) visibility(name string) extract.Visibility {
	if w.e.spec.IsExported == nil {
		return extract.VisibilityUnknown
	}
	if w.e.spec.IsExported(name) {
		return extract.VisibilityPublic
	}
	return extract.VisibilityPrivate
}

// confidence reflects presence of name + signature + scope, per spec.md
// §4.B.
func confidence(s extract.Symbol) float64 {
	score := 0.4
	if s.Name != "" && s.Name != "anonymous" {
		score += 0.3
	}
	if s.Signature != "" {
		score += 0.2
	}
	if s.ParentSymbolID != "" || s.Scope != "" {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func (w *walker) emitCallIdentifier(node *sitter.Node, res *extract.Result) {
	name := w.callTargetName(node)
	if name == "" {
		return
	}
	res.Identifiers = append(res.Identifiers, w.identifier(node, name, extract.IdentCall))
	res.Relationships = append(res.Relationships, extract.Relationship{
		FromSymbolID: w.scope.parent(),
		ToName:       name,
		Kind:         extract.RelCalls,
		File:         w.path,
		Line:         int(node.StartPoint().Row) + 1,
		Confidence:   0.7,
	})
}

// callTargetName extracts the callee name from a call expression node's
// "function" field, keeping only the text after the last '.' or ':' (so
// obj.method() yields "method"). A call node without that field yields "".
func (w *walker) callTargetName(node *sitter.Node) string {
	if fn := node.ChildByFieldName("function"); fn != nil {
		txt := string(w.slice(fn))
		if i := strings.LastIndexAny(txt, ".:"); i >= 0 {
			txt = txt[i+1:]
		}
		return txt
	}
	return ""
}

func (w *walker) emitImportIdentifier(node *sitter.Node, res *extract.Result) {
	name := strings.TrimSpace(string(w.slice(node)))
	res.Identifiers = append(res.Identifiers, w.identifier(node, name, extract.IdentImport))
	res.Relationships = append(res.Relationships, extract.Relationship{
		FromSymbolID: w.scope.parent(),
		ToName:       name,
		Kind:         extract.RelImports,
		File:         w.path,
		Line:         int(node.StartPoint().Row) + 1,
		Confidence:   0.9,
	})
}

func (w *walker) emitTypeRefIdentifier(node *sitter.Node, res *extract.Result) {
	name := w.nodeName(node)
	if name == "" || name == "anonymous" {
		name = strings.TrimSpace(string(w.slice(node)))
	}
	res.Identifiers = append(res.Identifiers, w.identifier(node, name, extract.IdentTypeReference))

	kind := extract.RelUsesType
	if contains(w.e.spec.ExtendsNodeTypes, node.Type()) {
		kind = extract.RelExtends
	} else if contains(w.e.spec.ImplementsNodeTypes, node.Type()) {
		kind = extract.RelImplements
	}
	res.Relationships = append(res.Relationships, extract.Relationship{
		FromSymbolID: w.scope.parent(),
		ToName:       name,
		Kind:         kind,
		File:         w.path,
		Line:         int(node.StartPoint().Row) + 1,
		Confidence:   0.6,
	})
}

func (w *walker) identifier(node *sitter.Node, name string, kind extract.IdentifierKind) extract.Identifier {
	return extract.Identifier{
		Name:             name,
		Kind:             kind,
		File:             w.path,
		StartByte:        node.StartByte(),
		EndByte:          node.EndByte(),
		Line:             int(node.StartPoint().Row) + 1,
		Col:              int(node.StartPoint().Column) + 1,
		ContainingSymbol: w.scope.containingSymbol(),
	}
}
