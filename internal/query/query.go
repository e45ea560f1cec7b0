// Package query implements spec.md §4.J: classify a raw query string,
// expand it with casing variants and wildcard suffixes, run FTS and (if
// available) semantic search, and fuse the two rankings with reciprocal
// rank fusion plus an exact-match bonus.
package query

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oxhq/julie/internal/embedder"
	"github.com/oxhq/julie/internal/hashutil"
	"github.com/oxhq/julie/internal/store"
	"github.com/oxhq/julie/internal/vectorstore"
)

// Kind classifies how a raw query string should be interpreted.
type Kind string

const (
	KindExact    Kind = "exact"    // quoted literal, searched as-is without expansion
	KindSymbol   Kind = "symbol"   // looks like an identifier (snake/camel/etc)
	KindStandard Kind = "standard" // free text, expanded with casing variants and per-token wildcards
	KindContent  Kind = "content"  // explicit content: prefix, searches the files index (file paths)
)

// Classify determines the Kind of a raw query string.
func Classify(raw string) Kind {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(trimmed, "content:"):
		return KindContent
	case strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`):
		return KindExact
	case isIdentifierLike(trimmed):
		return KindSymbol
	default:
		return KindStandard
	}
}

func isIdentifierLike(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\n") {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// Expand produces every casing variant of an identifier-like query, for
// broader FTS recall. Used for Symbol and Standard queries only -- Exact
// queries must never be expanded (spec.md §4.J query expansion
// boundaries), and Content queries expand wildcards but not casing.
func Expand(raw string) []string {
	v := hashutil.IdentifierVariants(raw)
	base := []string{raw, v.Snake, v.Kebab, v.Camel, v.Pascal, v.ScreamingSnake}
	return dedupe(base)
}

// expandWildcards returns a trailing-wildcard form of each whitespace
// token in raw, when raw has two or more tokens (spec.md §4.J: "when the
// original has ≥2 tokens, also a suffix-wildcard form per token").
func expandWildcards(raw string) []string {
	tokens := strings.Fields(raw)
	if len(tokens) < 2 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok+"*")
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Hit is one ranked search result, with enough context to render a
// snippet without a second symbol lookup.
type Hit struct {
	SymbolID   string
	Name       string
	File       string
	Signature  string
	Score      float64
	ExactMatch bool

	// Source identifies which ranking list produced this hit: exact, fts,
	// semantic, or fused (present in both fts and semantic lists).
	Source string

	// Snippet is the declaring source text, sliced from disk on demand
	// using the symbol's byte range (spec.md §4.J Output contract).
	Snippet string
}

// Engine ties a workspace's store and (optional) semantic index together
// for Search. root resolves a symbol's file path to disk for snippet
// reconstruction.
type Engine struct {
	store *store.Store
	vs    *vectorstore.Store
	embed *embedder.Engine
	root  string
}

func NewEngine(st *store.Store, vs *vectorstore.Store, embed *embedder.Engine, root string) *Engine {
	return &Engine{store: st, vs: vs, embed: embed, root: root}
}

// Search runs the full pipeline: classify, expand, FTS search (plus
// semantic search if embeddings exist), then fuse rankings. Content
// queries route to the files FTS index instead of the symbol index.
func (e *Engine) Search(ctx context.Context, workspaceID, raw string, limit int) ([]Hit, error) {
	kind := Classify(raw)
	if kind == KindContent {
		return e.searchContent(workspaceID, raw, limit)
	}

	var terms []string
	switch kind {
	case KindExact:
		terms = []string{raw}
	default: // KindSymbol, KindStandard
		terms = dedupe(append(Expand(raw), expandWildcards(raw)...))
	}

	ftsHits := make(map[string]store.SymbolHit)
	for _, term := range terms {
		hits, err := e.store.FTSSearchSymbols(workspaceID, ftsQuery(term), limit*3)
		if err != nil {
			continue // a malformed FTS5 query term degrades to "no hits", not a failure
		}
		for _, h := range hits {
			if _, exists := ftsHits[h.SymbolID]; !exists {
				ftsHits[h.SymbolID] = h
			}
		}
	}

	var semanticIDs []string
	if e.embed.Available() && e.vs != nil {
		if n, err := e.store.CountEmbeddings(workspaceID); err == nil && n > 0 {
			if vecs, err := e.embed.EmbedBatch([]string{raw}); err == nil && len(vecs) == 1 {
				if results, err := e.vs.SearchSimilar(vecs[0], limit*3); err == nil {
					for _, r := range results {
						semanticIDs = append(semanticIDs, r.SymbolID)
					}
				}
			}
		}
	}
	// Semantic search silently degrades to pure FTS when no embeddings
	// exist for the workspace (SPEC_FULL.md Open Question #3) -- the
	// branch above simply never populates semanticIDs in that case.

	fused := fuse(ftsHits, semanticIDs, raw)
	if len(fused) > limit {
		fused = fused[:limit]
	}

	out := make([]Hit, 0, len(fused))
	for _, f := range fused {
		sym, ok, err := e.store.GetSymbol(f.symbolID)
		if err != nil || !ok {
			continue
		}
		source := "fts"
		switch {
		case kind == KindExact:
			source = "exact"
		case f.inFTS && f.inSemantic:
			source = "fused"
		case f.inSemantic:
			source = "semantic"
		}
		out = append(out, Hit{
			SymbolID:   sym.ID,
			Name:       sym.Name,
			File:       sym.File,
			Signature:  sym.Signature,
			Score:      f.score,
			ExactMatch: strings.EqualFold(sym.Name, raw),
			Source:     source,
			Snippet:    e.snippet(sym.File, sym.Range.StartByte, sym.Range.EndByte),
		})
	}
	return out, nil
}

// searchContent runs a query against the files FTS index (spec.md §4.J:
// "Content queries run against the files FTS index"), expanding only
// wildcards, never casing.
func (e *Engine) searchContent(workspaceID, raw string, limit int) ([]Hit, error) {
	content := strings.TrimSpace(strings.TrimPrefix(raw, "content:"))
	terms := dedupe(append([]string{content}, expandWildcards(content)...))

	fileHits := make(map[string]store.FileHit)
	for _, term := range terms {
		hits, err := e.store.FTSSearchFiles(workspaceID, ftsQuery(term), limit*3)
		if err != nil {
			continue
		}
		for _, h := range hits {
			if _, exists := fileHits[h.FileID]; !exists {
				fileHits[h.FileID] = h
			}
		}
	}

	ordered := make([]store.FileHit, 0, len(fileHits))
	for _, h := range fileHits {
		ordered = append(ordered, h)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Rank < ordered[j].Rank })
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	out := make([]Hit, 0, len(ordered))
	for i, h := range ordered {
		out = append(out, Hit{
			File:    h.Path,
			Name:    filepath.Base(h.Path),
			Score:   1.0 / (1.0 + float64(i)),
			Source:  "fts",
			Snippet: e.fileHead(h.Path),
		})
	}
	return out, nil
}

const maxSnippetBytes = 240

// snippet reconstructs a symbol's declaring text from disk, per spec.md
// §4.J: "Snippets are reconstructed from (file, start_byte, end_byte) on
// demand." Returns "" if the file is unreadable or the range is stale
// (e.g. the file changed since the last index pass).
func (e *Engine) snippet(file string, start, end uint32) string {
	if e.root == "" || start >= end {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(e.root, file))
	if err != nil || int(end) > len(data) {
		return ""
	}
	return string(data[start:end])
}

// fileHead returns a leading excerpt of a file's content, used as the
// snippet for content-target hits where no byte range is available.
func (e *Engine) fileHead(file string) string {
	if e.root == "" {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(e.root, file))
	if err != nil {
		return ""
	}
	if len(data) > maxSnippetBytes {
		return string(data[:maxSnippetBytes])
	}
	return string(data)
}

func ftsQuery(term string) string {
	if strings.ContainsAny(term, `"*`) {
		return term
	}
	return term + "*"
}

type fusedHit struct {
	symbolID   string
	score      float64
	inFTS      bool
	inSemantic bool
}

// fuse combines FTS and semantic rankings with reciprocal rank fusion
// (score = sum(1/(k+rank)) across the lists a result appears in), with
// an exact-name-match bonus so "Add" outranks "AddAll" for query "Add".
// It also tracks which list(s) produced each hit so Search can label the
// result's source.
func fuse(fts map[string]store.SymbolHit, semantic []string, rawQuery string) []fusedHit {
	const rrfK = 60.0
	scores := make(map[string]float64)
	origin := make(map[string]*fusedHit)

	touch := func(id string) *fusedHit {
		fh, ok := origin[id]
		if !ok {
			fh = &fusedHit{symbolID: id}
			origin[id] = fh
		}
		return fh
	}

	ftsOrdered := make([]store.SymbolHit, 0, len(fts))
	for _, h := range fts {
		ftsOrdered = append(ftsOrdered, h)
	}
	sort.Slice(ftsOrdered, func(i, j int) bool { return ftsOrdered[i].Rank < ftsOrdered[j].Rank })
	for i, h := range ftsOrdered {
		scores[h.SymbolID] += 1.0 / (rrfK + float64(i+1))
		if strings.EqualFold(h.Name, rawQuery) {
			scores[h.SymbolID] += 1.0
		}
		touch(h.SymbolID).inFTS = true
	}

	for i, id := range semantic {
		scores[id] += 1.0 / (rrfK + float64(i+1))
		touch(id).inSemantic = true
	}

	out := make([]fusedHit, 0, len(scores))
	for id, sc := range scores {
		fh := *origin[id]
		fh.score = sc
		out = append(out, fh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}
