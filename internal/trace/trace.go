// Package trace implements spec.md §4.K's cross-language call tracer: a
// breadth-first walk over the relationship graph, forward (what does
// this symbol call) or backward (what calls this symbol), bounded by
// depth and guarded against cycles. Cross-language edges are matched by
// name via casing variants, since a Python caller of a Go function has
// no shared symbol ID, only a name in common.
package trace

import (
	"github.com/oxhq/julie/internal/extract"
	"github.com/oxhq/julie/internal/hashutil"
	"github.com/oxhq/julie/internal/store"
)

// Direction selects which edge direction the walk follows.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Node is one symbol reached during the walk, with the depth at which it
// was first discovered.
type Node struct {
	Symbol extract.Symbol
	Depth  int
	Via    extract.RelationshipKind
}

// Tracer walks a workspace's relationship graph.
type Tracer struct {
	store       *store.Store
	workspaceID string
}

func New(st *store.Store, workspaceID string) *Tracer {
	return &Tracer{store: st, workspaceID: workspaceID}
}

// Walk performs a bounded BFS from rootSymbolID, following Forward
// (outgoing "calls"/"uses-type"/...) or Backward (incoming) edges, up to
// maxDepth hops. Already-visited symbol IDs are never re-expanded, which
// also serves as the cycle guard recursive call graphs need.
func (t *Tracer) Walk(rootSymbolID string, dir Direction, maxDepth int) ([]Node, error) {
	visited := map[string]bool{rootSymbolID: true}
	queue := []Node{{Depth: 0}}

	root, ok, err := t.store.GetSymbol(rootSymbolID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	queue[0].Symbol = root

	var out []Node
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)

		if cur.Depth >= maxDepth {
			continue
		}

		var rels []extract.Relationship
		if dir == Forward {
			rels, err = t.store.RelationshipsFrom(cur.Symbol.ID)
		} else {
			rels, err = t.store.RelationshipsTo(cur.Symbol.ID)
		}
		if err != nil {
			return out, err
		}

		for _, r := range rels {
			targetID := r.ToSymbolID
			if dir == Backward {
				targetID = r.FromSymbolID
			}

			if targetID == "" {
				// Unresolved at write time: resolve lazily now by name,
				// including cross-language casing-variant matches.
				targetID = t.resolveByName(r.ToName)
				if targetID == "" {
					continue
				}
			}
			if visited[targetID] {
				continue
			}
			visited[targetID] = true

			sym, ok, err := t.store.GetSymbol(targetID)
			if err != nil || !ok {
				continue
			}
			queue = append(queue, Node{Symbol: sym, Depth: cur.Depth + 1, Via: r.Kind})
		}
	}
	return out, nil
}

// resolveByName looks up a symbol by exact name, then by every casing
// variant, so "get_user" called from Python can resolve to a "getUser"
// symbol declared in JavaScript.
func (t *Tracer) resolveByName(name string) string {
	if name == "" {
		return ""
	}
	v := hashutil.IdentifierVariants(name)
	for _, candidate := range []string{name, v.Snake, v.Camel, v.Pascal, v.Kebab, v.ScreamingSnake} {
		if candidate == "" {
			continue
		}
		matches, err := t.store.QuerySymbolsByName(t.workspaceID, candidate)
		if err == nil && len(matches) > 0 {
			return matches[0].ID
		}
	}
	return ""
}
