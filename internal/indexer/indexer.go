package indexer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/oxhq/julie/internal/embedder"
	"github.com/oxhq/julie/internal/errs"
	"github.com/oxhq/julie/internal/extract"
	"github.com/oxhq/julie/internal/extract/registry"
	"github.com/oxhq/julie/internal/hashutil"
	"github.com/oxhq/julie/internal/store"
	"github.com/oxhq/julie/internal/vectorstore"
)

// Indexer owns one workspace's extraction pipeline: it never holds the
// parsed tree-sitter trees past a single file's extraction, only the
// derived Symbol/Identifier/Relationship records that get written to the
// store.
type Indexer struct {
	store    *store.Store
	registry *registry.Registry
	log      *slog.Logger
	wsID     string
	root     string

	embed *embedder.Engine
	vs    *vectorstore.Store
}

func New(st *store.Store, reg *registry.Registry, log *slog.Logger, workspaceID, root string) *Indexer {
	return &Indexer{store: st, registry: reg, log: log, wsID: workspaceID, root: root}
}

// SetEmbedding wires an embedding engine and vector store into the
// indexer, enabling spec.md §4.F step 6 ("enqueue modified + new symbol
// ids for the embedding engine"). Call before IndexFiles; either argument
// may be nil (or embed.Available() == false) to leave embedding disabled.
func (ix *Indexer) SetEmbedding(embed *embedder.Engine, vs *vectorstore.Store) {
	ix.embed = embed
	ix.vs = vs
}

// BatchResult summarizes one indexing pass for callers (CLI output,
// watcher logging, run bookkeeping).
type BatchResult struct {
	FilesExtracted  int
	FilesUnchanged  int
	FilesSkipped    int
	FilesOrphaned   int
	SymbolsWritten  int
	SymbolsEmbedded int
	Diagnostics     []extract.Diagnostic
}

// IndexFiles hash-diffs the given paths against the store and extracts
// only those whose content changed (or that are new), matching
// spec.md §4.F's incremental-batch contract. Extraction runs
// concurrently across paths via errgroup; writes are serialized through
// one *store.WriteBatch per file to keep each file's symbols/
// identifiers/relationships atomic together. Files whose content hash
// matches the stored row are skipped before extraction or any write --
// the round-trip law in spec.md §8 requires indexing an unchanged
// workspace twice in a row to perform zero database writes.
func (ix *Indexer) IndexFiles(ctx context.Context, paths []string) (BatchResult, error) {
	runID, err := ix.store.BeginRun(ix.wsID, "incremental")
	if err != nil {
		return BatchResult{}, err
	}

	type extracted struct {
		path      string
		result    extract.Result
		fileID    string
		skip      bool
		unchanged bool
	}

	outputs := make([]extracted, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, runtime.NumCPU()))

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			source, err := os.ReadFile(p)
			if err != nil {
				ix.log.Warn("read failed, skipping", "path", p, "err", err)
				outputs[i] = extracted{path: p, skip: true}
				return nil
			}
			contentHash := hashutil.ContentHash(source)
			rel := hashutil.CanonicalizePath(relPath(ix.root, p))

			if stored, ok, err := ix.store.GetFileHash(ix.wsID, rel); err == nil && ok && stored == contentHash {
				outputs[i] = extracted{path: p, unchanged: true}
				return nil
			}

			langTag := ix.registry.Classify(rel, source)
			if langTag == "" {
				outputs[i] = extracted{path: p, skip: true}
				return nil
			}
			ex, ok := ix.registry.For(langTag)
			if !ok {
				outputs[i] = extracted{path: p, skip: true}
				return nil
			}

			result, err := ex.Extract(gctx, ix.wsID, rel, source)
			if err != nil {
				ix.log.Warn("extraction failed, skipping file", "path", p, "err", err)
				outputs[i] = extracted{path: p, skip: true}
				return nil
			}
			result.File.Hash = contentHash
			result.File.WorkspaceID = ix.wsID
			result.File.Language = langTag
			result.File.SymbolCount = len(result.Symbols)
			fileID := hashutil.SymbolID(ix.wsID, rel, "__file__", "", 0)
			outputs[i] = extracted{path: p, result: result, fileID: fileID}
			return nil
		})
	}
	if err := g.Wait(); err != nil && ctx.Err() != nil {
		_ = ix.store.FinishRun(runID, "cancelled", 0, 0)
		return BatchResult{}, errs.New(errs.KindCancelled, "Indexer.IndexFiles", err)
	}

	var br BatchResult
	var diagnostics []extract.Diagnostic
	var changedSymbols []extract.Symbol
	for _, o := range outputs {
		if o.unchanged {
			br.FilesUnchanged++
			continue
		}
		if o.skip {
			br.FilesSkipped++
			continue
		}
		if err := ix.writeOne(o.path, o.fileID, o.result); err != nil {
			ix.log.Warn("write failed, skipping file", "path", o.path, "err", err)
			br.FilesSkipped++
			continue
		}
		br.FilesExtracted++
		br.SymbolsWritten += len(o.result.Symbols)
		changedSymbols = append(changedSymbols, o.result.Symbols...)
		diagnostics = append(diagnostics, o.result.Diagnostics...)
		for _, d := range o.result.Diagnostics {
			_ = ix.store.RecordDiagnostic(ix.wsID, runID, d.File, d.Severity, d.Message)
		}
	}
	br.Diagnostics = diagnostics

	if n, err := ix.embedSymbols(changedSymbols); err != nil {
		ix.log.Warn("embedding failed", "err", err)
	} else {
		br.SymbolsEmbedded = n
	}

	resolved, err := ix.store.ResolveDanglingRelationships(ix.wsID)
	if err != nil {
		ix.log.Warn("relationship resolution failed", "err", err)
	} else if resolved > 0 {
		ix.log.Debug("resolved dangling relationships", "count", resolved)
	}

	_ = ix.store.TouchWorkspace(ix.wsID)
	_ = ix.store.FinishRun(runID, "completed", br.FilesExtracted, br.SymbolsWritten)
	return br, nil
}

// embedSymbols encodes the signature+doc text of every new/modified
// symbol from this batch and persists the vectors to both the sqlite
// embeddings table and the HNSW index (spec.md §4.F step 6). A nil or
// unavailable embedder leaves semantic search degraded to FTS-only,
// per SPEC_FULL.md Open Question #3 -- this is not an error.
func (ix *Indexer) embedSymbols(symbols []extract.Symbol) (int, error) {
	if ix.embed == nil || !ix.embed.Available() || ix.vs == nil || len(symbols) == 0 {
		return 0, nil
	}

	texts := make([]string, len(symbols))
	for i, sym := range symbols {
		texts[i] = embedText(sym)
	}

	vectors, err := ix.embed.EmbedBatch(texts)
	if err != nil {
		return 0, errs.New(errs.KindEmbed, "Indexer.embedSymbols", err)
	}

	ids := make([]string, len(symbols))
	for i, sym := range symbols {
		ids[i] = sym.ID
		if err := ix.store.UpsertEmbedding(ix.wsID, sym.ID, embedder.ModelName, vectors[i]); err != nil {
			return i, err
		}
	}
	if err := ix.vs.InsertBatch(ids, vectors); err != nil {
		return len(ids), err
	}
	return len(ids), nil
}

func embedText(sym extract.Symbol) string {
	var b strings.Builder
	b.WriteString(sym.Name)
	if sym.Signature != "" {
		b.WriteString(" ")
		b.WriteString(sym.Signature)
	}
	if sym.DocComment != "" {
		b.WriteString("\n")
		b.WriteString(sym.DocComment)
	}
	return b.String()
}

// Reconcile compares the live snapshot against stored files, cascades
// deletes for anything no longer on disk, and rebuilds the FTS mirrors
// exactly once if any orphan was found (spec.md §4.F: "exactly one FTS
// rebuild per batch with orphans", never once per file).
func (ix *Indexer) Reconcile(livePaths map[string]bool) (int, error) {
	orphans, err := ix.store.FindOrphanedFiles(ix.wsID, livePaths)
	if err != nil {
		return 0, err
	}
	for _, path := range orphans {
		if err := ix.store.DeleteFileCascade(ix.wsID, path); err != nil {
			ix.log.Warn("orphan delete failed", "path", path, "err", err)
		}
	}
	if len(orphans) > 0 {
		if err := ix.store.RebuildFTSIndexes(ix.wsID); err != nil {
			return len(orphans), err
		}
	}
	return len(orphans), nil
}

func (ix *Indexer) writeOne(path, fileID string, result extract.Result) error {
	b, err := ix.store.BeginWrite()
	if err != nil {
		return err
	}
	defer b.Rollback()

	if err := b.UpsertFile(ix.wsID, result.File, fileID); err != nil {
		return err
	}
	if err := b.ReplaceSymbolsForFile(ix.wsID, fileID, result.Symbols); err != nil {
		return err
	}
	symbolPaths := make(map[string]string, len(result.Symbols))
	for _, s := range result.Symbols {
		symbolPaths[s.Scope] = s.ID
	}
	if err := b.ReplaceIdentifiersForFile(ix.wsID, fileID, symbolPaths, result.Identifiers); err != nil {
		return err
	}
	if err := b.ReplaceRelationshipsForFile(ix.wsID, fileID, result.Relationships); err != nil {
		return err
	}
	return b.Commit()
}

func relPath(root, path string) string {
	if root == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
