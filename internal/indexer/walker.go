// Package indexer drives the incremental indexing pipeline: snapshot the
// workspace tree, classify and hash-diff against the stored file table,
// extract symbols for changed files in parallel, write the batch
// transactionally, and trigger exactly one FTS rebuild per batch that
// found orphaned files -- grounded on the teacher's core.FileWalker
// (parallel worker-pool traversal) generalized from "find files matching
// a glob" to "find files needing re-extraction".
package indexer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DiscoveredFile is one file seen during a workspace snapshot.
type DiscoveredFile struct {
	Path    string
	Size    int64
	ModTime int64
}

// Snapshot walks root and returns every non-ignored regular file,
// fanning out stat() calls across a worker pool the way core.FileWalker
// does for morfx's scope-based traversal.
func Snapshot(ctx context.Context, root string, ignorePatterns []string) ([]DiscoveredFile, error) {
	matcher := ignore.CompileIgnoreLines(ignorePatterns...)

	paths := make(chan string, 1024)
	results := make(chan DiscoveredFile, 1024)
	errs := make(chan error, 1)

	workers := runtime.NumCPU() * 2
	done := make(chan struct{})
	for range workers {
		go func() {
			for p := range paths {
				info, err := os.Stat(p)
				if err != nil {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case results <- DiscoveredFile{Path: p, Size: info.Size(), ModTime: info.ModTime().UnixMilli()}:
				}
			}
			done <- struct{}{}
		}()
	}

	go func() {
		defer close(paths)
		walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if d.IsDir() {
				if rel != "." && matcher.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if matcher.MatchesPath(rel) {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case paths <- path:
			}
			return nil
		})
		if walkErr != nil {
			select {
			case errs <- walkErr:
			default:
			}
		}
	}()

	go func() {
		for range workers {
			<-done
		}
		close(results)
	}()

	var out []DiscoveredFile
	for r := range results {
		out = append(out, r)
	}

	select {
	case err := <-errs:
		return out, err
	default:
		return out, nil
	}
}

// MatchesAny reports whether path matches any of the glob patterns,
// trying both the full relative path and its basename -- the same
// two-tier match core.FileWalker.matchPattern performs.
func MatchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if matched, err := doublestar.PathMatch(p, path); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(p, filepath.Base(path)); err == nil && matched {
			return true
		}
	}
	return false
}
