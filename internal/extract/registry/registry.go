// Package registry dispatches a file path (and, for extension-less
// scripts, its shebang line) to the extract.Extractor built for its
// language. Unsupported languages are never fatal -- a file the registry
// can't classify is skipped without a log line and counted in the
// indexer's BatchResult.FilesSkipped, so the watcher keeps running
// (spec.md §4.D's dispatch-failure contract).
package registry

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oxhq/julie/internal/extract/base"
	"github.com/oxhq/julie/internal/extract/lang"
)

// Registry maps language tags to their lang.Spec and hands out fresh
// *base.Extractor instances on request. An Extractor owns a tree-sitter
// parser that isn't safe for concurrent use, so For never shares one
// across callers -- the indexer's per-file goroutines each get their own.
type Registry struct {
	byExt     map[string]*lang.Spec
	byShebang map[string]*lang.Spec
	byName    map[string]*lang.Spec
	mu        sync.Mutex
}

// New builds a registry over every Spec in lang.All.
func New() *Registry {
	r := &Registry{
		byExt:     make(map[string]*lang.Spec),
		byShebang: make(map[string]*lang.Spec),
		byName:    make(map[string]*lang.Spec),
	}
	for _, spec := range lang.All {
		for _, ext := range spec.Extensions {
			r.byExt[ext] = spec
		}
		for _, sb := range spec.Shebangs {
			r.byShebang[sb] = spec
		}
		r.byName[spec.Name] = spec
	}
	return r
}

// Classify returns the language tag for path, or "" if no Spec claims
// it. For extension-less files, the first line is sniffed for a shebang
// interpreter match.
func (r *Registry) Classify(path string, source []byte) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "" {
		if spec, ok := r.byExt[strings.ToLower(ext)]; ok {
			return spec.Name
		}
	}
	if shebang, ok := firstLineShebang(source); ok {
		for interp, spec := range r.byShebang {
			if strings.Contains(shebang, interp) {
				return spec.Name
			}
		}
	}
	return ""
}

func firstLineShebang(source []byte) (string, bool) {
	if !bytes.HasPrefix(source, []byte("#!")) {
		return "", false
	}
	scanner := bufio.NewScanner(bytes.NewReader(source))
	if scanner.Scan() {
		return scanner.Text(), true
	}
	return "", false
}

// For builds a fresh Extractor for a language tag (as returned by
// Classify). Each call gets its own tree-sitter parser so concurrent
// callers never share one.
func (r *Registry) For(languageTag string) (*base.Extractor, bool) {
	r.mu.Lock()
	spec, ok := r.byName[languageTag]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	return base.New(spec), true
}

// Languages lists every supported language tag, for status/diagnostic
// surfaces.
func (r *Registry) Languages() []string {
	names := make([]string, 0, len(lang.All))
	for _, spec := range lang.All {
		names = append(names, spec.Name)
	}
	return names
}
