// Package hashutil provides the content-hash and naming primitives shared
// by the extractor base (internal/extract/base) and the incremental
// indexer (internal/indexer): Blake3 content hashing, identifier-id
// derivation, and path canonicalization.
package hashutil

import (
	"encoding/hex"
	"path"
	"strings"

	"github.com/zeebo/blake3"
)

// ContentHash returns the lowercase-hex Blake3 digest of b, used as the
// files.hash / symbols.hash storage key throughout the store.
func ContentHash(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// SymbolID derives the deterministic id for a symbol from the tuple the
// design names in §4.B: workspace, file, name, signature, start_line.
// Same inputs always produce the same id, independent of process or
// machine -- this is what makes round_trip(extract, persist, query) hold.
func SymbolID(workspaceID, file, name, signature string, startLine int) string {
	h := blake3.New()
	h.Write([]byte(workspaceID))
	h.Write([]byte{0})
	h.Write([]byte(file))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(signature))
	h.Write([]byte{0})
	h.Write(itoaBytes(startLine))
	return hex.EncodeToString(h.Sum(nil))
}

func itoaBytes(n int) []byte {
	if n == 0 {
		return []byte{'0'}
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// CanonicalizePath normalizes separators and resolves "." / ".." segments
// without touching the filesystem or resolving symlinks -- symlinks are
// deliberately left alone so paths stay stable across platforms and across
// machines that mount the same workspace differently (spec.md §4.A).
func CanonicalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	cleaned := path.Clean(p)
	if cleaned == "." {
		return ""
	}
	return cleaned
}
