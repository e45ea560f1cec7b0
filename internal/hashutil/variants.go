package hashutil

import "strings"

// Variants holds the full cross-casing set produced by IdentifierVariants.
// Query expansion (internal/query) OR-combines these into the FTS5 query;
// extraction never calls this -- it only ever emits the name as it appears
// in source (spec.md §4.A).
type Variants struct {
	Snake         string
	Kebab         string
	Camel         string
	Pascal        string
	ScreamingSnake string
}

// IdentifierVariants splits name on casing/word boundaries and rebuilds it
// in each of the five forms. It is pure and idempotent: applying it to any
// of its own outputs reproduces the same set (spec.md §8 round-trip law).
func IdentifierVariants(name string) Variants {
	words := splitWords(name)
	if len(words) == 0 {
		return Variants{}
	}
	return Variants{
		Snake:          strings.Join(lowerAll(words), "_"),
		Kebab:          strings.Join(lowerAll(words), "-"),
		Camel:          toCamel(words),
		Pascal:         toPascal(words),
		ScreamingSnake: strings.ToUpper(strings.Join(words, "_")),
	}
}

// splitWords breaks an identifier into word fragments on underscores,
// hyphens, and camel/Pascal case boundaries.
func splitWords(name string) []string {
	var words []string
	var cur []rune
	runes := []rune(name)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = nil
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case isUpper(r) && i > 0 && !isUpper(runes[i-1]) && runes[i-1] != '_' && runes[i-1] != '-':
			flush()
			cur = append(cur, r)
		case isUpper(r) && i > 0 && isUpper(runes[i-1]) && i+1 < len(runes) && !isUpper(runes[i+1]):
			// End of an acronym run, e.g. "HTTPServer" -> "HTTP", "Server".
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func toCamel(words []string) string {
	lw := lowerAll(words)
	var b strings.Builder
	for i, w := range lw {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func toPascal(words []string) string {
	var b strings.Builder
	for _, w := range lowerAll(words) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = toUpperRune(r[0])
	return string(r)
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
