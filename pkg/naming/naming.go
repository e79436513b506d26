// Package naming converts free-form Figma layer names into identifiers and
// path segments. Both conversions are total: every input, including the empty
// string and non-ASCII text, maps to a deterministic result.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold lower-cases s and reduces it to ASCII: accented letters lose their
// marks ("é" -> "e") and any other non-ASCII rune is dropped.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '_' || r == '-'
}

// words splits s into lower-case ASCII words on whitespace, '_' and '-'.
// Other punctuation is removed without splitting, so "don't" is one word.
func words(s string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range fold(s) {
		switch {
		case isWordRune(r):
			cur.WriteRune(r)
		case isSeparator(r):
			flush()
		}
	}
	flush()
	return out
}

// ToIdentifierCase converts s to PascalCase for use as a component name or
// an index key: "external link" -> "ExternalLink", "arrow_up-2" -> "ArrowUp2".
//
// Letters inside a word are lower-cased ("ExternalLink" -> "Externallink").
// A result starting with a digit is prefixed with '_' ("24px" -> "_24px"). An
// input with no usable characters yields "_".
func ToIdentifierCase(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}

	id := b.String()
	switch {
	case id == "":
		return "_"
	case id[0] >= '0' && id[0] <= '9':
		return "_" + id
	}
	return id
}

// ToPathCase converts s to kebab-case for use as a directory name:
// "Design System" -> "design-system", "  Icons__v2 " -> "icons-v2".
// An input with no usable characters yields "".
func ToPathCase(s string) string {
	return strings.Join(words(s), "-")
}
