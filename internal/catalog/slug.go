package catalog

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	separators = regexp.MustCompile(`[\s_-]+`)
)

// Slugify lowercases name, drops punctuation and joins words with single dashes.
// \w is ASCII-only, so accented and non-Latin letters are dropped rather than
// transliterated; slugs already stored for existing products were built the same way.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWord.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
