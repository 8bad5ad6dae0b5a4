package cleanse

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reSpaces       = regexp.MustCompile(`\s{2,}`)
	reSpaceBefore  = regexp.MustCompile(`\s+([.,!?;:])`)
	reMissingSpace = regexp.MustCompile(`([,!?;:])([A-Za-z])`)
	reContractions = []struct {
		re          *regexp.Regexp
		replacement string
	}{
		{regexp.MustCompile(`(?i)\bi m\b`), "I'm"},
		{regexp.MustCompile(`(?i)\bdont\b`), "don't"},
		{regexp.MustCompile(`(?i)\bcant\b`), "can't"},
		{regexp.MustCompile(`(?i)\bwont\b`), "won't"},
		{regexp.MustCompile(`(?i)\blets\b`), "let's"},
	}
)

// BasicCorrections is the fallback grammar corrector: whitespace and
// punctuation spacing fixes, sentence-initial capitalization, and a handful
// of common missing-apostrophe contractions. It is a heuristic, not a
// language model, and it is idempotent.
func BasicCorrections(line string) string {
	line = reSpaces.ReplaceAllString(line, " ")
	line = reSpaceBefore.ReplaceAllString(line, "$1")
	line = reMissingSpace.ReplaceAllString(line, "$1 $2")
	for _, c := range reContractions {
		line = c.re.ReplaceAllString(line, c.replacement)
	}
	line = strings.TrimSpace(line)
	if line != "" {
		r := []rune(line)
		r[0] = unicode.ToUpper(r[0])
		line = string(r)
	}
	return line
}
