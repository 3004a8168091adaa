package grammar

import (
	"regexp"

	"github.com/matkrin/colord/internal/color"
)

var wordRegex = regexp.MustCompile(`[a-zA-Z]+`)

type namedMatcher struct{}

func (namedMatcher) Name() string { return "named" }

// Scan looks up maximal letter runs in the keyword table. Runs glued to
// identifier punctuation ("--main-red", "$red", "text-red") are skipped so
// fragments of identifiers do not light up.
func (namedMatcher) Scan(text string) []Match {
	var matches []Match
	for _, loc := range wordRegex.FindAllStringIndex(text, -1) {
		if joinedToIdentifier(text, loc[0], loc[1]) {
			continue
		}
		c, ok := color.Named(text[loc[0]:loc[1]])
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Color:  c,
			Format: color.FormatNamed,
		})
	}
	return matches
}

func joinedToIdentifier(text string, start, end int) bool {
	if start > 0 && isIdentAdjacent(text[start-1]) {
		return true
	}
	if end < len(text) && isIdentAdjacent(text[end]) {
		return true
	}
	return false
}

func isIdentAdjacent(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '#' || b == '$' || b == '@' || b == '.':
		return true
	}
	return false
}
