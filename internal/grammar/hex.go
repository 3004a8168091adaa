package grammar

import (
	"regexp"

	"github.com/matkrin/colord/internal/color"
)

// Greedy over the digit run: a '#' followed by 5, 7 or 9+ hex digits is not
// a color literal and the whole candidate is discarded, not re-split.
var hexRegex = regexp.MustCompile(`#[0-9a-fA-F]+`)

type hexMatcher struct{}

func (hexMatcher) Name() string { return "hex" }

func (hexMatcher) Scan(text string) []Match {
	var matches []Match
	for _, loc := range hexRegex.FindAllStringIndex(text, -1) {
		c, format, err := color.ParseHex(text[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Color:  c,
			Format: format,
		})
	}
	return matches
}
