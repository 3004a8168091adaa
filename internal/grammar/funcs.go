package grammar

import (
	"regexp"

	"github.com/matkrin/colord/internal/color"
)

// Functional notations stay on one line; a literal missing its closing
// parenthesis before the line end is not matched.
var (
	rgbFuncRegex = regexp.MustCompile(`(?i)\brgba?\([^)\n]*\)`)
	hslFuncRegex = regexp.MustCompile(`(?i)\bhsla?\([^)\n]*\)`)
	hwbFuncRegex = regexp.MustCompile(`(?i)\bhwb\([^)\n]*\)`)
	hsvFuncRegex = regexp.MustCompile(`(?i)\bhsv\([^)\n]*\)`)
)

type rgbFuncMatcher struct{}

func (rgbFuncMatcher) Name() string { return "rgb" }

func (rgbFuncMatcher) Scan(text string) []Match {
	return scanFuncLits(text, rgbFuncRegex, color.ParseRGBFunc)
}

type hslFuncMatcher struct{}

func (hslFuncMatcher) Name() string { return "hsl" }

func (hslFuncMatcher) Scan(text string) []Match {
	return scanFuncLits(text, hslFuncRegex, color.ParseHSLFunc)
}

type hwbFuncMatcher struct{}

func (hwbFuncMatcher) Name() string { return "hwb" }

func (hwbFuncMatcher) Scan(text string) []Match {
	return scanFuncLits(text, hwbFuncRegex, color.ParseHWBFunc)
}

type hsvFuncMatcher struct{}

func (hsvFuncMatcher) Name() string { return "hsv" }

func (hsvFuncMatcher) Scan(text string) []Match {
	return scanFuncLits(text, hsvFuncRegex, color.ParseHSVFunc)
}

// A malformed component discards that single literal; the rest of the
// matcher's results are unaffected.
func scanFuncLits(text string, re *regexp.Regexp, parse func(string) (color.RGBA, color.Format, error)) []Match {
	var matches []Match
	for _, loc := range re.FindAllStringIndex(text, -1) {
		c, format, err := parse(text[loc[0]:loc[1]])
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
