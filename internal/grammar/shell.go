package grammar

import (
	"regexp"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/matkrin/colord/internal/color"
)

var ansiRegex = regexp.MustCompile(`(\\e|\\033|\\x1b|\x1b)\[[0-9;]*m`)

// shellMatcher recognizes ANSI SGR color escapes in shell scripts. The
// document is parsed so escapes inside comments do not match; when the
// script does not parse, every escape in the text counts.
type shellMatcher struct{}

func (shellMatcher) Name() string { return "shell-ansi" }

func (shellMatcher) Scan(text string) []Match {
	comments := commentSpans(text)

	var matches []Match
	for _, loc := range ansiRegex.FindAllStringIndex(text, -1) {
		if insideSpan(comments, loc[0]) {
			continue
		}
		c, ok := parseSGRColor(normalizeEscape(text[loc[0]:loc[1]]))
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Start:  loc[0],
			End:    loc[1],
			Color:  c,
			Format: color.FormatANSI,
		})
	}
	return matches
}

func commentSpans(text string) [][2]int {
	parser := syntax.NewParser(syntax.KeepComments(true))
	file, err := parser.Parse(strings.NewReader(text), "")
	if err != nil {
		return nil
	}

	var spans [][2]int
	syntax.Walk(file, func(node syntax.Node) bool {
		if comment, ok := node.(*syntax.Comment); ok {
			spans = append(spans, [2]int{int(comment.Pos().Offset()), int(comment.End().Offset())})
		}
		return true
	})
	return spans
}

func insideSpan(spans [][2]int, offset int) bool {
	for _, span := range spans {
		if offset >= span[0] && offset < span[1] {
			return true
		}
	}
	return false
}

// Transform different escape notations to \x1b format
func normalizeEscape(raw string) string {
	raw = strings.ReplaceAll(raw, `\e`, "\x1b")
	raw = strings.ReplaceAll(raw, `\033`, "\x1b")
	raw = strings.ReplaceAll(raw, `\x1b`, "\x1b")
	return raw
}

func parseSGRColor(normalized string) (color.RGBA, bool) {
	if !strings.HasPrefix(normalized, "\x1b[") || !strings.HasSuffix(normalized, "m") {
		return color.RGBA{}, false
	}

	code := strings.TrimSuffix(strings.TrimPrefix(normalized, "\x1b["), "m")
	parts := strings.Split(code, ";")
	if len(parts) == 0 {
		return color.RGBA{}, false
	}

	// 256-color foreground/background: 38;5;<n> / 48;5;<n>
	if len(parts) == 3 && (parts[0] == "38" || parts[0] == "48") && parts[1] == "5" {
		idx, err := strconv.Atoi(parts[2])
		if err != nil || idx < 0 || idx > 255 {
			return color.RGBA{}, false
		}
		return xterm256ToRGB(idx), true
	}

	// True color foreground/background: 38;2;<r>;<g>;<b> / 48;2;<r>;<g>;<b>
	if len(parts) == 5 && (parts[0] == "38" || parts[0] == "48") && parts[1] == "2" {
		var channels [3]uint8
		for i, part := range parts[2:] {
			v, err := strconv.Atoi(part)
			if err != nil || v < 0 || v > 255 {
				return color.RGBA{}, false
			}
			channels[i] = uint8(v)
		}
		return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 1.0}, true
	}

	// Basic color approximations (depend on the user's terminal emulator)
	idx, ok := basicSGRIndex[code]
	if !ok {
		return color.RGBA{}, false
	}
	return basicColors[idx], true
}

// Converts a color index (0-255) to RGB according to the xterm palette
func xterm256ToRGB(index int) color.RGBA {
	switch {
	case index < 16:
		// 0- 7: standard colors (as in ESC [ 30-37 m)
		// 8-15: high intensity colors (as in ESC [ 90-97 m)
		return basicColors[index]
	case index < 232:
		// 16-231: 6 x 6 x 6 cube: 16 + 36*r + 6*g + b (0 <= r, g, b <= 5)
		index -= 16
		r := (index / 36) % 6
		g := (index / 6) % 6
		b := index % 6
		return color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 1.0}
	default:
		// 232-255: grayscale from dark to light in 24 steps
		gray := uint8((index - 232) * 255 / 23)
		return color.RGBA{R: gray, G: gray, B: gray, A: 1.0}
	}
}

var basicSGRIndex = map[string]int{
	"30": 0, "31": 1, "32": 2, "33": 3, "34": 4, "35": 5, "36": 6, "37": 7,
	"40": 0, "41": 1, "42": 2, "43": 3, "44": 4, "45": 5, "46": 6, "47": 7,
	"90": 8, "91": 9, "92": 10, "93": 11, "94": 12, "95": 13, "96": 14, "97": 15,
	"100": 8, "101": 9, "102": 10, "103": 11, "104": 12, "105": 13, "106": 14, "107": 15,
}

var basicColors = []color.RGBA{
	{R: 0, G: 0, B: 0, A: 1},       // 0: black
	{R: 204, G: 0, B: 0, A: 1},     // 1: red
	{R: 0, G: 204, B: 0, A: 1},     // 2: green
	{R: 204, G: 204, B: 0, A: 1},   // 3: yellow
	{R: 0, G: 0, B: 204, A: 1},     // 4: blue
	{R: 204, G: 0, B: 204, A: 1},   // 5: magenta
	{R: 0, G: 204, B: 204, A: 1},   // 6: cyan
	{R: 204, G: 204, B: 204, A: 1}, // 7: white

	{R: 51, G: 51, B: 51, A: 1},    // 8: bright black
	{R: 255, G: 0, B: 0, A: 1},     // 9: bright red
	{R: 0, G: 255, B: 0, A: 1},     // 10: bright green
	{R: 255, G: 255, B: 0, A: 1},   // 11: bright yellow
	{R: 102, G: 102, B: 255, A: 1}, // 12: bright blue
	{R: 255, G: 0, B: 255, A: 1},   // 13: bright magenta
	{R: 0, G: 255, B: 255, A: 1},   // 14: bright cyan
	{R: 255, G: 255, B: 255, A: 1}, // 15: bright white
}
