// Package color holds the normalized color value every recognized notation
// parses into, and the rendering of a value back out into the supported
// notations.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matkrin/colord/internal/lsp"
)

// Format tags the textual notation a color was parsed from.
type Format int

const (
	FormatHexShort Format = iota // #rgb
	FormatHexShortAlpha          // #rgba
	FormatHexLong                // #rrggbb
	FormatHexLongAlpha           // #rrggbbaa
	FormatRGB
	FormatRGBA
	FormatHSL
	FormatHSLA
	FormatHWB
	FormatHSV
	FormatNamed
	FormatANSI
)

func (f Format) String() string {
	switch f {
	case FormatHexShort:
		return "hex-short"
	case FormatHexShortAlpha:
		return "hex-short-alpha"
	case FormatHexLong:
		return "hex-long"
	case FormatHexLongAlpha:
		return "hex-long-alpha"
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	case FormatHSL:
		return "hsl"
	case FormatHSLA:
		return "hsla"
	case FormatHWB:
		return "hwb"
	case FormatHSV:
		return "hsv"
	case FormatNamed:
		return "named"
	case FormatANSI:
		return "ansi"
	}
	return "unknown"
}

// RGBA is the canonical color value: 8-bit channels, unit-interval alpha.
type RGBA struct {
	R, G, B uint8
	A       float64
}

func (c RGBA) ToLSP() lsp.Color {
	return lsp.Color{
		Red:   float64(c.R) / 255,
		Green: float64(c.G) / 255,
		Blue:  float64(c.B) / 255,
		Alpha: c.A,
	}
}

func FromLSP(c lsp.Color) RGBA {
	return RGBA{
		R: clampChannel(c.Red * 255),
		G: clampChannel(c.Green * 255),
		B: clampChannel(c.Blue * 255),
		A: clampUnit(c.Alpha),
	}
}

// ParseHex parses #rgb, #rgba, #rrggbb and #rrggbbaa literals.
func ParseHex(lit string) (RGBA, Format, error) {
	digits, ok := strings.CutPrefix(lit, "#")
	if !ok {
		return RGBA{}, 0, fmt.Errorf("hex literal must start with '#': %q", lit)
	}

	for _, r := range digits {
		if !isHexDigit(r) {
			return RGBA{}, 0, fmt.Errorf("invalid hex digit in %q", lit)
		}
	}

	switch len(digits) {
	case 3, 4:
		r := hexNibble(digits[0])
		g := hexNibble(digits[1])
		b := hexNibble(digits[2])
		c := RGBA{R: r<<4 | r, G: g<<4 | g, B: b<<4 | b, A: 1.0}
		format := FormatHexShort
		if len(digits) == 4 {
			a := hexNibble(digits[3])
			c.A = float64(a<<4|a) / 255
			format = FormatHexShortAlpha
		}
		return c, format, nil

	case 6, 8:
		r := hexByte(digits[0:2])
		g := hexByte(digits[2:4])
		b := hexByte(digits[4:6])
		c := RGBA{R: r, G: g, B: b, A: 1.0}
		format := FormatHexLong
		if len(digits) == 8 {
			c.A = float64(hexByte(digits[6:8])) / 255
			format = FormatHexLongAlpha
		}
		return c, format, nil
	}

	return RGBA{}, 0, fmt.Errorf("hex literal has %d digits, want 3, 4, 6 or 8", len(digits))
}

// ParseRGBFunc parses rgb() and rgba() literals. Channels may be plain
// numbers or percentages, the alpha a unit-interval number or a percentage.
// Components clamp; a non-numeric component is an error.
func ParseRGBFunc(lit string) (RGBA, Format, error) {
	name, args, err := splitFuncLit(lit)
	if err != nil {
		return RGBA{}, 0, err
	}

	format := FormatRGB
	switch name {
	case "rgb":
	case "rgba":
		format = FormatRGBA
	default:
		return RGBA{}, 0, fmt.Errorf("not an rgb() literal: %q", lit)
	}

	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, 0, fmt.Errorf("rgb() wants 3 or 4 components, got %d", len(args))
	}

	var channels [3]uint8
	for i, arg := range args[:3] {
		v, err := parseChannel(arg)
		if err != nil {
			return RGBA{}, 0, err
		}
		channels[i] = v
	}

	c := RGBA{R: channels[0], G: channels[1], B: channels[2], A: 1.0}
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, 0, err
		}
		c.A = a
	}
	return c, format, nil
}

// ParseHSLFunc parses hsl() and hsla() literals. Hue is in degrees and wraps;
// saturation and lightness are percentages and clamp to 0-100.
func ParseHSLFunc(lit string) (RGBA, Format, error) {
	name, args, err := splitFuncLit(lit)
	if err != nil {
		return RGBA{}, 0, err
	}

	format := FormatHSL
	switch name {
	case "hsl":
	case "hsla":
		format = FormatHSLA
	default:
		return RGBA{}, 0, fmt.Errorf("not an hsl() literal: %q", lit)
	}

	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, 0, fmt.Errorf("hsl() wants 3 or 4 components, got %d", len(args))
	}

	h, err := parseHue(args[0])
	if err != nil {
		return RGBA{}, 0, err
	}
	s, err := parsePercent(args[1])
	if err != nil {
		return RGBA{}, 0, err
	}
	l, err := parsePercent(args[2])
	if err != nil {
		return RGBA{}, 0, err
	}

	r, g, b := colorful.Hsl(h, s/100, l/100).Clamped().RGB255()
	c := RGBA{R: r, G: g, B: b, A: 1.0}
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, 0, err
		}
		c.A = a
	}
	return c, format, nil
}

// ParseHWBFunc parses hwb() literals. Hue is in degrees and wraps;
// whiteness and blackness are percentages. When whiteness and blackness sum
// past 100% the result is the gray they mix to.
func ParseHWBFunc(lit string) (RGBA, Format, error) {
	name, args, err := splitFuncLit(lit)
	if err != nil {
		return RGBA{}, 0, err
	}
	if name != "hwb" {
		return RGBA{}, 0, fmt.Errorf("not an hwb() literal: %q", lit)
	}
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, 0, fmt.Errorf("hwb() wants 3 or 4 components, got %d", len(args))
	}

	h, err := parseHue(args[0])
	if err != nil {
		return RGBA{}, 0, err
	}
	w, err := parsePercent(args[1])
	if err != nil {
		return RGBA{}, 0, err
	}
	b, err := parsePercent(args[2])
	if err != nil {
		return RGBA{}, 0, err
	}
	w /= 100
	b /= 100

	var c RGBA
	if w+b >= 1 {
		gray := clampChannel(w / (w + b) * 255)
		c = RGBA{R: gray, G: gray, B: gray, A: 1.0}
	} else {
		v := 1 - b
		s := 0.0
		if v > 0 {
			s = 1 - w/v
		}
		r, g, bb := colorful.Hsv(h, s, v).Clamped().RGB255()
		c = RGBA{R: r, G: g, B: bb, A: 1.0}
	}

	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, 0, err
		}
		c.A = a
	}
	return c, FormatHWB, nil
}

// ParseHSVFunc parses hsv() literals: hue in degrees, saturation and value
// as percentages.
func ParseHSVFunc(lit string) (RGBA, Format, error) {
	name, args, err := splitFuncLit(lit)
	if err != nil {
		return RGBA{}, 0, err
	}
	if name != "hsv" {
		return RGBA{}, 0, fmt.Errorf("not an hsv() literal: %q", lit)
	}
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, 0, fmt.Errorf("hsv() wants 3 or 4 components, got %d", len(args))
	}

	h, err := parseHue(args[0])
	if err != nil {
		return RGBA{}, 0, err
	}
	s, err := parsePercent(args[1])
	if err != nil {
		return RGBA{}, 0, err
	}
	v, err := parsePercent(args[2])
	if err != nil {
		return RGBA{}, 0, err
	}

	r, g, b := colorful.Hsv(h, s/100, v/100).Clamped().RGB255()
	c := RGBA{R: r, G: g, B: b, A: 1.0}
	if len(args) == 4 {
		a, err := parseAlpha(args[3])
		if err != nil {
			return RGBA{}, 0, err
		}
		c.A = a
	}
	return c, FormatHSV, nil
}

// Hex renders the long hex form, with an alpha byte when alpha is not 1.
// This is the canonical presentation label.
func (c RGBA) Hex() string {
	if c.A < 1.0 {
		return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, alphaByte(c.A))
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBString renders rgb(r, g, b), or rgba() when alpha is not 1.
func (c RGBA) RGBString() string {
	if c.A < 1.0 {
		return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HSLString renders hsl(h, s%, l%), or hsla() when alpha is not 1.
func (c RGBA) HSLString() string {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()

	hs := strconv.FormatFloat(math.Round(h), 'f', -1, 64)
	ss := strconv.FormatFloat(math.Round(s*100), 'f', -1, 64)
	ls := strconv.FormatFloat(math.Round(l*100), 'f', -1, 64)

	if c.A < 1.0 {
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", hs, ss, ls, formatAlpha(c.A))
	}
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", hs, ss, ls)
}

// Render reproduces the notation tagged by format. Short hex falls back to
// the long form when a channel does not collapse to one digit.
func (c RGBA) Render(format Format) string {
	switch format {
	case FormatHexShort, FormatHexShortAlpha:
		if short, ok := c.shortHex(format == FormatHexShortAlpha); ok {
			return short
		}
		return c.Hex()
	case FormatRGB, FormatRGBA:
		return c.RGBString()
	case FormatHSL, FormatHSLA:
		return c.HSLString()
	default:
		return c.Hex()
	}
}

func (c RGBA) shortHex(withAlpha bool) (string, bool) {
	a := alphaByte(c.A)
	collapses := func(b uint8) bool { return b>>4 == b&0x0f }
	if !collapses(c.R) || !collapses(c.G) || !collapses(c.B) {
		return "", false
	}
	if withAlpha {
		if !collapses(a) {
			return "", false
		}
		return fmt.Sprintf("#%x%x%x%x", c.R&0x0f, c.G&0x0f, c.B&0x0f, a&0x0f), true
	}
	if c.A < 1.0 {
		return "", false
	}
	return fmt.Sprintf("#%x%x%x", c.R&0x0f, c.G&0x0f, c.B&0x0f), true
}

func isHexDigit(r rune) bool {
	return r >= '0' && r <= '9' || r >= 'a' && r <= 'f' || r >= 'A' && r <= 'F'
}

func hexNibble(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func hexByte(s string) uint8 {
	return hexNibble(s[0])<<4 | hexNibble(s[1])
}

// splitFuncLit splits "name(a, b, c)" into the lowercase name and trimmed
// arguments. Both comma and space separated component lists are accepted,
// with an optional "/" before the alpha component.
func splitFuncLit(lit string) (string, []string, error) {
	open := strings.IndexByte(lit, '(')
	if open < 0 || !strings.HasSuffix(lit, ")") {
		return "", nil, fmt.Errorf("not a functional literal: %q", lit)
	}
	name := strings.ToLower(strings.TrimSpace(lit[:open]))
	inner := lit[open+1 : len(lit)-1]

	args := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	})
	if len(args) == 0 {
		return "", nil, fmt.Errorf("empty functional literal: %q", lit)
	}
	return name, args, nil
}

func parseChannel(s string) (uint8, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid channel %q: %w", s, err)
		}
		return clampChannel(v / 100 * 255), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid channel %q: %w", s, err)
	}
	return clampChannel(v), nil
}

func parseAlpha(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid alpha %q: %w", s, err)
		}
		return clampUnit(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid alpha %q: %w", s, err)
	}
	return clampUnit(v), nil
}

func parseHue(s string) (float64, error) {
	s = strings.TrimSuffix(s, "deg")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hue %q: %w", s, err)
	}
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v, nil
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return min(max(v, 0), 100), nil
}

func clampChannel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 255)))
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clampUnit(a) * 255))
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(math.Round(a*1000)/1000, 'f', -1, 64)
}
