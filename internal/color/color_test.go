package color

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matkrin/colord/internal/lsp"
)

func lspColor(r, g, b, a float64) lsp.Color {
	return lsp.Color{Red: r, Green: g, Blue: b, Alpha: a}
}

func TestParseHex(t *testing.T) {
	var testCases = []struct {
		lit    string
		want   RGBA
		format Format
	}{
		{"#FFF", RGBA{R: 255, G: 255, B: 255, A: 1}, FormatHexShort},
		{"#F2c", RGBA{R: 255, G: 34, B: 204, A: 1}, FormatHexShort},
		{"#0f0E", RGBA{R: 0, G: 255, B: 0, A: float64(0xee) / 255}, FormatHexShortAlpha},
		{"#2eC8f1", RGBA{R: 0x2e, G: 0xc8, B: 0xf1, A: 1}, FormatHexLong},
		{"#ff003c99", RGBA{R: 0xff, G: 0x00, B: 0x3c, A: float64(0x99) / 255}, FormatHexLongAlpha},
	}

	for _, tt := range testCases {
		t.Run(tt.lit, func(t *testing.T) {
			got, format, err := ParseHex(tt.lit)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.format, format)
		})
	}
}

func TestParseHexMalformed(t *testing.T) {
	for _, lit := range []string{"fff", "#", "#ff", "#ff00f", "#ff00ffa", "#ff00ffaabb", "#ggg"} {
		_, _, err := ParseHex(lit)
		require.Error(t, err, "literal %q", lit)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, lit := range []string{"#fff", "#f2c", "#0f0e", "#2ec8f1", "#ff003c99", "#a0f0f0"} {
		c, format, err := ParseHex(lit)
		require.NoError(t, err)
		require.Equal(t, lit, c.Render(format))
	}
}

func TestParseRGBFunc(t *testing.T) {
	var testCases = []struct {
		lit    string
		want   RGBA
		format Format
	}{
		{"rgb(100, 200, 100)", RGBA{R: 100, G: 200, B: 100, A: 1}, FormatRGB},
		{"rgb(255 100 0)", RGBA{R: 255, G: 100, B: 0, A: 1}, FormatRGB},
		{"rgb(80%,80%,20%)", RGBA{R: 204, G: 204, B: 51, A: 1}, FormatRGB},
		{"rgba(0, 128, 255, 0.5)", RGBA{R: 0, G: 128, B: 255, A: 0.5}, FormatRGBA},
		{"rgba(255, 0, 0, 50%)", RGBA{R: 255, G: 0, B: 0, A: 0.5}, FormatRGBA},
		// out-of-range components clamp
		{"rgb(300, -20, 12)", RGBA{R: 255, G: 0, B: 12, A: 1}, FormatRGB},
		{"rgba(1, 2, 3, 7)", RGBA{R: 1, G: 2, B: 3, A: 1}, FormatRGBA},
	}

	for _, tt := range testCases {
		t.Run(tt.lit, func(t *testing.T) {
			got, format, err := ParseRGBFunc(tt.lit)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.format, format)
		})
	}
}

func TestParseRGBFuncMalformed(t *testing.T) {
	for _, lit := range []string{"rgb()", "rgb(1, 2)", "rgb(1, two, 3)", "rgba(1, 2, 3, x)", "rgb(1, 2, 3, 4, 5)"} {
		_, _, err := ParseRGBFunc(lit)
		require.Error(t, err, "literal %q", lit)
	}
}

func TestParseHSLFunc(t *testing.T) {
	var testCases = []struct {
		lit  string
		want RGBA
	}{
		{"hsl(0, 100%, 50%)", RGBA{R: 255, G: 0, B: 0, A: 1}},
		{"hsl(120, 100%, 25%)", RGBA{R: 0, G: 128, B: 0, A: 1}},
		{"hsl(0, 0%, 100%)", RGBA{R: 255, G: 255, B: 255, A: 1}},
		{"hsla(0, 100%, 50%, .5)", RGBA{R: 255, G: 0, B: 0, A: 0.5}},
		// hue wraps, saturation clamps
		{"hsl(360, 150%, 50%)", RGBA{R: 255, G: 0, B: 0, A: 1}},
		{"hsl(-240, 100%, 50%)", RGBA{R: 0, G: 255, B: 0, A: 1}},
	}

	for _, tt := range testCases {
		t.Run(tt.lit, func(t *testing.T) {
			got, _, err := ParseHSLFunc(tt.lit)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseHSLFuncMalformed(t *testing.T) {
	for _, lit := range []string{"hsl()", "hsl(12, 50%)", "hsl(a, 1%, 2%)", "hsla(1, 2%, 3%, zz)"} {
		_, _, err := ParseHSLFunc(lit)
		require.Error(t, err, "literal %q", lit)
	}
}

func TestParseHWBFunc(t *testing.T) {
	var testCases = []struct {
		lit  string
		want RGBA
	}{
		{"hwb(0, 0%, 0%)", RGBA{R: 255, G: 0, B: 0, A: 1}},
		{"hwb(0, 100%, 0%)", RGBA{R: 255, G: 255, B: 255, A: 1}},
		{"hwb(0, 0%, 100%)", RGBA{R: 0, G: 0, B: 0, A: 1}},
		// whiteness and blackness summing past 100% mix to gray
		{"hwb(120, 50%, 50%)", RGBA{R: 128, G: 128, B: 128, A: 1}},
		{"hwb(0, 0%, 0%, 0.5)", RGBA{R: 255, G: 0, B: 0, A: 0.5}},
	}

	for _, tt := range testCases {
		t.Run(tt.lit, func(t *testing.T) {
			got, format, err := ParseHWBFunc(tt.lit)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, FormatHWB, format)
		})
	}

	for _, lit := range []string{"hwb()", "hwb(1, 2%)", "hwb(a, 1%, 2%)"} {
		_, _, err := ParseHWBFunc(lit)
		require.Error(t, err, "literal %q", lit)
	}
}

func TestParseHSVFunc(t *testing.T) {
	var testCases = []struct {
		lit  string
		want RGBA
	}{
		{"hsv(0, 100%, 100%)", RGBA{R: 255, G: 0, B: 0, A: 1}},
		{"hsv(120, 100%, 50%)", RGBA{R: 0, G: 128, B: 0, A: 1}},
		{"hsv(0, 0%, 100%)", RGBA{R: 255, G: 255, B: 255, A: 1}},
		{"hsv(0, 100%, 100%, 50%)", RGBA{R: 255, G: 0, B: 0, A: 0.5}},
	}

	for _, tt := range testCases {
		t.Run(tt.lit, func(t *testing.T) {
			got, format, err := ParseHSVFunc(tt.lit)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, FormatHSV, format)
		})
	}

	for _, lit := range []string{"hsv()", "hsv(12, 50%)", "hsv(a, 1%, 2%)"} {
		_, _, err := ParseHSVFunc(lit)
		require.Error(t, err, "literal %q", lit)
	}
}

func TestNamed(t *testing.T) {
	c, ok := Named("RebeccaPurple")
	require.True(t, ok)
	require.Equal(t, RGBA{R: 0x66, G: 0x33, B: 0x99, A: 1}, c)

	c, ok = Named("black")
	require.True(t, ok)
	require.Equal(t, RGBA{A: 1}, c)

	_, ok = Named("notacolor")
	require.False(t, ok)
}

func TestHex(t *testing.T) {
	require.Equal(t, "#ff0000", RGBA{R: 255, A: 1}.Hex())
	require.Equal(t, "#0080ff80", RGBA{R: 0, G: 128, B: 255, A: 0.5}.Hex())
}

func TestRGBString(t *testing.T) {
	require.Equal(t, "rgb(255, 0, 0)", RGBA{R: 255, A: 1}.RGBString())
	require.Equal(t, "rgba(0, 128, 255, 0.5)", RGBA{G: 128, B: 255, A: 0.5}.RGBString())
}

func TestHSLString(t *testing.T) {
	require.Equal(t, "hsl(0, 100%, 50%)", RGBA{R: 255, A: 1}.HSLString())
	require.Equal(t, "hsla(210, 100%, 50%, 0.5)", RGBA{G: 128, B: 255, A: 0.5}.HSLString())
}

func TestFromLSP(t *testing.T) {
	c := FromLSP(lspColor(0, 128.0/255, 1, 0.5))
	require.Equal(t, RGBA{R: 0, G: 128, B: 255, A: 0.5}, c)

	// out-of-range wire values clamp
	c = FromLSP(lspColor(-1, 2, 0.5, 3))
	require.Equal(t, uint8(0), c.R)
	require.Equal(t, uint8(255), c.G)
	require.Equal(t, 1.0, c.A)
}

func TestPresentations(t *testing.T) {
	labels := Presentations(RGBA{R: 0, G: 128, B: 255, A: 0.5})
	require.Equal(t, []string{
		"#0080ff80",
		"rgba(0, 128, 255, 0.5)",
		"hsla(210, 100%, 50%, 0.5)",
	}, labels)

	labels = Presentations(RGBA{R: 255, G: 255, B: 255, A: 1})
	require.NotEmpty(t, labels)
	require.Equal(t, "#ffffff", labels[0])
}
