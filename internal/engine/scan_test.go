package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/matkrin/colord/internal/color"
	"github.com/matkrin/colord/internal/document"
	"github.com/matkrin/colord/internal/grammar"
	"github.com/matkrin/colord/internal/lsp"
)

var testRegistry = grammar.NewRegistry(grammar.DefaultOptions())

func snapshotOf(t rapid.TB, languageID, text string) *document.Snapshot {
	t.Helper()
	store := document.NewStore()
	return store.Open("file:///test", languageID, text)
}

func TestScanShortHex(t *testing.T) {
	spans := Scan(snapshotOf(t, "css", "color: #FFF;"), testRegistry)

	require.Len(t, spans, 1)
	span := spans[0]
	require.Equal(t, 7, span.Start)
	require.Equal(t, 11, span.End)
	require.Equal(t, lsp.NewRange(0, 7, 0, 11), span.Range)
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 1}, span.Color)
	require.Equal(t, color.FormatHexShort, span.Format)
}

func TestScanMixedNotations(t *testing.T) {
	text := `{
	"border": "#999",
	"fill": "rgba(255, 252, 0, 0.5)",
	"accent": "hsl(225, 100%, 70%)",
	"named": "tomato"
}`
	spans := Scan(snapshotOf(t, "json", text), testRegistry)

	require.Len(t, spans, 4)
	require.Equal(t, color.FormatHexShort, spans[0].Format)
	require.Equal(t, color.FormatRGBA, spans[1].Format)
	require.Equal(t, color.RGBA{R: 255, G: 252, B: 0, A: 0.5}, spans[1].Color)
	require.Equal(t, color.FormatHSL, spans[2].Format)
	require.Equal(t, color.FormatNamed, spans[3].Format)
}

func TestScanMultiByteShiftsColumns(t *testing.T) {
	// '東' is 3 bytes but a single UTF-16 unit; '😀' is 4 bytes and 2 units
	spans := Scan(snapshotOf(t, "css", "/* 東😀 */ #ff0000"), testRegistry)

	require.Len(t, spans, 1)
	require.Equal(t, uint(10), spans[0].Range.Start.Character)
	require.Equal(t, uint(17), spans[0].Range.End.Character)
}

func TestScanMalformedLiteralSkipped(t *testing.T) {
	spans := Scan(snapshotOf(t, "css", "a: rgb(1, nope, 3); b: #123456;"), testRegistry)

	require.Len(t, spans, 1)
	require.Equal(t, color.FormatHexLong, spans[0].Format)
}

func TestScanEmptyAndColorless(t *testing.T) {
	require.Empty(t, Scan(snapshotOf(t, "css", ""), testRegistry))
	require.Empty(t, Scan(snapshotOf(t, "css", "nothing to see here"), testRegistry))
}

func TestScanShellDocument(t *testing.T) {
	script := `echo "\e[38;2;0;128;255mhi" # plain comment` + "\n"
	spans := Scan(snapshotOf(t, "shellscript", script), testRegistry)

	require.Len(t, spans, 1)
	require.Equal(t, color.FormatANSI, spans[0].Format)
	require.Equal(t, color.RGBA{R: 0, G: 128, B: 255, A: 1}, spans[0].Color)
}

func TestScanDeterministicAndNonOverlapping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		languageID := rapid.SampledFrom([]string{"css", "json", "shellscript", "plaintext"}).Draw(t, "languageID")
		text := rapid.String().Draw(t, "text")
		snap := snapshotOf(t, languageID, text)

		first := Scan(snap, testRegistry)
		second := Scan(snap, testRegistry)
		require.Equal(t, first, second)

		for i, span := range first {
			require.Less(t, span.Start, span.End)
			if i > 0 {
				require.GreaterOrEqual(t, span.Start, first[i-1].End,
					"spans must be ordered and disjoint")
			}
		}
	})
}

func TestScanSeededLiterals(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lits := rapid.SliceOfN(rapid.SampledFrom([]string{
			"#1a2b3c", "#fff", "rgb(1, 2, 3)", "hsl(120, 50%, 50%)", "salmon",
		}), 1, 6).Draw(t, "lits")

		text := ""
		for _, lit := range lits {
			text += lit + " ; "
		}

		spans := Scan(snapshotOf(t, "css", text), testRegistry)
		require.Len(t, spans, len(lits))
	})
}
