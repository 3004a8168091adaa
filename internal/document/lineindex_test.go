package document

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/matkrin/colord/internal/lsp"
)

func TestPositionASCII(t *testing.T) {
	ix := NewLineIndex("abc\ndef\n\nxyz")

	var testCases = []struct {
		offset int
		want   lsp.Position
	}{
		{0, lsp.Position{Line: 0, Character: 0}},
		{2, lsp.Position{Line: 0, Character: 2}},
		{3, lsp.Position{Line: 0, Character: 3}},
		{4, lsp.Position{Line: 1, Character: 0}},
		{8, lsp.Position{Line: 2, Character: 0}},
		{9, lsp.Position{Line: 3, Character: 0}},
		{12, lsp.Position{Line: 3, Character: 3}},
	}

	for _, tt := range testCases {
		require.Equal(t, tt.want, ix.Position(tt.offset), "offset %d", tt.offset)
	}
}

func TestPositionMultiByte(t *testing.T) {
	// 'é' is 2 bytes / 1 UTF-16 unit, '😀' is 4 bytes / 2 UTF-16 units
	text := "aé😀b"
	ix := NewLineIndex(text)

	require.Equal(t, lsp.Position{Line: 0, Character: 0}, ix.Position(0))
	require.Equal(t, lsp.Position{Line: 0, Character: 1}, ix.Position(1))
	require.Equal(t, lsp.Position{Line: 0, Character: 2}, ix.Position(3))
	require.Equal(t, lsp.Position{Line: 0, Character: 4}, ix.Position(7))
	require.Equal(t, lsp.Position{Line: 0, Character: 5}, ix.Position(8))
}

func TestOffsetClampsToLineEnd(t *testing.T) {
	ix := NewLineIndex("ab\ncd")

	off, err := ix.Offset(lsp.Position{Line: 0, Character: 99})
	require.NoError(t, err)
	require.Equal(t, 2, off, "column past line end clamps to before the newline")

	off, err = ix.Offset(lsp.Position{Line: 1, Character: 99})
	require.NoError(t, err)
	require.Equal(t, 5, off)
}

func TestOffsetLineOutOfRange(t *testing.T) {
	ix := NewLineIndex("ab\ncd")
	_, err := ix.Offset(lsp.Position{Line: 5, Character: 0})
	require.Error(t, err)
}

func TestOffsetInsideSurrogatePair(t *testing.T) {
	// column 1 falls between the two UTF-16 units of '😀'
	ix := NewLineIndex("😀x")
	off, err := ix.Offset(lsp.Position{Line: 0, Character: 1})
	require.NoError(t, err)
	require.Equal(t, 0, off, "mid-surrogate column resolves to the rune start")
}

func TestPositionRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		ix := NewLineIndex(text)

		for offset := 0; offset <= len(text); offset++ {
			if offset < len(text) && !utf8.RuneStart(text[offset]) {
				continue
			}
			pos := ix.Position(offset)
			back, err := ix.Offset(pos)
			if err != nil {
				t.Fatalf("offset %d -> %v -> error %v", offset, pos, err)
			}
			if back != offset {
				t.Fatalf("offset %d -> %v -> %d", offset, pos, back)
			}
		}
	})
}
