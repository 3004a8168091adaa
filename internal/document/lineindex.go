package document

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/matkrin/colord/internal/lsp"
)

// LineIndex maps between byte offsets and line/UTF-16-column positions for
// one immutable text. Built once per snapshot and shared by every span
// derived from it.
type LineIndex struct {
	text string
	// byte offset of each line start; starts[0] is always 0
	starts []int
}

func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

func (ix *LineIndex) LineCount() int {
	return len(ix.starts)
}

// Position converts a byte offset into a line/UTF-16-column position.
// Offsets outside the text clamp to its bounds; an offset inside a
// multi-byte rune resolves to the rune start.
func (ix *LineIndex) Position(offset int) lsp.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.text) {
		offset = len(ix.text)
	}

	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1

	var col uint
	pos := ix.starts[line]
	for pos < offset {
		r, size := utf8.DecodeRuneInString(ix.text[pos:])
		if pos+size > offset {
			break
		}
		col += uint(utf16Len(r))
		pos += size
	}

	return lsp.Position{Line: uint(line), Character: col}
}

// Offset converts a line/UTF-16-column position into a byte offset. A line
// beyond the document is an error; a column beyond the line end clamps to
// the line end, per the protocol's client contract. A column landing inside
// a surrogate pair resolves to the rune start.
func (ix *LineIndex) Offset(pos lsp.Position) (int, error) {
	if int(pos.Line) >= len(ix.starts) {
		return 0, fmt.Errorf("line %d out of range, document has %d lines", pos.Line, len(ix.starts))
	}

	offset := ix.starts[pos.Line]
	var col uint
	for col < pos.Character && offset < len(ix.text) {
		r, size := utf8.DecodeRuneInString(ix.text[offset:])
		if r == '\n' {
			break
		}
		units := uint(utf16Len(r))
		if col+units > pos.Character {
			break
		}
		col += units
		offset += size
	}
	return offset, nil
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}
