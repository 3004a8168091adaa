package document

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/matkrin/colord/internal/lsp"
)

var (
	ErrUnknownDocument = errors.New("document is not open")
	ErrInvalidRange    = errors.New("invalid edit range")
)

// Store holds the current snapshot of every open document. Snapshots are
// replaced atomically on edit, so a reader holding one is unaffected by
// later changes.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Snapshot
	// last revision issued per uri. Survives Close, so a reopened
	// document never reuses a revision and results computed for a
	// closed generation can never be mistaken for current ones.
	lastRev map[string]int
}

func NewStore() *Store {
	return &Store{
		docs:    make(map[string]*Snapshot),
		lastRev: make(map[string]int),
	}
}

// Open creates revision 0 for uri. Reopening a uri, whether still open or
// closed in between, continues its revision sequence.
func (s *Store) Open(uri, languageID, text string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	revision := 0
	if last, ok := s.lastRev[uri]; ok {
		revision = last + 1
	}
	snap := newSnapshot(uri, languageID, revision, text)
	s.docs[uri] = snap
	s.lastRev[uri] = revision
	return snap
}

// Change applies an ordered batch of edits against the current snapshot and
// installs the result as revision+1. Edits arrive in line/UTF-16-column
// coordinates; each one is translated through the line index of the text it
// applies to.
func (s *Store) Change(uri string, edits []lsp.TextDocumentContentChangeEvent) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("change %q: %w", uri, ErrUnknownDocument)
	}

	text := old.Text
	for _, edit := range edits {
		next, err := applyEdit(text, edit)
		if err != nil {
			return nil, err
		}
		text = next
	}

	snap := newSnapshot(uri, old.LanguageID, old.Revision+1, text)
	s.docs[uri] = snap
	s.lastRev[uri] = snap.Revision
	return snap, nil
}

// Close drops the document. Closing an unopened uri is a no-op.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Snapshot returns the current snapshot for uri, if open.
func (s *Store) Snapshot(uri string) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.docs[uri]
	return snap, ok
}

func applyEdit(text string, edit lsp.TextDocumentContentChangeEvent) (string, error) {
	if edit.Range == nil {
		return edit.Text, nil
	}

	ix := NewLineIndex(text)
	start, err := ix.Offset(edit.Range.Start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	end, err := ix.Offset(edit.Range.End)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if start > end {
		return "", fmt.Errorf("%w: start %d after end %d", ErrInvalidRange, start, end)
	}

	var b strings.Builder
	b.Grow(len(text) - (end - start) + len(edit.Text))
	b.WriteString(text[:start])
	b.WriteString(edit.Text)
	b.WriteString(text[end:])
	return b.String(), nil
}
