package document

import "sync"

// Snapshot is an immutable captured document text at one revision. Edits
// never mutate a snapshot; the store replaces it with a successor carrying
// the next revision.
type Snapshot struct {
	URI        string
	LanguageID string
	Revision   int
	Text       string

	once  sync.Once
	lines *LineIndex
}

func newSnapshot(uri, languageID string, revision int, text string) *Snapshot {
	return &Snapshot{
		URI:        uri,
		LanguageID: languageID,
		Revision:   revision,
		Text:       text,
	}
}

// Lines returns the snapshot's line index, built on first use and shared
// afterwards. Safe for concurrent callers since the text is immutable.
func (s *Snapshot) Lines() *LineIndex {
	s.once.Do(func() {
		s.lines = NewLineIndex(s.Text)
	})
	return s.lines
}
