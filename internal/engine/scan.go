// Package engine runs the registered matchers over a document snapshot and
// merges their matches into one ordered, non-overlapping span sequence.
package engine

import (
	"sort"

	"github.com/matkrin/colord/internal/color"
	"github.com/matkrin/colord/internal/document"
	"github.com/matkrin/colord/internal/grammar"
	"github.com/matkrin/colord/internal/lsp"
)

// ColorSpan is one color literal found in a snapshot: its half-open byte
// range, the same range in line/UTF-16 coordinates, and the parsed value.
type ColorSpan struct {
	Start  int
	End    int
	Range  lsp.Range
	Color  color.RGBA
	Format color.Format
}

// Scan is a pure function of (languageID, text): it runs every applicable
// matcher once over the snapshot text, resolves overlaps in favor of the
// higher-priority matcher, and emits spans ordered by ascending start
// offset. Results for a fixed snapshot are deterministic.
func Scan(snap *document.Snapshot, registry *grammar.Registry) []ColorSpan {
	rules := registry.RulesFor(snap.LanguageID)

	type candidate struct {
		grammar.Match
		priority int
		rule     int
	}

	var candidates []candidate
	for i, rule := range rules {
		for _, m := range rule.Matcher.Scan(snap.Text) {
			candidates = append(candidates, candidate{Match: m, priority: rule.Priority, rule: i})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Suppression pass: visit by descending priority (registry order breaks
	// ties deterministically) and accept a candidate only if it intersects
	// no span accepted so far.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority > candidates[j].priority
		}
		if candidates[i].rule != candidates[j].rule {
			return candidates[i].rule < candidates[j].rule
		}
		return candidates[i].Start < candidates[j].Start
	})

	var accepted []candidate // kept sorted by Start
	for _, c := range candidates {
		i := sort.Search(len(accepted), func(i int) bool {
			return accepted[i].Start >= c.End
		})
		if i > 0 && accepted[i-1].End > c.Start {
			continue
		}
		accepted = append(accepted, candidate{})
		copy(accepted[i+1:], accepted[i:])
		accepted[i] = c
	}

	lines := snap.Lines()
	spans := make([]ColorSpan, len(accepted))
	for i, c := range accepted {
		spans[i] = ColorSpan{
			Start:  c.Start,
			End:    c.End,
			Range:  lsp.Range{Start: lines.Position(c.Start), End: lines.Position(c.End)},
			Color:  c.Color,
			Format: c.Format,
		}
	}
	return spans
}
