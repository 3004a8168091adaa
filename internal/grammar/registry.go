// Package grammar holds the rule table mapping languages to color-literal
// matchers. The table is built once from configuration and immutable
// afterwards; matchers themselves are stateless.
package grammar

import (
	"slices"

	"github.com/matkrin/colord/internal/color"
)

// Match is one recognized color literal: a half-open byte interval into the
// scanned text plus the parsed value. Matches from a single matcher never
// overlap each other.
type Match struct {
	Start  int
	End    int
	Color  color.RGBA
	Format color.Format
}

// Matcher recognizes one textual color notation. Scan makes a single linear
// pass over text.
type Matcher interface {
	Name() string
	Scan(text string) []Match
}

// Rule binds a matcher to language families. An empty Languages list makes
// the rule generic; it applies to every language. When rules from different
// matchers produce intersecting spans, the higher priority wins.
type Rule struct {
	Languages []string
	Priority  int
	Matcher   Matcher
}

// Options selects which matchers the registry carries.
type Options struct {
	// NamedColors enables the color-keyword matcher.
	NamedColors bool
	// Disabled lists matcher names switched off per language id; the "*"
	// key disables a matcher everywhere.
	Disabled map[string][]string
}

func DefaultOptions() Options {
	return Options{NamedColors: true}
}

type Registry struct {
	rules    []Rule
	disabled map[string][]string
}

// NewRegistry builds the rule table. Loaded once at startup; never mutated.
func NewRegistry(opts Options) *Registry {
	rules := []Rule{
		{Languages: []string{"shellscript", "sh", "bash", "zsh"}, Priority: 30, Matcher: shellMatcher{}},
		{Priority: 20, Matcher: hexMatcher{}},
		{Priority: 20, Matcher: rgbFuncMatcher{}},
		{Priority: 20, Matcher: hslFuncMatcher{}},
		{Priority: 20, Matcher: hwbFuncMatcher{}},
		{Priority: 20, Matcher: hsvFuncMatcher{}},
	}
	if opts.NamedColors {
		rules = append(rules, Rule{Priority: 10, Matcher: namedMatcher{}})
	}

	slices.SortStableFunc(rules, func(a, b Rule) int {
		return b.Priority - a.Priority
	})

	return &Registry{rules: rules, disabled: opts.Disabled}
}

// RulesFor returns the rules applying to languageID, highest priority
// first. Generic rules always apply, so an unregistered language falls back
// to the generic set.
func (r *Registry) RulesFor(languageID string) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if len(rule.Languages) > 0 && !slices.Contains(rule.Languages, languageID) {
			continue
		}
		if r.isDisabled(languageID, rule.Matcher.Name()) {
			continue
		}
		out = append(out, rule)
	}
	return out
}

func (r *Registry) isDisabled(languageID, matcher string) bool {
	return slices.Contains(r.disabled[languageID], matcher) ||
		slices.Contains(r.disabled["*"], matcher)
}
