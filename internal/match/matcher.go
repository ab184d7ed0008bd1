// Package match assigns answers to catalog categories by keyword lookup.
package match

import (
	"fmt"
	"strings"

	"github.com/dgallion1/exitsurvey/internal/catalog"
)

// Mode selects how many categories one answer may receive.
type Mode int

const (
	// MultiLabel counts an answer toward every category it matches.
	MultiLabel Mode = iota
	// FirstMatch keeps only the first matching category in catalog order.
	FirstMatch
)

func (m Mode) String() string {
	switch m {
	case MultiLabel:
		return "multi"
	case FirstMatch:
		return "first"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "multi" or "first".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multi", "multi-label", "multilabel":
		return MultiLabel, nil
	case "first", "first-match", "firstmatch":
		return FirstMatch, nil
	}
	return MultiLabel, fmt.Errorf("unknown match mode %q", s)
}

// Options tune matching.
type Options struct {
	Mode Mode
	// MatchCategoryNames treats each category's own name as one more keyword.
	MatchCategoryNames bool
}

// DefaultOptions is multi-label matching with category names as keywords.
func DefaultOptions() Options {
	return Options{Mode: MultiLabel, MatchCategoryNames: true}
}

// Matcher holds the normalized keyword table of one catalog. It is
// immutable and safe for concurrent use.
type Matcher struct {
	names    []string
	keywords [][]string
	mode     Mode
}

// New normalizes the catalog keywords once for repeated matching.
func New(cat *catalog.Catalog, opts Options) *Matcher {
	m := &Matcher{
		names:    cat.Names(),
		keywords: make([][]string, cat.Len()),
		mode:     opts.Mode,
	}
	for i := range cat.Len() {
		c := cat.At(i)
		kws := make([]string, 0, len(c.Keywords)+1)
		for _, kw := range c.Keywords {
			if n := Normalize(kw); n != "" {
				kws = append(kws, n)
			}
		}
		if opts.MatchCategoryNames {
			kws = append(kws, Normalize(c.Name))
		}
		m.keywords[i] = kws
	}
	return m
}

// Match returns the indexes of the categories whose keywords occur in text,
// in catalog order. The result is empty when nothing matches.
func (m *Matcher) Match(text string) []int {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	var hits []int
	for i, kws := range m.keywords {
		for _, kw := range kws {
			if strings.Contains(norm, kw) {
				hits = append(hits, i)
				break
			}
		}
		if len(hits) > 0 && m.mode == FirstMatch {
			break
		}
	}
	return hits
}

// MatchNames is Match with category names instead of indexes.
func (m *Matcher) MatchNames(text string) []string {
	idx := m.Match(text)
	if len(idx) == 0 {
		return nil
	}
	names := make([]string, len(idx))
	for i, j := range idx {
		names[i] = m.names[j]
	}
	return names
}

// Len reports the number of categories the matcher knows.
func (m *Matcher) Len() int {
	return len(m.names)
}

// Names returns the category names in catalog order.
func (m *Matcher) Names() []string {
	return append([]string(nil), m.names...)
}
