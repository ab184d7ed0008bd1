package analysis

import (
	"maps"
	"slices"

	"github.com/dgallion1/exitsurvey/internal/survey"
)

// counts holds the running tallies for one question.
type counts struct {
	perCategory []int
	matched     int
	unmatched   int
	total       int
}

// Aggregator accumulates per-question category counts. Accumulation is
// commutative and associative, so partial aggregators over disjoint row
// sets can be merged in any order.
type Aggregator struct {
	numCategories int
	questions     map[string]*counts
}

// NewAggregator returns an empty aggregator for a catalog of n categories.
func NewAggregator(n int) *Aggregator {
	return &Aggregator{
		numCategories: n,
		questions:     make(map[string]*counts),
	}
}

func (a *Aggregator) question(q string) *counts {
	c, ok := a.questions[q]
	if !ok {
		c = &counts{perCategory: make([]int, a.numCategories)}
		a.questions[q] = c
	}
	return c
}

// Touch registers a question so it is reported even with no answers.
func (a *Aggregator) Touch(question string) {
	a.question(question)
}

// Add records one answer to question that matched the given category
// indexes. An empty match list counts toward the unmatched bucket.
func (a *Aggregator) Add(question string, matched []int) {
	c := a.question(question)
	c.total++
	if len(matched) == 0 {
		c.unmatched++
		return
	}
	c.matched++
	for _, i := range matched {
		c.perCategory[i]++
	}
}

// Merge folds other into a.
func (a *Aggregator) Merge(other *Aggregator) {
	for q, oc := range other.questions {
		c := a.question(q)
		c.total += oc.total
		c.matched += oc.matched
		c.unmatched += oc.unmatched
		for i, n := range oc.perCategory {
			c.perCategory[i] += n
		}
	}
}

// Questions returns the seen questions in question order.
func (a *Aggregator) Questions() []string {
	qs := slices.Collect(maps.Keys(a.questions))
	survey.SortQuestions(qs)
	return qs
}

// overall sums every question into one set of counts.
func (a *Aggregator) overall() *counts {
	sum := &counts{perCategory: make([]int, a.numCategories)}
	for _, c := range a.questions {
		sum.total += c.total
		sum.matched += c.matched
		sum.unmatched += c.unmatched
		for i, n := range c.perCategory {
			sum.perCategory[i] += n
		}
	}
	return sum
}
