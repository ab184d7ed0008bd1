package analysis

import (
	"math"

	"github.com/dgallion1/exitsurvey/internal/catalog"
)

// DominanceThreshold is the percentage a category must strictly exceed to
// be reported as dominant.
const DominanceThreshold = 20.0

// OverallQuestion labels the combined analysis across all questions.
const OverallQuestion = "General"

// CategoryTally is one category's share of a question's answers.
type CategoryTally struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QuestionAnalysis is the breakdown for one question column. Tallies hold
// one entry per catalog category in order, then the unmatched bucket.
type QuestionAnalysis struct {
	QuestionColumn     string          `json:"questionColumn"`
	TotalAnswers       int             `json:"totalAnswers"`
	MatchedAnswers     int             `json:"matchedAnswers"`
	Tallies            []CategoryTally `json:"tallies"`
	DominantCategories []string        `json:"dominantCategories"`
}

// Result is what the presentation layer renders.
type Result struct {
	PerQuestion []QuestionAnalysis `json:"perQuestion"`
	Overall     QuestionAnalysis   `json:"overall"`
}

// Tally returns the tally for category, or false if absent.
func (q QuestionAnalysis) Tally(category string) (CategoryTally, bool) {
	for _, t := range q.Tallies {
		if t.Category == category {
			return t, true
		}
	}
	return CategoryTally{}, false
}

// IsDominant reports whether category is in DominantCategories.
func (q QuestionAnalysis) IsDominant(category string) bool {
	for _, c := range q.DominantCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Build turns the aggregator's raw counts into percentages and dominance
// flags. The overall analysis sums counts across questions before
// recomputing percentages; it never averages them.
func Build(agg *Aggregator, names []string) Result {
	res := Result{PerQuestion: []QuestionAnalysis{}}
	for _, q := range agg.Questions() {
		res.PerQuestion = append(res.PerQuestion, buildQuestion(q, agg.questions[q], names))
	}
	res.Overall = buildQuestion(OverallQuestion, agg.overall(), names)
	return res
}

func buildQuestion(question string, c *counts, names []string) QuestionAnalysis {
	qa := QuestionAnalysis{
		QuestionColumn:     question,
		TotalAnswers:       c.total,
		MatchedAnswers:     c.matched,
		Tallies:            make([]CategoryTally, 0, len(names)+1),
		DominantCategories: []string{},
	}
	for i, name := range names {
		pct := Percentage(c.perCategory[i], c.total)
		qa.Tallies = append(qa.Tallies, CategoryTally{Category: name, Count: c.perCategory[i], Percentage: pct})
		if pct > DominanceThreshold {
			qa.DominantCategories = append(qa.DominantCategories, name)
		}
	}
	qa.Tallies = append(qa.Tallies, CategoryTally{
		Category:   catalog.Unmatched,
		Count:      c.unmatched,
		Percentage: Percentage(c.unmatched, c.total),
	})
	return qa
}

// Percentage is 100*count/total rounded to one decimal, halves rounded up.
// A zero total gives zero.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)*1000/float64(total)) / 10
}
