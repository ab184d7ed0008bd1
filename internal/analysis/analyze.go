// Package analysis tallies categorized survey answers per question and
// builds the result shown to users.
package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/exitsurvey/internal/catalog"
	"github.com/dgallion1/exitsurvey/internal/extract"
	"github.com/dgallion1/exitsurvey/internal/match"
	"github.com/dgallion1/exitsurvey/internal/survey"
)

// Analyzer runs rows through extraction, matching and aggregation. It holds
// no per-run state and may be shared.
type Analyzer struct {
	matcher     *match.Matcher
	recognizer  *survey.Recognizer
	parallelism int
}

// Config wires an Analyzer.
type Config struct {
	Catalog    *catalog.Catalog
	Match      match.Options
	Recognizer *survey.Recognizer
	// Parallelism > 1 splits rows into that many partitions.
	Parallelism int
}

// New builds an Analyzer. A nil catalog or recognizer selects the defaults.
func New(cfg Config) *Analyzer {
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	rec := cfg.Recognizer
	if rec == nil {
		rec = survey.DefaultRecognizer()
	}
	p := cfg.Parallelism
	if p < 1 {
		p = 1
	}
	return &Analyzer{
		matcher:     match.New(cat, cfg.Match),
		recognizer:  rec,
		parallelism: p,
	}
}

// Analyze is a convenience for New with the default catalog, multi-label
// matching and the known survey columns.
func Analyze(rows []survey.Row) Result {
	return New(Config{Match: match.DefaultOptions()}).Analyze(rows)
}

// Analyze computes the per-question and overall analysis of rows.
func (a *Analyzer) Analyze(rows []survey.Row) Result {
	// A background context never cancels, so no error can come back.
	res, _ := a.AnalyzeContext(context.Background(), rows)
	return res
}

// AnalyzeContext is Analyze with cancellation. It returns ctx.Err() as soon
// as any partition observes that ctx is done.
func (a *Analyzer) AnalyzeContext(ctx context.Context, rows []survey.Row) (Result, error) {
	agg, err := a.aggregate(ctx, rows)
	if err != nil {
		return Result{}, err
	}
	return Build(agg, a.matcher.Names()), nil
}

func (a *Analyzer) aggregate(ctx context.Context, rows []survey.Row) (*Aggregator, error) {
	parts := a.parallelism
	if parts > len(rows) {
		parts = len(rows)
	}
	if parts <= 1 {
		return a.aggregateRows(ctx, rows)
	}

	partials := make([]*Aggregator, parts)
	size := (len(rows) + parts - 1) / parts
	g, gctx := errgroup.WithContext(ctx)
	for i := range parts {
		lo := min(i*size, len(rows))
		hi := min(lo+size, len(rows))
		g.Go(func() error {
			p, err := a.aggregateRows(gctx, rows[lo:hi])
			partials[i] = p
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := NewAggregator(a.matcher.Len())
	for _, p := range partials {
		total.Merge(p)
	}
	return total, nil
}

func (a *Analyzer) aggregateRows(ctx context.Context, rows []survey.Row) (*Aggregator, error) {
	agg := NewAggregator(a.matcher.Len())
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, q := range a.recognizer.QuestionColumns(row) {
			agg.Touch(q)
		}
		for ans := range extract.Answers(row, a.recognizer) {
			agg.Add(ans.Question, a.matcher.Match(ans.Text))
		}
	}
	return agg, nil
}
