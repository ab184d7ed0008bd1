package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dgallion1/exitsurvey/internal/analysis"
	"github.com/dgallion1/exitsurvey/internal/metrics"
	"github.com/dgallion1/exitsurvey/internal/parser"
	"github.com/dgallion1/exitsurvey/internal/survey"
)

// ErrNoAnswers is recorded on a completed job whose question columns were
// all blank.
var ErrNoAnswers = errors.New("Las columnas de preguntas no contienen respuestas")

// Worker processes a single analysis job.
type Worker struct {
	analyzer *analysis.Analyzer
	stats    *AnalysisStats
	log      *zap.Logger
}

func NewWorker(analyzer *analysis.Analyzer, stats *AnalysisStats, log *zap.Logger) *Worker {
	return &Worker{analyzer: analyzer, stats: stats, log: log}
}

// Process runs parse, precheck and analysis for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With(zap.String("job_id", job.ID), zap.String("filename", job.Filename))
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	sheet, err := ParseFile(job.Filename, bytes.NewReader(job.FileData()))
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		w.fail(job, "parsing", err)
		return
	}
	if err := survey.Precheck(sheet); err != nil {
		log.Warn("precheck rejected file", zap.Int("rows", len(sheet.Rows)), zap.Error(err))
		w.fail(job, "precheck", err)
		return
	}

	// Phase 2: Analyze
	job.SetStatus(StatusAnalyzing, "analyzing")
	res, err := w.analyzer.AnalyzeContext(ctx, sheet.Rows)
	if err != nil {
		log.Warn("analysis cancelled", zap.Error(err))
		w.fail(job, "analyzing", err)
		return
	}
	job.SetSheetSize(len(sheet.Rows), len(res.PerQuestion))
	if res.Overall.TotalAnswers == 0 {
		job.AddError(ErrNoAnswers.Error())
	}
	observe(job.Filename, len(sheet.Rows), res, time.Since(start))
	w.stats.Record(time.Since(start), len(sheet.Rows))

	job.Complete(res)
	metrics.JobsCompleted.WithLabelValues(string(StatusCompleted)).Inc()
	log.Info("analysis complete",
		zap.Int("rows", len(sheet.Rows)),
		zap.Int("questions", len(res.PerQuestion)),
		zap.Int("answers", res.Overall.TotalAnswers),
		zap.Strings("dominant", res.Overall.DominantCategories),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (w *Worker) fail(job *Job, phase string, err error) {
	job.Fail(phase, err)
	metrics.JobsCompleted.WithLabelValues(string(StatusFailed)).Inc()
}

// ParseFile picks a parser by extension and reads the file into a sheet.
func ParseFile(filename string, r io.Reader) (*survey.Sheet, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	sheet, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return sheet, nil
}

// AnalyzeFile parses, prechecks and analyzes one file in the caller's
// goroutine.
func AnalyzeFile(ctx context.Context, analyzer *analysis.Analyzer, filename string, r io.Reader) (*survey.Sheet, analysis.Result, error) {
	start := time.Now()
	sheet, err := ParseFile(filename, r)
	if err != nil {
		return nil, analysis.Result{}, err
	}
	if err := survey.Precheck(sheet); err != nil {
		return sheet, analysis.Result{}, err
	}
	res, err := analyzer.AnalyzeContext(ctx, sheet.Rows)
	if err != nil {
		return sheet, analysis.Result{}, err
	}
	observe(filename, len(sheet.Rows), res, time.Since(start))
	return sheet, res, nil
}

func observe(filename string, rows int, res analysis.Result, elapsed time.Duration) {
	metrics.AnalysisDuration.WithLabelValues(parser.Format(filename)).Observe(elapsed.Seconds())
	metrics.RowsAnalyzed.Add(float64(rows))
	matched := res.Overall.MatchedAnswers
	metrics.AnswersAnalyzed.WithLabelValues(strconv.FormatBool(true)).Add(float64(matched))
	metrics.AnswersAnalyzed.WithLabelValues(strconv.FormatBool(false)).Add(float64(res.Overall.TotalAnswers - matched))
}
