package analysis

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/exitsurvey/internal/catalog"
	"github.com/dgallion1/exitsurvey/internal/match"
	"github.com/dgallion1/exitsurvey/internal/survey"
)

const exitColumn = "encuesta de salida"

func rowsFor(column string, cells ...string) []survey.Row {
	rows := make([]survey.Row, len(cells))
	for i, c := range cells {
		rows[i] = survey.NewRow([]string{"Nombre", column}, []string{"x", c})
	}
	return rows
}

func tally(t *testing.T, q QuestionAnalysis, category string) CategoryTally {
	t.Helper()
	ct, ok := q.Tally(category)
	require.True(t, ok, "missing tally for %q", category)
	return ct
}

func TestAnalyze_ScenarioA(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, "1. mal sueldo", "1. sueldo bajo y mal ambiente"))
	require.Len(t, res.PerQuestion, 1)
	q := res.PerQuestion[0]

	assert.Equal(t, exitColumn, q.QuestionColumn)
	assert.Equal(t, 2, q.TotalAnswers)
	assert.Equal(t, CategoryTally{Category: "Compensación", Count: 2, Percentage: 100}, tally(t, q, "Compensación"))
	assert.Equal(t, CategoryTally{Category: "Ambiente", Count: 1, Percentage: 50}, tally(t, q, "Ambiente"))
	assert.Equal(t, 0, tally(t, q, catalog.Unmatched).Count)
	assert.Equal(t, []string{"Compensación", "Ambiente"}, q.DominantCategories)
}

func TestAnalyze_ScenarioB(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, "1. quiero estudiar en la universidad"))
	q := res.PerQuestion[0]

	assert.Equal(t, 1, q.TotalAnswers)
	for _, ct := range q.Tallies {
		if ct.Category == "Estudios" {
			assert.Equal(t, 1, ct.Count)
			assert.Equal(t, 100.0, ct.Percentage)
			continue
		}
		assert.Zero(t, ct.Count, ct.Category)
	}
	assert.Equal(t, []string{"Estudios"}, q.DominantCategories)
}

func TestAnalyze_ScenarioC_EmptyCell(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, ""))
	require.Len(t, res.PerQuestion, 1, "a present but empty column is still reported")
	q := res.PerQuestion[0]

	assert.Equal(t, 0, q.TotalAnswers)
	for _, ct := range q.Tallies {
		assert.Zero(t, ct.Count)
		assert.Zero(t, ct.Percentage)
	}
	assert.Empty(t, q.DominantCategories)
	assert.NotNil(t, q.DominantCategories)
}

func TestAnalyze_ScenarioD_Unnumbered(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, "me cambio de ciudad por mudanza"))
	q := res.PerQuestion[0]

	assert.Equal(t, 1, q.TotalAnswers)
	assert.Equal(t, 1, tally(t, q, "Personal").Count)
	assert.Equal(t, []string{"Personal"}, q.DominantCategories)
}

func TestAnalyze_NoRows(t *testing.T) {
	res := Analyze(nil)
	assert.Empty(t, res.PerQuestion)
	assert.NotNil(t, res.PerQuestion)
	assert.Equal(t, OverallQuestion, res.Overall.QuestionColumn)
	assert.Equal(t, 0, res.Overall.TotalAnswers)
	assert.Len(t, res.Overall.Tallies, catalog.Default().Len()+1)
	assert.Empty(t, res.Overall.DominantCategories)
}

func TestAnalyze_UnrecognizedColumnsSkipped(t *testing.T) {
	res := Analyze(rowsFor("Comentarios", "1. sueldo"))
	assert.Empty(t, res.PerQuestion)
	assert.Zero(t, res.Overall.TotalAnswers)
}

func TestAnalyze_TalliesShapeAndOrder(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, "1. sueldo"))
	q := res.PerQuestion[0]
	names := catalog.Default().Names()

	require.Len(t, q.Tallies, len(names)+1)
	for i, n := range names {
		assert.Equal(t, n, q.Tallies[i].Category)
	}
	assert.Equal(t, catalog.Unmatched, q.Tallies[len(names)].Category)
}

func TestAnalyze_UnmatchedAnswersCountedOnce(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, "1. no sé\n2. sueldo y horario\n3. nada que decir"))
	q := res.PerQuestion[0]

	assert.Equal(t, 3, q.TotalAnswers)
	assert.Equal(t, 1, q.MatchedAnswers)
	assert.Equal(t, 2, tally(t, q, catalog.Unmatched).Count)
	assert.Equal(t, 66.7, tally(t, q, catalog.Unmatched).Percentage)
	assert.Equal(t, q.TotalAnswers, q.MatchedAnswers+tally(t, q, catalog.Unmatched).Count)

	sum := 0
	for _, ct := range q.Tallies[:len(q.Tallies)-1] {
		sum += ct.Count
	}
	assert.Equal(t, 2, sum, "multi-label counts may exceed matched answers")
}

func TestAnalyze_OverallSumsCounts(t *testing.T) {
	rows := []survey.Row{
		survey.NewRow([]string{"Motivo Pregunta 1", exitColumn}, []string{"sueldo", "1. distancia\n2. sueldo\n3. otra cosa"}),
	}
	res := Analyze(rows)
	require.Len(t, res.PerQuestion, 2)
	assert.Equal(t, "Motivo Pregunta 1", res.PerQuestion[0].QuestionColumn)

	o := res.Overall
	assert.Equal(t, 4, o.TotalAnswers)
	assert.Equal(t, 2, tally(t, o, "Compensación").Count)
	assert.Equal(t, 50.0, tally(t, o, "Compensación").Percentage)
	assert.Equal(t, 25.0, tally(t, o, "Transporte").Percentage)
	assert.Equal(t, 25.0, tally(t, o, catalog.Unmatched).Percentage)
	// Averaging the per-question percentages would give (100+33.3)/2 for Compensación.
	assert.Equal(t, []string{"Compensación", "Transporte"}, o.DominantCategories)
}

func TestAnalyze_Idempotent(t *testing.T) {
	rows := rowsFor(exitColumn, "1. sueldo\n2. familia", "1. universidad", "", "1. clima laboral")
	a, err := json.Marshal(Analyze(rows))
	require.NoError(t, err)
	b, err := json.Marshal(Analyze(rows))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAnalyze_OrderInvariant(t *testing.T) {
	rows := []survey.Row{
		survey.NewRow([]string{exitColumn}, []string{"1. sueldo\n2. familia"}),
		survey.NewRow([]string{"Motivo Pregunta 1"}, []string{"distancia"}),
		survey.NewRow([]string{exitColumn, "Motivo Pregunta 1"}, []string{"1. universidad", "otra empresa"}),
		survey.NewRow([]string{exitColumn}, []string{"nada"}),
		survey.NewRow([]string{exitColumn}, []string{"1. turnos 2. médico"}),
	}
	want, err := json.Marshal(Analyze(rows))
	require.NoError(t, err)

	r := rand.New(rand.NewPCG(1, 2))
	for range 10 {
		shuffled := append([]survey.Row(nil), rows...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got, err := json.Marshal(Analyze(shuffled))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestAnalyzer_ParallelMatchesSerial(t *testing.T) {
	var cells []string
	samples := []string{"1. sueldo", "1. familia\n2. traslado", "", "sin comentarios", "1. equipo 2. pago"}
	for i := range 103 {
		cells = append(cells, samples[i%len(samples)])
	}
	rows := rowsFor(exitColumn, cells...)

	serial := New(Config{Match: match.DefaultOptions()}).Analyze(rows)
	for _, p := range []int{2, 4, 16, 500} {
		parallel := New(Config{Match: match.DefaultOptions(), Parallelism: p}).Analyze(rows)
		assert.Equal(t, serial, parallel, "parallelism %d", p)
	}
}

func TestAnalyzer_FirstMatchMode(t *testing.T) {
	a := New(Config{Match: match.Options{Mode: match.FirstMatch, MatchCategoryNames: true}})
	res := a.Analyze(rowsFor(exitColumn, "1. sueldo bajo y mal ambiente"))
	q := res.PerQuestion[0]
	assert.Equal(t, 1, tally(t, q, "Compensación").Count)
	assert.Equal(t, 0, tally(t, q, "Ambiente").Count)
}

func TestAnalyzer_ExtraQuestionPatterns(t *testing.T) {
	rec, err := survey.NewRecognizer(`^Motivo Pregunta \d+$`)
	require.NoError(t, err)
	a := New(Config{Match: match.DefaultOptions(), Recognizer: rec})

	rows := []survey.Row{survey.NewRow(
		[]string{"Motivo Pregunta 2", "Motivo Pregunta 1"},
		[]string{"el horario", "la guardería"},
	)}
	res := a.Analyze(rows)
	require.Len(t, res.PerQuestion, 2)
	assert.Equal(t, "Motivo Pregunta 1", res.PerQuestion[0].QuestionColumn)
	assert.Equal(t, "Motivo Pregunta 2", res.PerQuestion[1].QuestionColumn)
}

func TestAnalyzer_CustomCatalog(t *testing.T) {
	cat, err := catalog.New([]catalog.Category{{Name: "Bono", Keywords: []string{"bono"}}})
	require.NoError(t, err)
	res := New(Config{Catalog: cat}).Analyze(rowsFor(exitColumn, "1. sin BONO", "1. sueldo"))
	q := res.PerQuestion[0]
	require.Len(t, q.Tallies, 2)
	assert.Equal(t, 1, tally(t, q, "Bono").Count)
	assert.Equal(t, 1, tally(t, q, catalog.Unmatched).Count)
}

func TestAnalyze_DashNumberedAnswers(t *testing.T) {
	res := Analyze(rowsFor(exitColumn, "1.- Sueldo bajo\n2.- Mal horario"))
	q := res.PerQuestion[0]

	assert.Equal(t, 2, q.TotalAnswers)
	assert.Equal(t, CategoryTally{Category: "Compensación", Count: 1, Percentage: 50}, tally(t, q, "Compensación"))
	assert.Equal(t, CategoryTally{Category: "Horario", Count: 1, Percentage: 50}, tally(t, q, "Horario"))
	assert.Equal(t, 0, tally(t, q, catalog.Unmatched).Count)
}

func TestAnalyzer_AnalyzeContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows := rowsFor(exitColumn, "1. sueldo", "1. familia", "1. horario", "1. trato")

	for _, p := range []int{1, 3} {
		a := New(Config{Match: match.DefaultOptions(), Parallelism: p})
		_, err := a.AnalyzeContext(ctx, rows)
		assert.ErrorIs(t, err, context.Canceled, "parallelism %d", p)
	}
}

func TestAnalyzer_AnalyzeContextMatchesAnalyze(t *testing.T) {
	rows := rowsFor(exitColumn, "1. sueldo\n2. horario", "sin comentarios")
	a := New(Config{Match: match.DefaultOptions(), Parallelism: 2})
	got, err := a.AnalyzeContext(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, a.Analyze(rows), got)
}
