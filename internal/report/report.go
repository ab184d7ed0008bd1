// Package report renders analysis results for terminals and files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dgallion1/exitsurvey/internal/analysis"
)

// Format selects an output rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatText:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or text)", s)
}

// Write renders res in the given format.
func Write(w io.Writer, format Format, res analysis.Result) error {
	if format == FormatText {
		return WriteText(w, res)
	}
	return WriteJSON(w, res)
}

// WriteJSON writes res as indented JSON.
func WriteJSON(w io.Writer, res analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteText writes one block per question followed by the overall block.
// Dominant categories are marked with '*'.
func WriteText(w io.Writer, res analysis.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, q := range res.PerQuestion {
		writeQuestion(tw, "Pregunta: "+q.QuestionColumn, q)
		fmt.Fprintln(tw)
	}
	writeQuestion(tw, res.Overall.QuestionColumn, res.Overall)
	return tw.Flush()
}

func writeQuestion(tw *tabwriter.Writer, title string, q analysis.QuestionAnalysis) {
	fmt.Fprintf(tw, "%s\n", title)
	fmt.Fprintf(tw, "Respuestas: %d (categorizadas: %d)\n", q.TotalAnswers, q.MatchedAnswers)
	for _, t := range q.Tallies {
		mark := " "
		if q.IsDominant(t.Category) {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%d\t%.1f%%\t\n", mark, t.Category, t.Count, t.Percentage)
	}
}
