package survey

import (
	"fmt"
	"regexp"
	"sort"
)

// Column identifies one of the survey columns known at compile time.
type Column int

const (
	ColumnMotivoPregunta1 Column = iota
	ColumnEncuestaSalida
	ColumnEncuestaSalida4FRH209
	numKnownColumns
)

var knownColumnNames = [numKnownColumns]string{
	ColumnMotivoPregunta1:       "Motivo Pregunta 1",
	ColumnEncuestaSalida:        "encuesta de salida",
	ColumnEncuestaSalida4FRH209: "Encuesta de salida 4FRH-209",
}

// String returns the literal header text of the column.
func (c Column) String() string {
	if c < 0 || c >= numKnownColumns {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return knownColumnNames[c]
}

// KnownColumns returns the known survey columns in their fixed order.
func KnownColumns() []Column {
	cols := make([]Column, numKnownColumns)
	for i := range cols {
		cols[i] = Column(i)
	}
	return cols
}

// KnownColumn looks up a header by exact name.
func KnownColumn(name string) (Column, bool) {
	for i, n := range knownColumnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// Recognizer decides which columns are question-bearing: the known survey
// columns plus any column matching a caller-declared pattern.
type Recognizer struct {
	patterns []*regexp.Regexp
}

// NewRecognizer compiles the extra column-name patterns.
func NewRecognizer(patterns ...string) (*Recognizer, error) {
	r := &Recognizer{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("question pattern %q: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}
	return r, nil
}

// DefaultRecognizer recognizes only the known survey columns.
func DefaultRecognizer() *Recognizer {
	return &Recognizer{}
}

// Recognize reports whether name is a question-bearing column.
func (r *Recognizer) Recognize(name string) bool {
	if _, ok := KnownColumn(name); ok {
		return true
	}
	for _, re := range r.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// QuestionColumns returns the recognized columns present in row, in
// question order.
func (r *Recognizer) QuestionColumns(row Row) []string {
	var cols []string
	for _, c := range row.Columns {
		if r.Recognize(c) {
			cols = append(cols, c)
		}
	}
	SortQuestions(cols)
	return cols
}

// SortQuestions orders question columns: known columns first in their fixed
// order, then everything else by name. The result does not depend on row order.
func SortQuestions(cols []string) {
	sort.SliceStable(cols, func(i, j int) bool {
		return Less(cols[i], cols[j])
	})
}

// Less is the question ordering used by SortQuestions.
func Less(a, b string) bool {
	ka, okA := KnownColumn(a)
	kb, okB := KnownColumn(b)
	switch {
	case okA && okB:
		return ka < kb
	case okA:
		return true
	case okB:
		return false
	}
	return a < b
}
