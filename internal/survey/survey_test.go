package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow_FillsMissingValues(t *testing.T) {
	r := NewRow([]string{"a", "b", "c"}, []string{"1"})
	assert.Equal(t, []string{"a", "b", "c"}, r.Columns)
	v, ok := r.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	_, ok = r.Get("d")
	assert.False(t, ok)
}

func TestKnownColumn(t *testing.T) {
	c, ok := KnownColumn("Encuesta de salida 4FRH-209")
	require.True(t, ok)
	assert.Equal(t, ColumnEncuestaSalida4FRH209, c)
	assert.Equal(t, "Encuesta de salida 4FRH-209", c.String())

	_, ok = KnownColumn("Encuesta de Salida")
	assert.False(t, ok, "lookup is exact")
	assert.Equal(t, "Column(9)", Column(9).String())
}

func TestRecognizer_Patterns(t *testing.T) {
	r, err := NewRecognizer(`^Motivo Pregunta \d+$`, "")
	require.NoError(t, err)

	assert.True(t, r.Recognize("encuesta de salida"))
	assert.True(t, r.Recognize("Motivo Pregunta 2"))
	assert.False(t, r.Recognize("Nombre"))

	_, err = NewRecognizer("(")
	assert.Error(t, err)
}

func TestRecognizer_QuestionColumnsOrdering(t *testing.T) {
	r, err := NewRecognizer(`^Motivo Pregunta \d+$`)
	require.NoError(t, err)
	row := NewRow([]string{"Motivo Pregunta 3", "Nombre", "encuesta de salida", "Motivo Pregunta 2", "Motivo Pregunta 1"}, nil)

	assert.Equal(t, []string{"Motivo Pregunta 1", "encuesta de salida", "Motivo Pregunta 2", "Motivo Pregunta 3"}, r.QuestionColumns(row))
}

func TestDefaultRecognizer_OnlyKnown(t *testing.T) {
	r := DefaultRecognizer()
	row := NewRow([]string{"Motivo Pregunta 2", "encuesta de salida"}, nil)
	assert.Equal(t, []string{"encuesta de salida"}, r.QuestionColumns(row))
}

func TestPrecheck(t *testing.T) {
	assert.ErrorIs(t, Precheck(nil), ErrNoData)
	assert.ErrorIs(t, Precheck(&Sheet{}), ErrNoData)

	noCol := &Sheet{Rows: []Row{NewRow([]string{"Nombre"}, []string{"Ana"})}}
	assert.ErrorIs(t, Precheck(noCol), ErrNoQuestionColumn)

	// Only the first row is inspected.
	later := &Sheet{Rows: []Row{
		NewRow([]string{"Nombre"}, nil),
		NewRow([]string{"encuesta de salida"}, nil),
	}}
	assert.ErrorIs(t, Precheck(later), ErrNoQuestionColumn)

	ok := &Sheet{Rows: []Row{NewRow([]string{"Motivo Pregunta 1"}, []string{""})}}
	assert.NoError(t, Precheck(ok))
}
