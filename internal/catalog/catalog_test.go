package catalog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TenCategoriesInOrder(t *testing.T) {
	c := Default()
	require.Equal(t, 10, c.Len())
	assert.Equal(t, []string{
		"Compensación", "Horario", "Ambiente", "Desarrollo", "Cuidado de hijos",
		"Transporte", "Salud", "Estudios", "Mejor oferta", "Personal",
	}, c.Names())
	assert.Equal(t, []string{"clima laboral", "entorno", "equipo", "compañeros"}, c.At(2).Keywords)
}

func TestCatalog_AtReturnsCopy(t *testing.T) {
	c := Default()
	cat := c.At(0)
	cat.Keywords[0] = "changed"
	assert.Equal(t, "sueldo", c.At(0).Keywords[0])
}

func TestNew_CopiesInput(t *testing.T) {
	in := []Category{{Name: "A", Keywords: []string{"x"}}}
	c, err := New(in)
	require.NoError(t, err)
	in[0].Keywords[0] = "y"
	in[0].Name = "B"
	assert.Equal(t, "A", c.At(0).Name)
	assert.Equal(t, []string{"x"}, c.At(0).Keywords)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cats []Category
	}{
		{"empty", nil},
		{"no name", []Category{{Name: " ", Keywords: []string{"a"}}}},
		{"reserved name", []Category{{Name: "sin categoría", Keywords: []string{"a"}}}},
		{"duplicate", []Category{{Name: "A", Keywords: []string{"a"}}, {Name: "A", Keywords: []string{"b"}}}},
		{"no keywords", []Category{{Name: "A"}}},
		{"blank keyword", []Category{{Name: "A", Keywords: []string{"a", "  "}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cats)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
		})
	}
}

func TestLoadYAML(t *testing.T) {
	src := `
categories:
  - name: Compensación
    keywords: [sueldo, bono]
  - name: Horario
    keywords:
      - turno nocturno
`
	c, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Compensación", "Horario"}, c.Names())
	assert.Equal(t, []string{"sueldo", "bono"}, c.At(0).Keywords)
}

func TestLoadYAML_UnknownField(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("categorias: []\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestWriteYAML_LoadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, Default()))
	assert.True(t, strings.HasPrefix(buf.String(), "categories:\n"))

	loaded, err := LoadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default().Categories(), loaded.Categories())
}
