package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/exitsurvey/internal/catalog"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Compañeros", "companeros"},
		{"  MÉDICO   de  la  Guardería ", "medico de la guarderia"},
		{"Capacitación\ny\tformación", "capacitacion y formacion"},
		{"", ""},
		{"ÜBER", "uber"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestMatcher_AccentAndCaseInsensitive(t *testing.T) {
	m := New(catalog.Default(), DefaultOptions())
	assert.Equal(t, []string{"Desarrollo"}, m.MatchNames("No había CAPACITACION"))
	assert.Equal(t, []string{"Salud"}, m.MatchNames("tuve que ir al medico"))
	assert.Equal(t, []string{"Ambiente"}, m.MatchNames("problemas con los companeros"))
}

func TestMatcher_MultiLabel(t *testing.T) {
	m := New(catalog.Default(), DefaultOptions())
	assert.Equal(t, []string{"Compensación", "Ambiente"}, m.MatchNames("sueldo bajo y mal ambiente"))
	assert.Equal(t, []int{0, 5}, m.Match("poco salario y mucha distancia"))
}

func TestMatcher_FirstMatch(t *testing.T) {
	m := New(catalog.Default(), Options{Mode: FirstMatch, MatchCategoryNames: true})
	assert.Equal(t, []string{"Compensación"}, m.MatchNames("sueldo bajo y mal ambiente"))
}

func TestMatcher_CategoryNamesOptional(t *testing.T) {
	m := New(catalog.Default(), Options{Mode: MultiLabel})
	assert.Equal(t, []string{"Compensación"}, m.MatchNames("sueldo bajo y mal ambiente"))
}

// Category names match as plain substrings like any keyword, so "personal"
// used as a noun still lands in Personal. Callers that need the stricter
// reading turn MatchCategoryNames off.
func TestMatcher_CategoryNameSubstringAccepted(t *testing.T) {
	text := "el personal de RH me trató mal"
	assert.Equal(t, []string{"Personal"}, New(catalog.Default(), DefaultOptions()).MatchNames(text))
	assert.Empty(t, New(catalog.Default(), Options{Mode: MultiLabel}).MatchNames(text))
}

func TestMatcher_NoMatch(t *testing.T) {
	m := New(catalog.Default(), DefaultOptions())
	assert.Empty(t, m.Match("no quiero decir"))
	assert.Empty(t, m.Match("   "))
}

func TestMatcher_MultiWordKeyword(t *testing.T) {
	m := New(catalog.Default(), DefaultOptions())
	assert.Equal(t, []string{"Mejor oferta"}, m.MatchNames("me fui a OTRA  empresa"))
	assert.Equal(t, []string{"Ambiente"}, m.MatchNames("el clima laboral"))
}

func TestMatcher_Deterministic(t *testing.T) {
	m := New(catalog.Default(), DefaultOptions())
	in := "familia, traslado y universidad"
	first := m.MatchNames(in)
	for range 5 {
		assert.Equal(t, first, m.MatchNames(in))
	}
	assert.Equal(t, []string{"Cuidado de hijos", "Transporte", "Estudios"}, first)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": MultiLabel, "multi": MultiLabel, "FIRST": FirstMatch, "first-match": FirstMatch} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("any")
	assert.Error(t, err)
	assert.Equal(t, "first", FirstMatch.String())
}
