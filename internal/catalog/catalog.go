// Package catalog holds the fixed table of turnover-reason categories and
// the keywords that identify each one.
package catalog

import (
	"errors"
	"strings"
)

// Unmatched is the synthetic bucket for answers that match no category.
const Unmatched = "Sin categoría"

// ErrInvalidCatalog is returned when a loaded catalog fails validation.
var ErrInvalidCatalog = errors.New("invalid category catalog")

// Category is one semantic grouping of turnover reasons.
type Category struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Catalog is an ordered, read-only sequence of categories. Order only
// decides iteration and tie-breaks; categories are not exclusive.
type Catalog struct {
	categories []Category
}

// New builds a catalog from the given categories after validating them.
// The input is copied so later changes by the caller are not observed.
func New(categories []Category) (*Catalog, error) {
	if err := validate(categories); err != nil {
		return nil, err
	}
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = Category{
			Name:     strings.TrimSpace(c.Name),
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return &Catalog{categories: out}, nil
}

// Default returns the built-in ten-category catalog.
func Default() *Catalog {
	c, err := New(defaultCategories)
	if err != nil {
		panic(err)
	}
	return c
}

// Len reports the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// At returns the i-th category. The returned keyword slice is a copy.
func (c *Catalog) At(i int) Category {
	cat := c.categories[i]
	return Category{Name: cat.Name, Keywords: append([]string(nil), cat.Keywords...)}
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Categories returns a copy of every category in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i := range c.categories {
		out[i] = c.At(i)
	}
	return out
}

var defaultCategories = []Category{
	{Name: "Compensación", Keywords: []string{"sueldo", "salario", "pago", "prestaciones", "beneficios"}},
	{Name: "Horario", Keywords: []string{"jornada", "turnos", "tiempo", "horario"}},
	{Name: "Ambiente", Keywords: []string{"clima laboral", "entorno", "equipo", "compañeros"}},
	{Name: "Desarrollo", Keywords: []string{"capacitación", "formación", "crecimiento", "carrera"}},
	{Name: "Cuidado de hijos", Keywords: []string{"familia", "guardería", "maternal"}},
	{Name: "Transporte", Keywords: []string{"traslado", "distancia", "ubicación"}},
	{Name: "Salud", Keywords: []string{"enfermedad", "médico", "tratamiento"}},
	{Name: "Estudios", Keywords: []string{"universidad", "escuela", "educación"}},
	{Name: "Mejor oferta", Keywords: []string{"otra empresa", "competencia", "oportunidad"}},
	{Name: "Personal", Keywords: []string{"mudanza", "matrimonio", "embarazo"}},
}
