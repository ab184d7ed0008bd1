package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Categories []Category `yaml:"categories"`
}

// LoadYAML decodes a catalog of the form:
//
//	categories:
//	  - name: Compensación
//	    keywords: [sueldo, salario]
func LoadYAML(r io.Reader) (*Catalog, error) {
	var f fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
	}
	return New(f.Categories)
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// WriteYAML encodes c in the format LoadYAML reads.
func WriteYAML(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileFormat{Categories: c.Categories()}); err != nil {
		return err
	}
	return enc.Close()
}

func validate(categories []Category) error {
	if len(categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(categories))
	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidCatalog, i)
		}
		if strings.EqualFold(name, Unmatched) {
			return fmt.Errorf("%w: %q is reserved", ErrInvalidCatalog, Unmatched)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, name)
		}
		seen[name] = true

		if len(c.Keywords) == 0 {
			return fmt.Errorf("%w: category %q has no keywords", ErrInvalidCatalog, name)
		}
		for _, kw := range c.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w: category %q has an empty keyword", ErrInvalidCatalog, name)
			}
		}
	}
	return nil
}
