package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is the conventional location of the catalog file.
const DefaultPath = "data/catalog.toml"

// catalogFile is the on-disk TOML shape. Transitions stay as strings here and
// are parsed once in decode.
type catalogFile struct {
	Generations []generationEntry `toml:"generation"`
	Species     []speciesEntry    `toml:"species"`
}

type generationEntry struct {
	Label string `toml:"label"`
	First int    `toml:"first"`
	Last  int    `toml:"last"`
}

type speciesEntry struct {
	Number    int         `toml:"number"`
	Name      string      `toml:"name"`
	Types     []string    `toml:"types"`
	EvolvesTo string      `toml:"evolves_to,omitempty"`
	Forms     []formEntry `toml:"forms,omitempty"`
}

type formEntry struct {
	Name      string   `toml:"name"`
	Types     []string `toml:"types,omitempty"`
	EvolvesTo string   `toml:"evolves_to,omitempty"`
}

// Load reads and validates a catalog from a TOML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog from TOML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return f.decode()
}

func (f *catalogFile) decode() (*Catalog, error) {
	var errs []error
	parse := func(number int, form, raw string) Transition {
		t, err := ParseTransition(raw)
		if err != nil {
			errs = append(errs, &ValidationError{
				Category: CatMalformed, Number: number, Form: form, Field: "evolves_to", Err: err,
			})
		}
		return t
	}

	species := make([]Species, 0, len(f.Species))
	for _, e := range f.Species {
		s := Species{
			Number:    e.Number,
			Name:      e.Name,
			Types:     e.Types,
			EvolvesTo: parse(e.Number, "", e.EvolvesTo),
		}
		for _, fe := range e.Forms {
			s.Forms = append(s.Forms, Form{
				Name:      fe.Name,
				Types:     fe.Types,
				EvolvesTo: parse(e.Number, fe.Name, fe.EvolvesTo),
			})
		}
		species = append(species, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	generations := make([]Generation, 0, len(f.Generations))
	for _, g := range f.Generations {
		generations = append(generations, Generation{Label: g.Label, Range: Range{First: g.First, Last: g.Last}})
	}
	return New(species, generations)
}

func encode(c *Catalog) catalogFile {
	var f catalogFile
	for _, g := range c.generations {
		f.Generations = append(f.Generations, generationEntry{Label: g.Label, First: g.First, Last: g.Last})
	}
	for _, s := range c.order {
		e := speciesEntry{
			Number:    s.Number,
			Name:      s.Name,
			Types:     s.Types,
			EvolvesTo: s.EvolvesTo.String(),
		}
		for _, form := range s.Forms {
			e.Forms = append(e.Forms, formEntry{
				Name:      form.Name,
				Types:     form.Types,
				EvolvesTo: form.EvolvesTo.String(),
			})
		}
		f.Species = append(f.Species, e)
	}
	return f
}

// Marshal encodes a catalog as TOML.
func Marshal(c *Catalog) ([]byte, error) {
	data, err := toml.Marshal(encode(c))
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog: %w", err)
	}
	return data, nil
}

// Save writes the catalog to path as TOML, creating parent directories as
// needed.
func Save(path string, c *Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}
