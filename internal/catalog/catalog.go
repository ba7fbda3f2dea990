// Package catalog holds the read-only species catalog: species records, their
// forms, and the parsed evolution edges between them. A Catalog is built and
// validated once and never mutated afterwards.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
)

// Range is an inclusive span of catalog numbers.
type Range struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Contains reports whether n falls within the range.
func (r Range) Contains(n int) bool {
	return n >= r.First && n <= r.Last
}

// Generation labels a range of catalog numbers.
type Generation struct {
	Label string
	Range
}

// Provider exposes a catalog in the keyed shape consumed by callers outside
// the resolver.
type Provider interface {
	AllSpecies() map[string]*Species
	GenerationRanges() map[string]Range
}

// Catalog is an immutable, validated set of species.
type Catalog struct {
	byNumber    map[int]*Species
	byName      map[string]*Species
	order       []*Species
	generations []Generation
}

var _ Provider = (*Catalog)(nil)

// New copies species and generations into a validated Catalog. All problems
// found are returned together, each as a *ValidationError.
func New(species []Species, generations []Generation) (*Catalog, error) {
	c := &Catalog{
		byNumber: make(map[int]*Species, len(species)),
		byName:   make(map[string]*Species, len(species)),
		order:    make([]*Species, 0, len(species)),
	}

	var errs []error
	for i := range species {
		s := cloneSpecies(species[i])
		if s.Number <= 0 || s.Name == "" {
			errs = append(errs, &ValidationError{
				Category: CatInvalidSpecies, Number: s.Number,
				Err: fmt.Errorf("%w: number %d name %q", ErrInvalidSpecies, s.Number, s.Name),
			})
			continue
		}
		if _, dup := c.byNumber[s.Number]; dup {
			errs = append(errs, &ValidationError{
				Category: CatDuplicate, Number: s.Number, Field: "number",
				Err: fmt.Errorf("%w: %d", ErrDuplicateSpecies, s.Number),
			})
			continue
		}
		seen := make(map[string]bool, len(s.Forms))
		for _, f := range s.Forms {
			if seen[f.Name] {
				errs = append(errs, &ValidationError{
					Category: CatDuplicate, Number: s.Number, Form: f.Name, Field: "forms",
					Err: fmt.Errorf("%w: %q", ErrDuplicateForm, f.Name),
				})
			}
			seen[f.Name] = true
		}
		c.byNumber[s.Number] = s
		c.order = append(c.order, s)
	}
	sort.Slice(c.order, func(i, j int) bool { return c.order[i].Number < c.order[j].Number })

	// Names are keyed to the lowest number carrying them.
	for _, s := range c.order {
		if _, ok := c.byName[s.Name]; !ok {
			c.byName[s.Name] = s
		}
	}

	for _, s := range c.order {
		errs = append(errs, c.checkTransition(s.Number, "", s.EvolvesTo)...)
		for _, f := range s.Forms {
			errs = append(errs, c.checkTransition(s.Number, f.Name, f.EvolvesTo)...)
		}
	}

	for _, g := range generations {
		if g.First > g.Last || g.First <= 0 {
			errs = append(errs, &ValidationError{
				Category: CatGeneration, Field: "generation " + g.Label,
				Err: fmt.Errorf("%w: %d..%d", ErrInvalidGeneration, g.First, g.Last),
			})
			continue
		}
		c.generations = append(c.generations, g)
	}
	sort.Slice(c.generations, func(i, j int) bool { return c.generations[i].First < c.generations[j].First })

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func (c *Catalog) checkTransition(number int, form string, t Transition) []error {
	var errs []error
	for _, target := range t.targets {
		if _, _, err := c.Resolve(target); err != nil {
			errs = append(errs, &ValidationError{
				Category: CatUnresolvable, Number: number, Form: form, Field: "evolves_to",
				Err: err,
			})
		}
	}
	return errs
}

func cloneSpecies(s Species) *Species {
	out := s
	out.Types = slices.Clone(s.Types)
	out.Forms = make([]Form, len(s.Forms))
	for i, f := range s.Forms {
		f.Types = slices.Clone(f.Types)
		out.Forms[i] = f
	}
	return &out
}

// Species returns the species with the given catalog number.
func (c *Catalog) Species(number int) (*Species, bool) {
	s, ok := c.byNumber[number]
	return s, ok
}

// ByName returns the species with the given display name.
func (c *Catalog) ByName(name string) (*Species, bool) {
	s, ok := c.byName[name]
	return s, ok
}

// All returns every species in ascending catalog-number order. The slice is
// a copy; the species it points to are shared and must not be modified.
func (c *Catalog) All() []*Species {
	return slices.Clone(c.order)
}

// Len returns the number of species.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Generations returns the generation ranges ordered by first number.
func (c *Catalog) Generations() []Generation {
	return slices.Clone(c.generations)
}

// Resolve looks up the species and, when the target names one, the form a
// transition target points at. The returned form is nil for bare targets.
func (c *Catalog) Resolve(t Target) (*Species, *Form, error) {
	s, ok := c.byNumber[t.Number]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s: no species %d", ErrUnresolvableReference, t, t.Number)
	}
	if t.Form == "" {
		return s, nil, nil
	}
	f := s.Form(t.Form)
	if f == nil {
		return nil, nil, fmt.Errorf("%w: %s: %s has no form %q", ErrUnresolvableReference, t, s.Name, t.Form)
	}
	return s, f, nil
}

// AllSpecies returns the catalog keyed by decimal catalog number.
func (c *Catalog) AllSpecies() map[string]*Species {
	out := make(map[string]*Species, len(c.order))
	for _, s := range c.order {
		out[strconv.Itoa(s.Number)] = s
	}
	return out
}

// GenerationRanges returns the generation ranges keyed by label.
func (c *Catalog) GenerationRanges() map[string]Range {
	out := make(map[string]Range, len(c.generations))
	for _, g := range c.generations {
		out[g.Label] = g.Range
	}
	return out
}
