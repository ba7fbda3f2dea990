package evolution

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papapumpkin/dexline/internal/catalog"
)

// Resolver walks evolution edges of one catalog snapshot. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	cat   *catalog.Catalog
	rules Rules
	log   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a resolver over cat using rules.
func New(cat *catalog.Catalog, rules Rules, opts ...Option) *Resolver {
	r := &Resolver{cat: cat, rules: rules, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rules returns the resolver's special-case tables.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// Line is everything a details view shows for one species.
type Line struct {
	Prev    []Evolution
	Current Evolution
	Next    []Stage
}

// Line resolves both directions for (s, f).
func (r *Resolver) Line(s *catalog.Species, f *catalog.Form) (Line, error) {
	prev, err := r.Prev(s, f)
	if err != nil {
		return Line{}, err
	}
	next, err := r.Next(s, f)
	if err != nil {
		return Line{}, err
	}
	r.log.Debug("resolved evolution line",
		zap.String("species", label(s, f)),
		zap.Int("prev", len(prev)),
		zap.Int("next", len(next)))
	return Line{Prev: prev, Current: Evolution{Species: s, Form: f}, Next: next}, nil
}

// Next returns the forward evolution line of (s, f), nearest stage first.
// Branches are followed one row deep; the row after a branch is padded with
// Unresolved so that it lines up with the siblings.
func (r *Resolver) Next(s *catalog.Species, f *catalog.Form) ([]Stage, error) {
	if err := checkForm(s, f); err != nil {
		return nil, err
	}
	return r.next(s, f, 0)
}

func (r *Resolver) next(s *catalog.Species, f *catalog.Form, depth int) ([]Stage, error) {
	if depth > r.rules.maxDepth() {
		return nil, fmt.Errorf("%w: %s exceeded depth %d", ErrCycleDetected, label(s, f), r.rules.maxDepth())
	}

	if ds, ok := r.rules.DualStyle[s.Name]; ok {
		if f == nil || strings.Contains(f.Name, ds.Boost) {
			return nil, nil
		}
		boosted := s.Form(f.Name + "-" + ds.Boost)
		if boosted == nil {
			return nil, nil
		}
		return []Stage{single(Evolution{Species: s, Form: boosted})}, nil
	}

	trans := r.effective(s, f)
	switch trans.Kind() {
	case catalog.NoEvolution:
		return nil, nil

	case catalog.Single:
		evo, err := r.resolve(trans.Targets()[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label(s, f), err)
		}
		rest, err := r.next(evo.Species, evo.Form, depth+1)
		if err != nil {
			return nil, err
		}
		return append([]Stage{single(evo)}, rest...), nil
	}

	targets := trans.Targets()
	siblings := make([]Evolution, len(targets))
	evolves := false
	for i, t := range targets {
		evo, err := r.resolve(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label(s, f), err)
		}
		siblings[i] = evo
		if r.effective(evo.Species, evo.Form).Kind() != catalog.NoEvolution {
			evolves = true
		}
	}
	if !evolves {
		return []Stage{branch(siblings)}, nil
	}

	row := make([]Evolution, len(siblings))
	for i, sib := range siblings {
		stages, err := r.next(sib.Species, sib.Form, depth+1)
		if err != nil {
			return nil, err
		}
		if len(stages) == 0 {
			row[i] = Unresolved
			continue
		}
		row[i] = stages[0].Single()
	}
	return []Stage{branch(siblings), branch(row)}, nil
}

// effective returns the transition used for (s, f): the form's own edge when
// a form is given, extended with the species' power-up forms when the form is
// a baseline one.
func (r *Resolver) effective(s *catalog.Species, f *catalog.Form) catalog.Transition {
	trans := s.EvolvesTo
	if f != nil {
		trans = f.EvolvesTo
	}
	if !r.rules.isBaseline(f) {
		return trans
	}
	var extras []catalog.Target
	for _, form := range s.Forms {
		if r.rules.isExtraForm(form.Name) {
			extras = append(extras, catalog.Target{Number: s.Number, Form: form.Name})
		}
	}
	return trans.Append(extras...)
}

// Prev returns the ancestors of (s, f), earliest first and the immediate
// predecessor last.
func (r *Resolver) Prev(s *catalog.Species, f *catalog.Form) ([]Evolution, error) {
	if err := checkForm(s, f); err != nil {
		return nil, err
	}
	return r.prev(s, f, 0)
}

func (r *Resolver) prev(s *catalog.Species, f *catalog.Form, depth int) ([]Evolution, error) {
	if depth > r.rules.maxDepth() {
		return nil, fmt.Errorf("%w: %s exceeded depth %d", ErrCycleDetected, label(s, f), r.rules.maxDepth())
	}

	if ds, ok := r.rules.DualStyle[s.Name]; ok {
		base, found := r.cat.Species(ds.Base)
		if !found {
			return nil, fmt.Errorf("%s: %w: no species %d", s.Name, catalog.ErrUnresolvableReference, ds.Base)
		}
		out := []Evolution{{Species: base}}
		if f != nil && strings.Contains(f.Name, ds.Boost) {
			style := strings.TrimSuffix(f.Name, "-"+ds.Boost)
			out = append(out, Evolution{Species: s, Form: s.Form(style)})
		}
		return out, nil
	}

	if f != nil && r.rules.isExtraForm(f.Name) {
		baseline := s.Form(catalog.DefaultForm)
		before, err := r.prev(s, baseline, depth+1)
		if err != nil {
			return nil, err
		}
		return append(before, Evolution{Species: s, Form: baseline}), nil
	}

	want := catalog.Target{Number: s.Number}
	if f != nil && !f.IsDefault() && !r.rules.ignoresForm(s.Name) {
		want.Form = f.Name
	}

	ps, pf, found := r.predecessor(want)
	if !found {
		return nil, nil
	}
	before, err := r.prev(ps, pf, depth+1)
	if err != nil {
		return nil, err
	}
	return append(before, Evolution{Species: ps, Form: pf}), nil
}

// predecessor scans the catalog for the entry whose transition contains
// want. Edges are stored forward only, so there is no reverse index. Forms
// are checked before their species' own edge.
func (r *Resolver) predecessor(want catalog.Target) (*catalog.Species, *catalog.Form, bool) {
	for _, cand := range r.cat.All() {
		for i := range cand.Forms {
			if cand.Forms[i].EvolvesTo.Contains(want) {
				return cand, &cand.Forms[i], true
			}
		}
		if cand.EvolvesTo.Contains(want) {
			return cand, nil, true
		}
	}
	return nil, nil, false
}

func (r *Resolver) resolve(t catalog.Target) (Evolution, error) {
	s, f, err := r.cat.Resolve(t)
	if err != nil {
		return Evolution{}, err
	}
	return Evolution{Species: s, Form: f}, nil
}

func checkForm(s *catalog.Species, f *catalog.Form) error {
	if s == nil {
		return ErrNoSpecies
	}
	if f != nil && !s.HasForm(f) {
		return fmt.Errorf("%w: %s has no form %q", ErrFormMismatch, s.Name, f.Name)
	}
	return nil
}

func label(s *catalog.Species, f *catalog.Form) string {
	if f == nil {
		return s.Name
	}
	return s.Name + "-" + f.Name
}
