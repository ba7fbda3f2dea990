package catalog

import "slices"

// DefaultForm is the form name denoting a species' baseline presentation.
const DefaultForm = "default"

// Species is one catalog entry.
type Species struct {
	Number    int
	Name      string
	Types     []string
	Forms     []Form
	EvolvesTo Transition
}

// Form is an alternate presentation of a species. It is owned by exactly one
// species and addressed through that species' Forms slice.
type Form struct {
	Name      string
	Types     []string // overrides the species' types when non-empty
	EvolvesTo Transition
}

// IsDefault reports whether f is the baseline presentation.
func (f *Form) IsDefault() bool {
	return f != nil && f.Name == DefaultForm
}

// Form returns the form with the given name, or nil if the species has none.
// The returned pointer addresses the species' own Forms slice.
func (s *Species) Form(name string) *Form {
	for i := range s.Forms {
		if s.Forms[i].Name == name {
			return &s.Forms[i]
		}
	}
	return nil
}

// HasForm reports whether f points into s's own Forms slice. A same-named
// form of another species is not one of s's forms.
func (s *Species) HasForm(f *Form) bool {
	if f == nil {
		return false
	}
	for i := range s.Forms {
		if &s.Forms[i] == f {
			return true
		}
	}
	return false
}

// TypesFor returns the elemental types of s presented as f.
func (s *Species) TypesFor(f *Form) []string {
	if f != nil && len(f.Types) > 0 {
		return slices.Clone(f.Types)
	}
	return slices.Clone(s.Types)
}
