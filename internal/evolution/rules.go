package evolution

import (
	"slices"
	"strings"

	"github.com/papapumpkin/dexline/internal/catalog"
)

// DefaultMaxDepth bounds recursion. The longest real line has four stages
// counting power-up forms, so twice that is never reached by valid data.
const DefaultMaxDepth = 8

// DualStyle describes a species whose style forms each evolve into a boosted
// version of themselves instead of into another species.
type DualStyle struct {
	Base  int    // catalog number of the fixed predecessor
	Boost string // marker appended to a style name to form its boosted form
}

// Rules holds the special-case tables consulted during traversal.
type Rules struct {
	// ExtraFormMarkers are substrings identifying power-up forms.
	ExtraFormMarkers []string
	// BaselineForms are form names treated like "no form" for augmentation.
	BaselineForms []string
	// IgnoreFormSpecies lists species whose form never affects matching a
	// predecessor's transition.
	IgnoreFormSpecies []string
	// DualStyle is keyed by species name.
	DualStyle map[string]DualStyle
	MaxDepth  int
}

// DefaultRules returns the tables for the standard national catalog.
func DefaultRules() Rules {
	return Rules{
		ExtraFormMarkers:  []string{"Mega", "Primal", "Ash", "Gigantamax", "Eternamax"},
		BaselineForms:     []string{catalog.DefaultForm, "Amped", "Low-Key"},
		IgnoreFormSpecies: []string{"Cherrim", "Vivillon", "Aegislash", "Silvally", "Toxtricity"},
		DualStyle: map[string]DualStyle{
			"Urshifu": {Base: 891, Boost: "Gigantamax"},
		},
		MaxDepth: DefaultMaxDepth,
	}
}

func (r Rules) isExtraForm(name string) bool {
	for _, marker := range r.ExtraFormMarkers {
		if marker != "" && strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// isBaseline reports whether f counts as the species' plain presentation.
// A nil form is baseline.
func (r Rules) isBaseline(f *catalog.Form) bool {
	return f == nil || slices.Contains(r.BaselineForms, f.Name)
}

func (r Rules) ignoresForm(species string) bool {
	return slices.Contains(r.IgnoreFormSpecies, species)
}

func (r Rules) maxDepth() int {
	if r.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return r.MaxDepth
}
