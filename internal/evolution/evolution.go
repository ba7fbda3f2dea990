// Package evolution resolves the forward and backward evolution line of a
// species against a catalog.
package evolution

import (
	"slices"

	"github.com/papapumpkin/dexline/internal/catalog"
)

// Evolution references one stage: a catalog species, optionally presented as
// one of its forms.
type Evolution struct {
	Species *catalog.Species
	Form    *catalog.Form
}

var unresolved = &catalog.Species{Name: "MissingNo.", Types: []string{"bird", "normal"}}

// Unresolved pads a branch's next row where a sibling evolves no further.
// Its species is synthetic and never part of a catalog.
var Unresolved = Evolution{Species: unresolved}

// IsUnresolved reports whether e is the Unresolved placeholder.
func (e Evolution) IsUnresolved() bool {
	return e.Species == unresolved
}

// Target returns the transition target that addresses e.
func (e Evolution) Target() catalog.Target {
	t := catalog.Target{Number: e.Species.Number}
	if e.Form != nil {
		t.Form = e.Form.Name
	}
	return t
}

// Stage is one row of a forward evolution line: a single successor or a
// branch of sibling successors.
type Stage struct {
	members []Evolution
	branch  bool
}

func single(e Evolution) Stage {
	return Stage{members: []Evolution{e}}
}

func branch(es []Evolution) Stage {
	return Stage{members: es, branch: true}
}

// Branch reports whether the stage holds parallel siblings.
func (s Stage) Branch() bool {
	return s.branch
}

// Single returns the stage's only member, or its first member for a branch.
func (s Stage) Single() Evolution {
	if len(s.members) == 0 {
		return Evolution{}
	}
	return s.members[0]
}

// Members returns a copy of the stage's evolutions in display order.
func (s Stage) Members() []Evolution {
	return slices.Clone(s.members)
}

// Len returns the number of members.
func (s Stage) Len() int {
	return len(s.members)
}
