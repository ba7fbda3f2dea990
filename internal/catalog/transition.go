package catalog

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TransitionKind classifies the shape of an evolution edge.
type TransitionKind int

const (
	NoEvolution TransitionKind = iota // terminal stage
	Single                            // exactly one successor
	Branching                         // several sibling successors
)

// String returns the kind's name.
func (k TransitionKind) String() string {
	switch k {
	case NoEvolution:
		return "none"
	case Single:
		return "single"
	case Branching:
		return "branching"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Target names the successor of an evolution edge. An empty Form means the
// species' default presentation.
type Target struct {
	Number int
	Form   string
}

// String encodes the target as "number" or "number-form".
func (t Target) String() string {
	if t.Form == "" {
		return strconv.Itoa(t.Number)
	}
	return strconv.Itoa(t.Number) + "-" + t.Form
}

// ParseTarget parses a single "digits" or "digits-formName" token. Form names
// may themselves contain dashes; only the first dash separates the number.
func ParseTarget(tok string) (Target, error) {
	num, form, hasForm := strings.Cut(tok, "-")
	if num == "" || strings.TrimLeft(num, "0123456789") != "" {
		return Target{}, fmt.Errorf("%w: %q", ErrMalformedTransition, tok)
	}
	if hasForm && form == "" {
		return Target{}, fmt.Errorf("%w: %q has an empty form name", ErrMalformedTransition, tok)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return Target{}, fmt.Errorf("%w: %q", ErrMalformedTransition, tok)
	}
	return Target{Number: n, Form: form}, nil
}

// Transition is the parsed form of an evolves_to string. The zero value is
// NoEvolution.
type Transition struct {
	targets []Target
}

// NewTransition builds a transition from already-parsed targets.
func NewTransition(targets ...Target) Transition {
	if len(targets) == 0 {
		return Transition{}
	}
	return Transition{targets: slices.Clone(targets)}
}

// ParseTransition parses a whitespace-separated list of targets. An empty or
// blank string yields NoEvolution.
func ParseTransition(s string) (Transition, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Transition{}, nil
	}
	targets := make([]Target, 0, len(fields))
	for _, tok := range fields {
		t, err := ParseTarget(tok)
		if err != nil {
			return Transition{}, err
		}
		targets = append(targets, t)
	}
	return Transition{targets: targets}, nil
}

// Kind reports whether the transition is terminal, single or branching.
func (t Transition) Kind() TransitionKind {
	switch len(t.targets) {
	case 0:
		return NoEvolution
	case 1:
		return Single
	default:
		return Branching
	}
}

// Len returns the number of targets.
func (t Transition) Len() int {
	return len(t.targets)
}

// Targets returns a copy of the ordered targets.
func (t Transition) Targets() []Target {
	return slices.Clone(t.targets)
}

// Contains reports whether target is one of the transition's targets.
func (t Transition) Contains(target Target) bool {
	return slices.Contains(t.targets, target)
}

// Append returns a new transition with extra targets after the existing ones.
func (t Transition) Append(extra ...Target) Transition {
	if len(extra) == 0 {
		return t
	}
	out := make([]Target, 0, len(t.targets)+len(extra))
	out = append(out, t.targets...)
	out = append(out, extra...)
	return Transition{targets: out}
}

// String re-encodes the transition as a space-separated target list.
func (t Transition) String() string {
	parts := make([]string, len(t.targets))
	for i, target := range t.targets {
		parts[i] = target.String()
	}
	return strings.Join(parts, " ")
}
