package catalog

import (
	"errors"
	"strconv"
)

// Sentinel errors for catalog construction and lookup.
var (
	// ErrMalformedTransition indicates an evolves_to token outside the
	// "digits" or "digits-formName" grammar.
	ErrMalformedTransition = errors.New("malformed transition")
	// ErrUnresolvableReference indicates a transition target naming a species
	// or form that is not in the catalog.
	ErrUnresolvableReference = errors.New("unresolvable reference")
	// ErrDuplicateSpecies indicates two entries share a catalog number.
	ErrDuplicateSpecies = errors.New("duplicate species number")
	// ErrDuplicateForm indicates a species lists the same form name twice.
	ErrDuplicateForm = errors.New("duplicate form name")
	// ErrInvalidSpecies indicates a species with a non-positive number or no name.
	ErrInvalidSpecies = errors.New("invalid species")
	// ErrInvalidGeneration indicates a generation range with first > last.
	ErrInvalidGeneration = errors.New("invalid generation range")
	// ErrEmptySnapshot indicates a store that has never had a catalog saved
	// into it.
	ErrEmptySnapshot = errors.New("snapshot is empty")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	CatMalformed      ValidationCategory = "malformed_transition"
	CatUnresolvable   ValidationCategory = "unresolvable_reference"
	CatDuplicate      ValidationCategory = "duplicate"
	CatInvalidSpecies ValidationCategory = "invalid_species"
	CatGeneration     ValidationCategory = "invalid_generation"
)

// ValidationError records a catalog data-integrity problem with the entry it
// was found on.
type ValidationError struct {
	Category ValidationCategory
	Number   int    // species number, 0 when not tied to a species
	Form     string // owning form, empty for species-level fields
	Field    string
	Err      error
}

// Error returns a human-readable string naming the species, form and field.
func (e *ValidationError) Error() string {
	msg := ""
	if e.Number != 0 {
		msg = "species " + strconv.Itoa(e.Number)
		if e.Form != "" {
			msg += " form " + e.Form
		}
		msg += ": "
	}
	if e.Field != "" {
		msg += e.Field + ": "
	}
	return msg + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
