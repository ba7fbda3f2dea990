package evolution

import "errors"

var (
	// ErrCycleDetected indicates traversal exceeded the configured depth,
	// which only happens when catalog data loops back on itself.
	ErrCycleDetected = errors.New("evolution cycle detected")
	// ErrFormMismatch indicates a form that does not belong to the species
	// it was passed with.
	ErrFormMismatch = errors.New("form does not belong to species")
	// ErrNoSpecies indicates a nil species was passed.
	ErrNoSpecies = errors.New("no species given")
)
