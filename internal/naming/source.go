package naming

import (
	"math/rand/v2"
	"time"
)

// Source supplies randomness for cosmetic variant selection.
type Source interface {
	IntN(n int) int
}

// PickOne returns a random element of items, or the zero value when items is
// empty.
func PickOne[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.IntN(len(items))]
}

// NewRandomSource returns a PCG-backed source. A zero seed seeds from the
// clock. The source itself is not safe for concurrent use; Normalizer
// serializes its draws.
func NewRandomSource(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}
