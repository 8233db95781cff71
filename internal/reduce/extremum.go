// Package reduce folds integer sequences into a (min, max) pair.
//
// Three strategies implement [Reducer]: a scalar compare loop, a portable
// four-lane unrolled fold, and a SIMD fold on go-highway vectors. Min and
// max are associative and commutative, so every strategy returns the same
// pair for the same input regardless of lane width or batch boundaries.
package reduce

import (
	"fmt"
	"math"
)

// Extremum is a (min, max) pair. The zero-information value is [Empty],
// which holds the widest sentinels so any observed value replaces both.
type Extremum struct {
	Min int64
	Max int64
}

// Empty returns the sentinel pair (MaxInt64, MinInt64).
func Empty() Extremum {
	return Extremum{Min: math.MaxInt64, Max: math.MinInt64}
}

// IsEmpty reports whether no value has been observed. Any observation makes
// Min <= Max, so the sentinel is never confused with real data.
func (e Extremum) IsEmpty() bool { return e.Min > e.Max }

// Observe folds one value into e.
func (e *Extremum) Observe(v int64) {
	if v < e.Min {
		e.Min = v
	}
	if v > e.Max {
		e.Max = v
	}
}

// Merge returns the pair covering both a and b.
func Merge(a, b Extremum) Extremum {
	return Extremum{Min: min(a.Min, b.Min), Max: max(a.Max, b.Max)}
}

func (e Extremum) String() string {
	if e.IsEmpty() {
		return "(empty)"
	}
	return fmt.Sprintf("(min=%d, max=%d)", e.Min, e.Max)
}
