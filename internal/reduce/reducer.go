package reduce

import (
	"fmt"
	"strings"
)

// Reducer accumulates batches of integers into one [Extremum]. A Reducer is
// owned by a single worker and reused across files via Reset.
type Reducer interface {
	// Fold folds every value of vals into the running pair.
	Fold(vals []int64)
	// Extremum returns the pair over everything folded since the last Reset.
	Extremum() Extremum
	// Reset returns the reducer to the empty state.
	Reset()
}

// Strategy names a Reducer implementation.
type Strategy string

const (
	StrategyScalar  Strategy = "scalar"  // Pairwise compare per value.
	StrategyLanes   Strategy = "lanes"   // Four unrolled accumulator lanes (default).
	StrategyHighway Strategy = "highway" // go-highway SIMD vectors.
)

// Strategies lists every strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyScalar, StrategyLanes, StrategyHighway}
}

// ParseStrategy maps a flag value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyScalar:
		return StrategyScalar, nil
	case StrategyLanes, "":
		return StrategyLanes, nil
	case StrategyHighway, "simd":
		return StrategyHighway, nil
	default:
		return "", fmt.Errorf("invalid reducer %q (use 'scalar', 'lanes' or 'highway')", s)
	}
}

// New returns a fresh, empty reducer for s. Unknown strategies fall back to
// the scalar fold.
func New(s Strategy) Reducer {
	switch s {
	case StrategyLanes:
		return NewLanes()
	case StrategyHighway:
		return NewHighway()
	default:
		return NewScalar()
	}
}

// Scalar is the reference fold.
type Scalar struct {
	acc Extremum
}

// NewScalar returns an empty scalar reducer.
func NewScalar() *Scalar {
	return &Scalar{acc: Empty()}
}

func (s *Scalar) Fold(vals []int64) {
	lo, hi := s.acc.Min, s.acc.Max
	for _, v := range vals {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	s.acc.Min, s.acc.Max = lo, hi
}

func (s *Scalar) Extremum() Extremum { return s.acc }

func (s *Scalar) Reset() { s.acc = Empty() }

// Fold runs vals through a fresh reducer of strategy s.
func Fold(s Strategy, vals []int64) Extremum {
	r := New(s)
	r.Fold(vals)
	return r.Extremum()
}
