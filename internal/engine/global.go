package engine

import (
	"math"
	"sync/atomic"

	"github.com/backmassage/minmax/internal/reduce"
)

// Global is the process-wide (min, max) pair. Both halves are updated
// independently with CAS retry loops, so concurrent Submit calls never
// block each other and the final value does not depend on their order.
type Global struct {
	min atomic.Int64
	max atomic.Int64
}

// NewGlobal returns a Global holding the empty sentinel pair.
func NewGlobal() *Global {
	g := &Global{}
	g.min.Store(math.MaxInt64)
	g.max.Store(math.MinInt64)
	return g
}

// Submit folds e into the shared pair. Submitting an empty pair, or the
// same pair twice, is a no-op.
func (g *Global) Submit(e reduce.Extremum) {
	lowerMin(&g.min, e.Min)
	raiseMax(&g.max, e.Max)
}

// Snapshot returns the current pair. It is exact once every submitter has
// returned.
func (g *Global) Snapshot() reduce.Extremum {
	return reduce.Extremum{Min: g.min.Load(), Max: g.max.Load()}
}

func lowerMin(target *atomic.Int64, v int64) {
	for {
		cur := target.Load()
		if v >= cur || target.CompareAndSwap(cur, v) {
			return
		}
	}
}

func raiseMax(target *atomic.Int64, v int64) {
	for {
		cur := target.Load()
		if v <= cur || target.CompareAndSwap(cur, v) {
			return
		}
	}
}
