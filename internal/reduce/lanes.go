package reduce

import "math"

// laneCount is the width of the portable fold. Four independent
// accumulators break the compare dependency chain, which the compiler turns
// into parallel compare/select on amd64 and arm64.
const laneCount = 4

// Lanes folds values into laneCount independent (min, max) accumulators and
// reduces them horizontally when the result is read.
type Lanes struct {
	lo [laneCount]int64
	hi [laneCount]int64
}

// NewLanes returns an empty four-lane reducer.
func NewLanes() *Lanes {
	l := &Lanes{}
	l.Reset()
	return l
}

func (l *Lanes) Reset() {
	for i := range laneCount {
		l.lo[i] = math.MaxInt64
		l.hi[i] = math.MinInt64
	}
}

func (l *Lanes) Fold(vals []int64) {
	lo0, lo1, lo2, lo3 := l.lo[0], l.lo[1], l.lo[2], l.lo[3]
	hi0, hi1, hi2, hi3 := l.hi[0], l.hi[1], l.hi[2], l.hi[3]

	n := len(vals)
	i := 0
	for ; i <= n-laneCount; i += laneCount {
		v0, v1, v2, v3 := vals[i], vals[i+1], vals[i+2], vals[i+3]
		lo0, hi0 = min(lo0, v0), max(hi0, v0)
		lo1, hi1 = min(lo1, v1), max(hi1, v1)
		lo2, hi2 = min(lo2, v2), max(hi2, v2)
		lo3, hi3 = min(lo3, v3), max(hi3, v3)
	}
	for ; i < n; i++ {
		lo0, hi0 = min(lo0, vals[i]), max(hi0, vals[i])
	}

	l.lo = [laneCount]int64{lo0, lo1, lo2, lo3}
	l.hi = [laneCount]int64{hi0, hi1, hi2, hi3}
}

// Extremum reduces the lanes pairwise: (0,1) and (2,3), then the two halves.
func (l *Lanes) Extremum() Extremum {
	return Extremum{
		Min: min(min(l.lo[0], l.lo[1]), min(l.lo[2], l.lo[3])),
		Max: max(max(l.hi[0], l.hi[1]), max(l.hi[2], l.hi[3])),
	}
}
