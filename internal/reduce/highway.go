package reduce

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Highway folds full vectors with go-highway's lane-wise Min/Max and the
// remainder of each batch with scalar compares. The running pair is
// broadcast into the accumulator vectors at the start of every batch, so
// batch boundaries never change the result.
type Highway struct {
	acc Extremum
}

// NewHighway returns an empty SIMD reducer.
func NewHighway() *Highway {
	return &Highway{acc: Empty()}
}

func (h *Highway) Fold(vals []int64) {
	if len(vals) == 0 {
		return
	}
	lo, hi := h.acc.Min, h.acc.Max
	vMin := hwy.Set(lo)
	vMax := hwy.Set(hi)

	hwy.ProcessWithTail[int64](len(vals),
		func(offset int) {
			v := hwy.Load(vals[offset:])
			vMin = hwy.Min(vMin, v)
			vMax = hwy.Max(vMax, v)
		},
		func(offset, count int) {
			for _, v := range vals[offset : offset+count] {
				lo = min(lo, v)
				hi = max(hi, v)
			}
		},
	)

	h.acc.Min = min(lo, hwy.ReduceMin(vMin))
	h.acc.Max = max(hi, hwy.ReduceMax(vMax))
}

func (h *Highway) Extremum() Extremum { return h.acc }

func (h *Highway) Reset() { h.acc = Empty() }

// HighwayLanes reports how many int64 lanes go-highway processes per full
// vector on this machine, measured from the stride of its full-vector
// callback.
func HighwayLanes() int {
	const probe = 256
	first, second := -1, -1
	hwy.ProcessWithTail[int64](probe,
		func(offset int) {
			switch {
			case first < 0:
				first = offset
			case second < 0:
				second = offset
			}
		},
		func(offset, count int) {},
	)
	switch {
	case first >= 0 && second > first:
		return second - first
	case first >= 0:
		return probe
	default:
		return 1
	}
}
