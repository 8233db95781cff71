package reduce

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtremum_EmptyAndObserve(t *testing.T) {
	e := Empty()
	if !e.IsEmpty() {
		t.Fatal("Empty() should report IsEmpty")
	}
	e.Observe(3)
	if e.IsEmpty() {
		t.Fatal("IsEmpty after Observe")
	}
	if diff := cmp.Diff(Extremum{Min: 3, Max: 3}, e); diff != "" {
		t.Errorf("single observation (-want +got):\n%s", diff)
	}

	// A corpus holding exactly the sentinel values is not empty.
	full := Empty()
	full.Observe(math.MinInt64)
	full.Observe(math.MaxInt64)
	if full.IsEmpty() {
		t.Error("sentinel-valued data must not read as empty")
	}
}

func TestMerge(t *testing.T) {
	a := Extremum{Min: -3, Max: 10}
	b := Extremum{Min: -100, Max: 7}
	want := Extremum{Min: -100, Max: 10}
	if got := Merge(a, b); got != want {
		t.Errorf("Merge = %v, want %v", got, want)
	}
	if got := Merge(b, a); got != want {
		t.Errorf("Merge not commutative: %v", got)
	}
	if got := Merge(a, Empty()); got != a {
		t.Errorf("Merge with Empty changed value: %v", got)
	}
}

func TestStrategies_KnownSequences(t *testing.T) {
	tests := []struct {
		name string
		vals []int64
		want Extremum
	}{
		{"mixed signs", []int64{-3, 5, 10}, Extremum{Min: -3, Max: 10}},
		{"single", []int64{5}, Extremum{Min: 5, Max: 5}},
		{"empty", nil, Empty()},
		{"bounds", []int64{0, math.MaxInt64, math.MinInt64}, Extremum{Min: math.MinInt64, Max: math.MaxInt64}},
		{"all equal", []int64{4, 4, 4, 4, 4, 4, 4, 4, 4}, Extremum{Min: 4, Max: 4}},
		{"min in tail", []int64{1, 2, 3, 4, 5, 6, 7, 8, -9}, Extremum{Min: -9, Max: 8}},
	}
	for _, tt := range tests {
		for _, s := range Strategies() {
			t.Run(tt.name+"/"+string(s), func(t *testing.T) {
				if got := Fold(s, tt.vals); got != tt.want {
					t.Errorf("Fold(%s) = %v, want %v", s, got, tt.want)
				}
			})
		}
	}
}

func TestStrategies_AgreeWithScalar(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))
	for round := 0; round < 100; round++ {
		vals := make([]int64, rng.IntN(1000))
		for i := range vals {
			vals[i] = int64(rng.Uint64())
		}
		want := Fold(StrategyScalar, vals)
		for _, s := range []Strategy{StrategyLanes, StrategyHighway} {
			if got := Fold(s, vals); got != want {
				t.Fatalf("round %d: %s = %v, scalar = %v", round, s, got, want)
			}
		}
	}
}

func TestStrategies_BatchBoundariesDoNotMatter(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	vals := make([]int64, 2049)
	for i := range vals {
		vals[i] = rng.Int64N(1_000_000) - 500_000
	}
	want := Fold(StrategyScalar, vals)
	for _, s := range Strategies() {
		for _, batch := range []int{1, 3, 4, 7, 64, 512} {
			r := New(s)
			for i := 0; i < len(vals); i += batch {
				r.Fold(vals[i:min(i+batch, len(vals))])
			}
			if got := r.Extremum(); got != want {
				t.Errorf("%s batch=%d: got %v, want %v", s, batch, got, want)
			}
		}
	}
}

func TestReducer_Reset(t *testing.T) {
	for _, s := range Strategies() {
		r := New(s)
		r.Fold([]int64{-50, 50})
		r.Reset()
		if got := r.Extremum(); !got.IsEmpty() {
			t.Errorf("%s: Extremum after Reset = %v, want empty", s, got)
		}
		r.Fold([]int64{1, 2})
		if got := r.Extremum(); got != (Extremum{Min: 1, Max: 2}) {
			t.Errorf("%s: Extremum after reuse = %v", s, got)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"scalar", StrategyScalar, false},
		{"LANES", StrategyLanes, false},
		{"", StrategyLanes, false},
		{"highway", StrategyHighway, false},
		{"simd", StrategyHighway, false},
		{"gpu", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStrategy(%q) = (%q, %v), want (%q, err=%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestHighwayLanes(t *testing.T) {
	if n := HighwayLanes(); n < 1 {
		t.Errorf("HighwayLanes() = %d, want >= 1", n)
	}
}

func BenchmarkFold(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	vals := make([]int64, 1<<16)
	for i := range vals {
		vals[i] = int64(rng.Uint64())
	}
	for _, s := range Strategies() {
		b.Run(string(s), func(b *testing.B) {
			r := New(s)
			b.SetBytes(int64(len(vals) * 8))
			for i := 0; i < b.N; i++ {
				r.Reset()
				r.Fold(vals)
			}
		})
	}
}
