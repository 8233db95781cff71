package pipeline

import (
	"time"

	"github.com/backmassage/minmax/internal/reduce"
)

// RunStats tracks aggregate counters and the result of a batch run.
type RunStats struct {
	Files   int
	Workers int

	Processed    int64
	SkippedOpen  int64
	SkippedEmpty int64
	SkippedMap   int64
	Bytes        int64
	Tokens       int64
	Misaligned   int64

	Extremum reduce.Extremum
	Elapsed  time.Duration
}

// Skipped returns the number of files that contributed nothing.
func (s *RunStats) Skipped() int64 {
	return s.SkippedOpen + s.SkippedEmpty + s.SkippedMap
}

// Found reports whether at least one integer was parsed.
func (s *RunStats) Found() bool {
	return !s.Extremum.IsEmpty()
}
