package engine

import (
	"sync/atomic"

	"github.com/backmassage/minmax/internal/ingest"
)

// Counters are shared progress totals. Workers only add; readers such as
// the progress bar load them without further synchronization and may see
// slightly stale values.
type Counters struct {
	Processed    atomic.Int64 // Files scanned successfully.
	SkippedOpen  atomic.Int64
	SkippedEmpty atomic.Int64
	SkippedMap   atomic.Int64
	Bytes        atomic.Int64
	Tokens       atomic.Int64
	Misaligned   atomic.Int64
}

// Done returns the number of files finished either way.
func (c *Counters) Done() int64 {
	return c.Processed.Load() + c.Skipped()
}

// Skipped returns the number of files left out of the result.
func (c *Counters) Skipped() int64 {
	return c.SkippedOpen.Load() + c.SkippedEmpty.Load() + c.SkippedMap.Load()
}

func (c *Counters) record(res ingest.Result) {
	switch res.Outcome {
	case ingest.OutcomeScanned:
		c.Bytes.Add(res.Bytes)
		c.Tokens.Add(res.Tokens)
		if res.Misaligned > 0 {
			c.Misaligned.Add(int64(res.Misaligned))
		}
		c.Processed.Add(1)
	case ingest.OutcomeOpenFailed:
		c.SkippedOpen.Add(1)
	case ingest.OutcomeEmpty:
		c.SkippedEmpty.Add(1)
	case ingest.OutcomeMapFailed:
		c.SkippedMap.Add(1)
	}
}
