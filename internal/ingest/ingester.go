package ingest

import (
	"github.com/backmassage/minmax/internal/parse"
	"github.com/backmassage/minmax/internal/reduce"
)

// DefaultBatchSize is the number of integers tokenized before each fold.
// 512 int64 values stay well inside L1 next to the mapped page being read.
const DefaultBatchSize = 512

// Result is the outcome of ingesting one file.
type Result struct {
	Outcome    Outcome
	Extremum   reduce.Extremum // Empty unless Outcome is OutcomeScanned.
	Bytes      int64           // Bytes scanned.
	Tokens     int64           // Integers parsed.
	Misaligned int             // Single-byte gaps that needed a full skip.
}

// Ingester scans files for one worker. Its tokenizer, reducer and batch
// buffer are reused across files, so an Ingester must not be shared.
type Ingester struct {
	src     Source
	reducer reduce.Reducer
	tok     *parse.Tokenizer
	batch   []int64
}

// NewIngester builds a worker-local ingester. A non-positive batchSize
// selects DefaultBatchSize.
func NewIngester(src Source, policy parse.Policy, strategy reduce.Strategy, batchSize int) *Ingester {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Ingester{
		src:     src,
		reducer: reduce.New(strategy),
		tok:     parse.New(nil, policy),
		batch:   make([]int64, batchSize),
	}
}

// File maps path, folds every integer in it, and releases the view before
// returning.
func (in *Ingester) File(path string) Result {
	view, outcome := in.src.Acquire(path)
	if outcome != OutcomeScanned {
		return Result{Outcome: outcome, Extremum: reduce.Empty()}
	}
	defer view.Release()

	return in.Scan(view.Bytes())
}

// Scan folds an in-memory buffer exactly as File would fold a file with
// the same contents.
func (in *Ingester) Scan(data []byte) Result {
	in.tok.Reset(data)
	in.reducer.Reset()

	var tokens int64
	for {
		n := in.tok.Fill(in.batch)
		if n == 0 {
			break
		}
		in.reducer.Fold(in.batch[:n])
		tokens += int64(n)
	}

	return Result{
		Outcome:    OutcomeScanned,
		Extremum:   in.reducer.Extremum(),
		Bytes:      int64(len(data)),
		Tokens:     tokens,
		Misaligned: in.tok.Misaligned(),
	}
}
