package engine

import (
	"github.com/sourcegraph/conc"
	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/parse"
	"github.com/backmassage/minmax/internal/reduce"
)

// Options configures one run. The zero value scans with GOMAXPROCS
// workers, the four-lane reducer, permissive tokenizing and buffered reads
// from the OS filesystem; callers normally set Source explicitly.
type Options struct {
	Workers   int // <= 0 means GOMAXPROCS.
	Strategy  reduce.Strategy
	Policy    parse.Policy
	BatchSize int
	Source    ingest.Source

	// OnFile, when set, is called from worker goroutines after every file.
	// It must be safe for concurrent use.
	OnFile func(task FileTask, res ingest.Result)
}

// Result summarizes a finished run.
type Result struct {
	Extremum reduce.Extremum // Empty when no integer was parsed.
	Workers  int
	Files    int

	Processed    int64
	SkippedOpen  int64
	SkippedEmpty int64
	SkippedMap   int64
	Bytes        int64
	Tokens       int64
	Misaligned   int64
}

// Skipped returns the number of files that contributed nothing.
func (r Result) Skipped() int64 {
	return r.SkippedOpen + r.SkippedEmpty + r.SkippedMap
}

// Engine owns the shared state of one run. Counters may be polled while
// Run is in progress.
type Engine struct {
	opts     Options
	counters Counters
	global   *Global
}

// New returns an engine ready for a single Run.
func New(opts Options) *Engine {
	if opts.Strategy == "" {
		opts.Strategy = reduce.StrategyLanes
	}
	if opts.Source == nil {
		opts.Source = ingest.NewSource(afero.NewOsFs(), false)
	}
	return &Engine{opts: opts, global: NewGlobal()}
}

// Counters exposes the live totals for progress reporting.
func (e *Engine) Counters() *Counters { return &e.counters }

// Run scans every task and blocks until all workers have joined.
func (e *Engine) Run(tasks []FileTask) Result {
	workers := Workers(len(tasks), e.opts.Workers)

	var cursor Cursor
	var wg conc.WaitGroup
	for range workers {
		wg.Go(func() {
			e.work(tasks, &cursor)
		})
	}
	wg.Wait()

	c := &e.counters
	return Result{
		Extremum:     e.global.Snapshot(),
		Workers:      workers,
		Files:        len(tasks),
		Processed:    c.Processed.Load(),
		SkippedOpen:  c.SkippedOpen.Load(),
		SkippedEmpty: c.SkippedEmpty.Load(),
		SkippedMap:   c.SkippedMap.Load(),
		Bytes:        c.Bytes.Load(),
		Tokens:       c.Tokens.Load(),
		Misaligned:   c.Misaligned.Load(),
	}
}

// work is one worker's claim loop.
func (e *Engine) work(tasks []FileTask, cursor *Cursor) {
	in := ingest.NewIngester(e.opts.Source, e.opts.Policy, e.opts.Strategy, e.opts.BatchSize)
	for {
		idx := cursor.Claim()
		if idx >= len(tasks) {
			return
		}
		task := tasks[idx]
		res := in.File(task.Path)
		if res.Outcome == ingest.OutcomeScanned {
			e.global.Submit(res.Extremum)
		}
		e.counters.record(res)
		if e.opts.OnFile != nil {
			e.opts.OnFile(task, res)
		}
	}
}
