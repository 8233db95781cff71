package planner

import (
	"github.com/backmassage/minmax/internal/engine"
	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/parse"
	"github.com/backmassage/minmax/internal/probe"
	"github.com/backmassage/minmax/internal/reduce"
)

// RunPlan holds every decision for one scan. It is produced by BuildPlan
// and turned into engine options by the pipeline.
type RunPlan struct {
	Files      int
	TotalBytes int64

	Workers   int
	Strategy  reduce.Strategy
	Policy    parse.Policy
	BatchSize int
	Source    ingest.Source

	// PolicyNote explains how Policy was chosen (e.g. "auto: 2 long gaps in sample").
	PolicyNote string

	// Layout is the probe sample used for --policy auto. Probed is false
	// when the policy was set explicitly.
	Layout probe.Layout
	Probed bool
}

// EngineOptions converts the plan into options for [engine.New].
func (p *RunPlan) EngineOptions() engine.Options {
	return engine.Options{
		Workers:   p.Workers,
		Strategy:  p.Strategy,
		Policy:    p.Policy,
		BatchSize: p.BatchSize,
		Source:    p.Source,
	}
}

// SourceLabel names the byte source for log output.
func (p *RunPlan) SourceLabel() string {
	if p.Source != nil && p.Source.Mapped() {
		return "mmap"
	}
	return "buffered read"
}
