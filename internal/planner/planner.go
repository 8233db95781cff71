package planner

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/engine"
	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/parse"
	"github.com/backmassage/minmax/internal/probe"
	"github.com/backmassage/minmax/internal/reduce"
)

// BuildPlan produces a RunPlan from config and the discovered tasks. fs is
// the filesystem the tasks live on; it is sampled when the policy is auto.
//
// Flow:
//  1. Size the worker pool against the task count
//  2. Resolve the reducer strategy
//  3. Resolve the tokenizer policy, probing a sample for auto
//  4. Pick the byte source (mmap or buffered)
func BuildPlan(cfg *config.Config, fs afero.Fs, tasks []engine.FileTask) (*RunPlan, error) {
	plan := &RunPlan{
		Files:     len(tasks),
		BatchSize: cfg.BatchSize,
	}
	for _, t := range tasks {
		plan.TotalBytes += t.Size
	}
	if plan.BatchSize <= 0 {
		plan.BatchSize = ingest.DefaultBatchSize
	}

	// --- 1. Workers ---
	plan.Workers = engine.Workers(len(tasks), cfg.Workers)

	// --- 2. Reducer ---
	strategy, err := reduce.ParseStrategy(string(cfg.Reducer))
	if err != nil {
		return nil, err
	}
	plan.Strategy = strategy

	// --- 3. Policy ---
	switch cfg.Policy {
	case config.PolicyAuto:
		plan.Layout = probe.Sample(fs, taskPaths(tasks), probe.DefaultLimit, probe.DefaultHead)
		plan.Probed = true
		plan.Policy, plan.PolicyNote = choosePolicy(plan.Layout)
	default:
		p, ok := parse.ParsePolicy(string(cfg.Policy))
		if !ok {
			return nil, fmt.Errorf("invalid policy %q", cfg.Policy)
		}
		plan.Policy = p
		plan.PolicyNote = "set explicitly"
	}

	// --- 4. Source ---
	plan.Source = ingest.NewSource(fs, cfg.Mmap)

	return plan, nil
}

// choosePolicy picks SingleByte only when the sample shows one-byte gaps
// throughout; anything else keeps the permissive reference policy.
func choosePolicy(l probe.Layout) (parse.Policy, string) {
	switch {
	case l.Tokens == 0:
		return parse.Permissive, "auto: no tokens in sample"
	case l.SingleByteSafe():
		return parse.SingleByte, fmt.Sprintf("auto: %d one-byte gaps in %d sampled files", l.Gaps, l.Files)
	default:
		return parse.Permissive, fmt.Sprintf("auto: %d long gaps in sample (max %d bytes)", l.LongGaps, l.MaxGap)
	}
}

func taskPaths(tasks []engine.FileTask) []string {
	paths := make([]string, len(tasks))
	for i, t := range tasks {
		paths[i] = t.Path
	}
	return paths
}
