package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/display"
	"github.com/backmassage/minmax/internal/engine"
	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/logging"
	"github.com/backmassage/minmax/internal/planner"
	"github.com/backmassage/minmax/internal/term"
)

// Run is the top-level batch entry point. It discovers files, plans the
// scan, runs the engine with an optional progress bar, and logs the
// summary. Only startup failures (bad input directory, bad pattern) are
// returned as errors; per-file failures show up in the skip counters.
func Run(cfg *config.Config, log *logging.Logger, fs afero.Fs) (RunStats, error) {
	var stats RunStats

	tasks, err := Discover(fs, cfg.InputDir, cfg.Include, cfg.Recursive)
	if err != nil {
		return stats, fmt.Errorf("discover %s: %w", cfg.InputDir, err)
	}
	stats.Files = len(tasks)
	if len(tasks) == 0 {
		log.Warn("No files to process.")
		return stats, nil
	}

	plan, err := planner.BuildPlan(cfg, fs, tasks)
	if err != nil {
		return stats, err
	}
	logBatchHeader(cfg, log, plan)

	opts := plan.EngineOptions()
	opts.OnFile = func(task engine.FileTask, res ingest.Result) {
		if res.Outcome != ingest.OutcomeScanned {
			log.Debug(cfg.Verbose, "Skip (%s): %s", res.Outcome, task.Path)
		}
	}
	eng := engine.New(opts)

	var bar *display.Progress
	if showProgress(cfg) {
		bar = display.NewProgress(log.Out(), len(tasks), eng.Counters().Done)
	}

	start := time.Now()
	if bar != nil {
		bar.Start()
	}
	res := eng.Run(tasks)
	if bar != nil {
		bar.Stop()
	}
	stats.Elapsed = time.Since(start)

	stats.Workers = res.Workers
	stats.Processed = res.Processed
	stats.SkippedOpen = res.SkippedOpen
	stats.SkippedEmpty = res.SkippedEmpty
	stats.SkippedMap = res.SkippedMap
	stats.Bytes = res.Bytes
	stats.Tokens = res.Tokens
	stats.Misaligned = res.Misaligned
	stats.Extremum = res.Extremum

	logSummary(cfg, log, &stats)
	return stats, nil
}

// showProgress draws the bar only on an interactive stdout. Verbose runs
// skip it so per-file lines are not overwritten.
func showProgress(cfg *config.Config) bool {
	return cfg.Progress && !cfg.Verbose && term.IsTerminal(os.Stdout)
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, plan *planner.RunPlan) {
	log.Info("Found %d files (%s) in %s", plan.Files, display.FormatBytes(plan.TotalBytes), cfg.InputDir)
	log.Info("Workers: %d, reducer: %s, batch: %d", plan.Workers, plan.Strategy, plan.BatchSize)
	log.Info("Policy: %s (%s)", plan.Policy, plan.PolicyNote)
	log.Info("Source: %s", plan.SourceLabel())
	if plan.Probed && plan.Layout.Unreadable > 0 {
		log.Debug(cfg.Verbose, "Layout sample: %d unreadable files", plan.Layout.Unreadable)
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if stats.Found() {
		log.Result("Min: %d, Max: %d", stats.Extremum.Min, stats.Extremum.Max)
	} else {
		log.Warn("No integers found in %d files", stats.Files)
	}
	log.Info("Time Taken: %s seconds", display.FormatSeconds(stats.Elapsed))
	log.Info("Scanned %d/%d files, %s, %s integers (%s)",
		stats.Processed, stats.Files,
		display.FormatBytes(stats.Bytes),
		display.FormatCount(stats.Tokens),
		display.FormatRate(stats.Bytes, stats.Elapsed))

	if skipped := stats.Skipped(); skipped > 0 {
		log.Warn("Skipped %d files (open failed: %d, empty: %d, map failed: %d)",
			skipped, stats.SkippedOpen, stats.SkippedEmpty, stats.SkippedMap)
	}
	if stats.Misaligned > 0 {
		log.Debug(cfg.Verbose, "Single-byte policy fell back on %d gaps", stats.Misaligned)
	}
}
