// Package pipeline orchestrates file discovery, the parallel scan, and
// batch summary reporting.
//
// Types:
//   - RunStats (Files, Processed, skip counts, Bytes, Tokens, Extremum,
//     Elapsed; Skipped and Found methods)
//
// Functions:
//   - Run(cfg, log, fs) → RunStats, error
//     Batch runner: discover → plan → engine run with progress → summary.
//   - Discover(fs, dir, include, recursive) → []engine.FileTask
//     List regular files, filter base names by glob, sort deterministically.
//   - Analyze(cfg, log, fs) → error
//     Per-file layout table with token-count outlier highlighting.
package pipeline
