package config

// This file registers CLI flags on pflag sets owned by the cobra commands.
// Flags are grouped into input, engine, generator, and display.
// Negated flags (e.g. --no-mmap) are applied after parsing so Config
// defaults hold unless the user passes the flag.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// NegatedFlags holds boolean flags that invert a default after parsing.
type NegatedFlags struct {
	noMmap     bool
	noProgress bool
	forceColor bool
	noColor    bool
}

// DefineGlobalFlags registers display, logging and config-file flags shared
// by every command.
func DefineGlobalFlags(fs *pflag.FlagSet, cfg *Config, n *NegatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output (per-file skip reasons)")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "Config file (yaml, toml or json)")
}

// DefineScanFlags registers the input and engine flags of the scan command.
func DefineScanFlags(fs *pflag.FlagSet, cfg *Config, n *NegatedFlags) {
	fs.StringVarP(&cfg.Include, "include", "i", "", "Only scan files whose name matches this glob (e.g. '*.txt')")
	fs.BoolVarP(&cfg.Recursive, "recursive", "r", false, "Descend into subdirectories")
	defineEngineFlags(fs, cfg, n)
	fs.BoolVar(&n.noProgress, "no-progress", false, "Do not draw the progress bar")
}

// DefineGenFlags registers the corpus generator flags.
func DefineGenFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.GenFiles, "files", "n", cfg.GenFiles, "Number of files to write")
	fs.IntVarP(&cfg.GenPerFile, "per-file", "m", cfg.GenPerFile, "Integers per file")
	fs.Uint64Var(&cfg.GenSeed, "seed", cfg.GenSeed, "Random seed (0 = time-based)")
	fs.IntVar(&cfg.GenWorkers, "gen-workers", cfg.GenWorkers, "Concurrent writers (0 = GOMAXPROCS)")
}

// defineEngineFlags registers worker, reducer, policy and mapping flags.
func defineEngineFlags(fs *pflag.FlagSet, cfg *Config, n *NegatedFlags) {
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Worker count (0 = GOMAXPROCS, capped by file count)")
	fs.Var(&reducerValue{&cfg.Reducer}, "reducer", "Per-file fold: scalar | lanes | highway")
	fs.Var(&policyValue{&cfg.Policy}, "policy", "Delimiter policy: auto | permissive | single-byte")
	fs.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Integers tokenized per fold")
	fs.BoolVar(&n.noMmap, "no-mmap", false, "Read files into memory instead of mapping them")
}

// ApplyNegatedFlags copies negated flag values into cfg (e.g. noMmap -> Mmap=false).
func ApplyNegatedFlags(cfg *Config, n *NegatedFlags) {
	if n.noMmap {
		cfg.Mmap = false
	}
	if n.noProgress {
		cfg.Progress = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapters so enum types can be used with fs.Var.

type reducerValue struct{ p *ReducerMode }

func (r *reducerValue) String() string { return string(*r.p) }
func (r *reducerValue) Type() string   { return "reducer" }
func (r *reducerValue) Set(s string) error {
	switch ReducerMode(strings.ToLower(s)) {
	case ReducerScalar:
		*r.p = ReducerScalar
	case ReducerLanes:
		*r.p = ReducerLanes
	case ReducerHighway, "simd":
		*r.p = ReducerHighway
	default:
		return fmt.Errorf("invalid reducer %q (use 'scalar', 'lanes' or 'highway')", s)
	}
	return nil
}

type policyValue struct{ p *PolicyMode }

func (v *policyValue) String() string { return string(*v.p) }
func (v *policyValue) Type() string   { return "policy" }
func (v *policyValue) Set(s string) error {
	switch PolicyMode(strings.ToLower(s)) {
	case PolicyAuto:
		*v.p = PolicyAuto
	case PolicyPermissive:
		*v.p = PolicyPermissive
	case PolicySingleByte, "single":
		*v.p = PolicySingleByte
	default:
		return fmt.Errorf("invalid policy %q (use 'auto', 'permissive' or 'single-byte')", s)
	}
	return nil
}

type colorValue struct{ p *ColorMode }

func (c *colorValue) String() string { return string(*c.p) }
func (c *colorValue) Type() string   { return "color" }
func (c *colorValue) Set(s string) error {
	switch ColorMode(strings.ToLower(s)) {
	case ColorAuto:
		*c.p = ColorAuto
	case ColorAlways:
		*c.p = ColorAlways
	case ColorNever:
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}
