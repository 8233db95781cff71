// Package config holds runtime configuration: defaults, CLI flag
// definitions, config-file and environment layering, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by Validate.
var (
	ErrNoInputDir  = errors.New("need an input directory")
	ErrNoOutputDir = errors.New("need an output directory")
)

// --- Enum types for validated string fields ---

// Mode selects which command the configuration drives.
type Mode string

const (
	ModeScan    Mode = "scan"    // Compute extrema over a directory (default).
	ModeGen     Mode = "gen"     // Write a synthetic corpus.
	ModeCheck   Mode = "check"   // Print system diagnostics and exit.
	ModeAnalyze Mode = "analyze" // Per-file layout report.
)

// ReducerMode selects the fold used inside each file.
type ReducerMode string

const (
	ReducerScalar  ReducerMode = "scalar"  // One compare pair per value.
	ReducerLanes   ReducerMode = "lanes"   // Four unrolled lanes (default).
	ReducerHighway ReducerMode = "highway" // go-highway SIMD vectors.
)

// PolicyMode selects how the tokenizer crosses delimiter gaps.
type PolicyMode string

const (
	PolicyAuto       PolicyMode = "auto"        // Probe the corpus and decide (default).
	PolicyPermissive PolicyMode = "permissive"  // Skip any run of delimiters.
	PolicySingleByte PolicyMode = "single-byte" // Step one byte, fall back when wrong.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by flags and [Load], before being passed (by pointer) to packages
// that need it.
type Config struct {
	Mode Mode

	// Corpus location. For gen, InputDir is where files are written.
	InputDir  string
	Include   string // Glob on base names; empty matches everything.
	Recursive bool   // Walk subdirectories. Default: false.

	// Engine.
	Workers   int         // 0 = GOMAXPROCS, capped by file count.
	Reducer   ReducerMode // Default: "lanes".
	Policy    PolicyMode  // Default: "auto".
	BatchSize int         // Integers per fold. Default: 512.
	Mmap      bool        // Default: true. Cleared by --no-mmap.

	// Corpus generator (gen).
	GenFiles   int    // Default: 100.
	GenPerFile int    // Default: 15000 (matches the reference challenge).
	GenSeed    uint64 // 0 = seed from time.
	GenWorkers int    // 0 = GOMAXPROCS.

	// Display and logging.
	Verbose    bool
	Progress   bool      // Default: true. Cleared by --no-progress.
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	ConfigFile string    // Optional yaml/toml/json config file.
}

// DefaultConfig returns a Config with every default applied. Used as the
// base before flags and [Load] apply overrides.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeScan,
		Recursive:  false,
		Workers:    0,
		Reducer:    ReducerLanes,
		Policy:     PolicyAuto,
		BatchSize:  512,
		Mmap:       true,
		GenFiles:   100,
		GenPerFile: 15000,
		GenSeed:    0,
		GenWorkers: 0,
		Verbose:    false,
		Progress:   true,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and numeric ranges, then the path
// requirements of the active Mode.
func (c *Config) Validate() error {
	switch c.Reducer {
	case ReducerScalar, ReducerLanes, ReducerHighway:
		// valid
	default:
		return errors.New("invalid reducer (use 'scalar', 'lanes' or 'highway')")
	}

	switch c.Policy {
	case PolicyAuto, PolicyPermissive, PolicySingleByte:
		// valid
	default:
		return errors.New("invalid policy (use 'auto', 'permissive' or 'single-byte')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative (got %d)", c.Workers)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive (got %d)", c.BatchSize)
	}

	switch c.Mode {
	case ModeCheck:
		return nil
	case ModeGen:
		if c.InputDir == "" {
			return ErrNoOutputDir
		}
		if c.GenFiles <= 0 || c.GenPerFile <= 0 {
			return fmt.Errorf("gen needs positive --files and --per-file (got %d, %d)", c.GenFiles, c.GenPerFile)
		}
		if c.GenWorkers < 0 {
			return fmt.Errorf("gen workers must not be negative (got %d)", c.GenWorkers)
		}
		return nil
	case ModeScan, ModeAnalyze, "":
		if c.InputDir == "" {
			return ErrNoInputDir
		}
		return nil
	default:
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
}
