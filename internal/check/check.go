// Package check provides system diagnostics (the check command) and the
// pre-scan validation (CheckDeps) run before every scan.
package check

import (
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/display"
	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/reduce"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrInputMissing    = errors.New("input directory does not exist")
	ErrInputNotDir     = errors.New("input path is not a directory")
	ErrReducerMismatch = errors.New("reducer self-test disagrees with the scalar fold")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...any)
	Success(string, ...any)
	Warn(string, ...any)
	Error(string, ...any)
	Debug(bool, string, ...any)
}

// RunCheck prints platform, scheduler, mapping, and reducer details, plus
// disk usage of cfg.InputDir when one is given. It is informational only
// and does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkPlatform(log)
	checkMmap(log)
	checkReducers(log)
	if cfg.InputDir != "" {
		checkInputDir(log, cfg.InputDir)
	}
}

// checkPlatform logs the OS, architecture, CPU count, and Go runtime.
func checkPlatform(log Logger) {
	log.Info("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info("Go runtime: %s", runtime.Version())
	log.Info("CPUs: %d, GOMAXPROCS: %d", runtime.NumCPU(), runtime.GOMAXPROCS(0))
}

// checkMmap reports whether files will be mapped or buffered.
func checkMmap(log Logger) {
	if ingest.MmapSupported() {
		log.Success("mmap: available (read-only, shared, sequential hint)")
	} else {
		log.Warn("mmap: unavailable on %s; files are read into memory", runtime.GOOS)
	}
}

// checkReducers self-tests every fold strategy against the scalar reference.
func checkReducers(log Logger) {
	log.Info("Reducers:")
	for _, s := range reduce.Strategies() {
		if err := selfTest(s); err != nil {
			log.Error("  %s: %v", s, err)
			continue
		}
		if s == reduce.StrategyHighway {
			log.Success("  %s: ok (%d int64 lanes)", s, reduce.HighwayLanes())
		} else {
			log.Success("  %s: ok", s)
		}
	}
}

// checkInputDir logs file-system capacity behind dir.
func checkInputDir(log Logger, dir string) {
	total, free, err := diskUsage(dir)
	if err != nil {
		log.Warn("Disk usage for %s: %v", dir, err)
		return
	}
	log.Info("Disk at %s: %s free of %s", dir, display.FormatBytes(int64(free)), display.FormatBytes(int64(total)))
}

// CheckDeps is the pre-scan validation: the input directory must exist and
// be a directory, and the configured reducer must agree with the scalar
// fold on a fixed vector. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	fi, err := os.Stat(cfg.InputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", cfg.InputDir, ErrInputMissing)
		}
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", cfg.InputDir, ErrInputNotDir)
	}

	s, err := reduce.ParseStrategy(string(cfg.Reducer))
	if err != nil {
		return err
	}
	return selfTest(s)
}

// --- internal helpers ---

// selfTestVector mixes sentinels, signs, and a length that leaves a tail
// for every lane width.
var selfTestVector = []int64{
	3, -7, math.MaxInt64, 0, -1, 42, math.MinInt64, 9,
	-3, 17, 5, -99, 1 << 40, -(1 << 40), 2, 8,
	11, -11, 13,
}

func selfTest(s reduce.Strategy) error {
	want := reduce.Fold(reduce.StrategyScalar, selfTestVector)
	got := reduce.Fold(s, selfTestVector)
	if got != want {
		return fmt.Errorf("%s: got %v, want %v: %w", s, got, want, ErrReducerMismatch)
	}
	return nil
}
