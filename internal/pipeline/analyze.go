package pipeline

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/display"
	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/logging"
	"github.com/backmassage/minmax/internal/parse"
	"github.com/backmassage/minmax/internal/probe"
	"github.com/backmassage/minmax/internal/reduce"
	"github.com/backmassage/minmax/internal/term"
)

// fileRow holds the inspected per-file data for the analysis table.
type fileRow struct {
	Name     string
	Size     int64
	Tokens   int64
	Extremum reduce.Extremum
	LongGaps int
	MaxGap   int
}

// Analyze discovers files, inspects each one in full, and prints a tabular
// token/layout report with token-count outlier highlighting.
func Analyze(cfg *config.Config, log *logging.Logger, fs afero.Fs) error {
	tasks, err := Discover(fs, cfg.InputDir, cfg.Include, cfg.Recursive)
	if err != nil {
		return fmt.Errorf("discover %s: %w", cfg.InputDir, err)
	}
	if len(tasks) == 0 {
		log.Warn("No files to process.")
		return nil
	}

	total := len(tasks)
	log.Info("Analyzing %d files in %s …", total, cfg.InputDir)

	isTTY := term.IsTerminal(os.Stdout)
	src := ingest.NewSource(fs, cfg.Mmap)
	in := ingest.NewIngester(src, parse.Permissive, reduce.StrategyLanes, cfg.BatchSize)

	var rows []fileRow
	var skipped int
	var tokenVals []float64
	layout := probe.Layout{}

	for i, task := range tasks {
		printProgress(isTTY, i+1, total, skipped, filepath.Base(task.Path))

		view, outcome := src.Acquire(task.Path)
		if outcome != ingest.OutcomeScanned {
			skipped++
			if isTTY {
				clearProgress()
			}
			log.Warn("Skip (%s): %s", outcome, filepath.Base(task.Path))
			continue
		}
		l := probe.Inspect(view.Bytes())
		res := in.Scan(view.Bytes())
		if err := view.Release(); err != nil {
			log.Debug(cfg.Verbose, "Release %s: %v", task.Path, err)
		}
		layout.Add(l)

		row := fileRow{
			Name:     filepath.Base(task.Path),
			Size:     task.Size,
			Tokens:   res.Tokens,
			Extremum: res.Extremum,
			LongGaps: l.LongGaps,
			MaxGap:   l.MaxGap,
		}
		rows = append(rows, row)
		tokenVals = append(tokenVals, float64(row.Tokens))
	}

	if isTTY {
		clearProgress()
	}

	if len(rows) == 0 {
		log.Warn("No files could be read")
		return nil
	}

	tStats := computeStats(tokenVals)
	printAnalysisTable(log.Out(), rows, tStats)
	printAnalysisSummary(log, rows, tStats, layout)
	return nil
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeStats(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

func printAnalysisTable(w io.Writer, rows []fileRow, tStats iqrBounds) {
	nameW := len("File")
	sizeW := len("Size")
	tokW := len("Integers")
	minW := len("Min")
	maxW := len("Max")
	gapW := len("Long Gaps")

	for _, r := range rows {
		nameW = max(nameW, len(r.Name))
		sizeW = max(sizeW, len(display.FormatBytes(r.Size)))
		tokW = max(tokW, len(display.FormatCount(r.Tokens)))
		lo, hi := fmtExtremum(r.Extremum)
		minW = max(minW, len(lo))
		maxW = max(maxW, len(hi))
		gapW = max(gapW, len(fmtGaps(r)))
	}

	if nameW > 50 {
		nameW = 50
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s  %-*s  %-*s",
		nameW, "File",
		sizeW, "Size",
		tokW, "Integers",
		minW, "Min",
		maxW, "Max",
		gapW, "Long Gaps",
	)
	separator := "  " + strings.Repeat("─", len(header)-2)

	fmt.Fprintln(w, header)
	fmt.Fprintln(w, separator)

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}
		lo, hi := fmtExtremum(r.Extremum)
		class := tStats.classify(float64(r.Tokens))

		// Pad the plain text first, then wrap in ANSI color. This avoids
		// the alignment bug where %-*s counts escape bytes as visible width.
		tokCell := colorPad(display.FormatCount(r.Tokens), tokW, class)

		fmt.Fprintf(w, "  %-*s  %-*s  %s  %-*s  %-*s  %-*s  %s\n",
			nameW, name,
			sizeW, display.FormatBytes(r.Size),
			tokCell,
			minW, lo,
			maxW, hi,
			gapW, fmtGaps(r),
			formatFlag(class),
		)
	}
	fmt.Fprintln(w)
}

func printAnalysisSummary(log *logging.Logger, rows []fileRow, tStats iqrBounds, layout probe.Layout) {
	var outliers, extremes int
	for _, r := range rows {
		switch tStats.classify(float64(r.Tokens)) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
	}

	log.Info("Analyzed %d files", len(rows))
	if tStats.valid {
		log.Info("  Integers per file IQR: %.0f – %.0f (outlier < %.0f or > %.0f)",
			tStats.q1, tStats.q3, tStats.outlierLo, tStats.outlierHi)
	}
	if layout.SingleByteSafe() {
		log.Info("  Layout: every gap is one byte; single-byte policy is safe")
	} else {
		log.Info("  Layout: %d long gaps (max %d bytes); permissive policy recommended", layout.LongGaps, layout.MaxGap)
	}
	if outliers > 0 {
		log.Outlier("  %d outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func fmtExtremum(e reduce.Extremum) (string, string) {
	if e.IsEmpty() {
		return "n/a", "n/a"
	}
	return strconv.FormatInt(e.Min, 10), strconv.FormatInt(e.Max, 10)
}

func fmtGaps(r fileRow) string {
	if r.LongGaps == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (max %d)", r.LongGaps, r.MaxGap)
}

func formatFlag(flag string) string {
	switch flag {
	case "extreme":
		return term.Red + "[!]" + term.NC
	case "outlier":
		return term.Orange + "[*]" + term.NC
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then wraps in ANSI color. This
// ensures %-*s-style alignment works correctly regardless of escape sequences.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Red + padded + term.NC
	case "outlier":
		return term.Orange + padded + term.NC
	default:
		return padded
	}
}

// printProgress shows a live inspection counter. On a TTY it writes an
// inline \r-overwritten line; otherwise it is a no-op (the skip warnings
// already provide enough breadcrumbs in piped/logged output).
func printProgress(isTTY bool, current, total, skipped int, name string) {
	if !isTTY {
		return
	}
	pct := current * 100 / total
	status := fmt.Sprintf("  Inspecting [%d/%d] %d%% ", current, total, pct)
	if skipped > 0 {
		status += fmt.Sprintf("(%d skipped) ", skipped)
	}

	maxName := 40
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}
	status += name

	width := term.Width(os.Stdout)
	if len(status) < width {
		status += strings.Repeat(" ", width-len(status))
	}
	fmt.Fprintf(os.Stdout, "\r%s", status)
}

// clearProgress erases the inline progress line on a TTY.
func clearProgress() {
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", term.Width(os.Stdout)))
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
