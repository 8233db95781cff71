// Command minmax finds the global minimum and maximum of every decimal
// integer across the files in a directory, scanning them in parallel.
//
// Subcommands generate a synthetic corpus (gen), print system diagnostics
// (check), and report per-file layout (analyze).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/backmassage/minmax/internal/check"
	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/corpus"
	"github.com/backmassage/minmax/internal/display"
	"github.com/backmassage/minmax/internal/logging"
	"github.com/backmassage/minmax/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "minmax: %v\n", err)
		return 1
	}
	return 0
}

// app carries the configuration shared by every command.
type app struct {
	cfg config.Config
	neg config.NegatedFlags
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}

	root := &cobra.Command{
		Use:   "minmax [dir]",
		Short: "Parallel min/max over integer text files",
		Long: `minmax scans every regular file in a directory, parses whitespace- and
newline-delimited decimal integers, and prints the global minimum and maximum.
Files are memory-mapped and scanned by one worker per CPU.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scan(cmd, args)
		},
	}
	config.DefineGlobalFlags(root.PersistentFlags(), &a.cfg, &a.neg)
	config.DefineScanFlags(root.Flags(), &a.cfg, &a.neg)

	root.AddCommand(a.newGenCmd(), a.newCheckCmd(), a.newAnalyzeCmd())
	return root
}

func (a *app) newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <dir>",
		Short: "Write a synthetic corpus of random int64 files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.gen(cmd, args)
		},
	}
	config.DefineGenFlags(cmd.Flags(), &a.cfg)
	return cmd
}

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Print platform, mapping and reducer diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.setup(cmd, args, config.ModeCheck)
			if err != nil {
				return err
			}
			defer log.Close()
			check.RunCheck(&a.cfg, log)
			return nil
		},
	}
}

func (a *app) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <dir>",
		Short: "Report per-file integer counts, extrema and delimiter layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := a.setup(cmd, args, config.ModeAnalyze)
			if err != nil {
				return err
			}
			defer log.Close()
			return pipeline.Analyze(&a.cfg, log, afero.NewOsFs())
		},
	}
	config.DefineScanFlags(cmd.Flags(), &a.cfg, &a.neg)
	return cmd
}

// setup finishes configuration for one command: positional directory,
// negated flags, config file and environment, validation, then the logger.
func (a *app) setup(cmd *cobra.Command, args []string, mode config.Mode) (*logging.Logger, error) {
	cfg := &a.cfg
	cfg.Mode = mode
	if len(args) > 0 {
		cfg.InputDir = config.NormalizeDirArg(args[0])
	}
	config.ApplyNegatedFlags(cfg, &a.neg)
	if err := config.Load(config.NewViper(), cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	display.PrintBanner(log.Out())
	return log, nil
}

func (a *app) scan(cmd *cobra.Command, args []string) error {
	log, err := a.setup(cmd, args, config.ModeScan)
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("=== minmax v%s (%s) ===", version, commit)
	log.Info("In: %s", a.cfg.InputDir)

	// Fail fast on a bad input path or a reducer that disagrees with the
	// scalar fold on this machine.
	if err := check.CheckDeps(&a.cfg); err != nil {
		return err
	}

	_, err = pipeline.Run(&a.cfg, log, afero.NewOsFs())
	return err
}

func (a *app) gen(cmd *cobra.Command, args []string) error {
	log, err := a.setup(cmd, args, config.ModeGen)
	if err != nil {
		return err
	}
	defer log.Close()

	cfg := &a.cfg
	log.Info("Writing %d files x %d integers to %s", cfg.GenFiles, cfg.GenPerFile, cfg.InputDir)
	r, err := corpus.Generate(afero.NewOsFs(), corpus.Options{
		Dir:     cfg.InputDir,
		Files:   cfg.GenFiles,
		PerFile: cfg.GenPerFile,
		Seed:    cfg.GenSeed,
		Workers: cfg.GenWorkers,
	})
	if err != nil {
		return err
	}
	log.Success("Wrote %d files, %s integers (%s)", r.Files, display.FormatCount(r.Values), display.FormatBytes(r.Bytes))
	log.Info("Seed: %d", r.Seed)
	log.Info("Expected Min: %d, Max: %d", r.Extremum.Min, r.Extremum.Max)
	return nil
}
