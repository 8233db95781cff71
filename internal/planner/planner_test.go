package planner

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/backmassage/minmax/internal/config"
	"github.com/backmassage/minmax/internal/engine"
	"github.com/backmassage/minmax/internal/ingest"
	"github.com/backmassage/minmax/internal/parse"
	"github.com/backmassage/minmax/internal/reduce"
)

// --- Helper builders ---

func defaultCfg() *config.Config {
	cfg := config.DefaultConfig()
	return &cfg
}

func memCorpus(t *testing.T, files map[string]string) (afero.Fs, []engine.FileTask) {
	t.Helper()
	fs := afero.NewMemMapFs()
	var tasks []engine.FileTask
	for name, body := range files {
		path := "/in/" + name
		if err := afero.WriteFile(fs, path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		tasks = append(tasks, engine.FileTask{Path: path, Size: int64(len(body))})
	}
	return fs, tasks
}

func TestBuildPlan_AutoPolicy(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   parse.Policy
		inNote string
	}{
		{"newline corpus", "1\n2\n3\n", parse.SingleByte, "one-byte gaps"},
		{"crlf corpus", "1\r\n2\r\n", parse.Permissive, "long gaps"},
		{"no tokens", "\n\n", parse.Permissive, "no tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, tasks := memCorpus(t, map[string]string{"a.txt": tt.body})
			plan, err := BuildPlan(defaultCfg(), fs, tasks)
			if err != nil {
				t.Fatal(err)
			}
			if !plan.Probed {
				t.Error("auto policy should probe")
			}
			if plan.Policy != tt.want {
				t.Errorf("Policy = %s, want %s", plan.Policy, tt.want)
			}
			if !strings.Contains(plan.PolicyNote, tt.inNote) {
				t.Errorf("PolicyNote = %q, want it to mention %q", plan.PolicyNote, tt.inNote)
			}
		})
	}
}

func TestBuildPlan_ExplicitSettings(t *testing.T) {
	fs, tasks := memCorpus(t, map[string]string{"a.txt": "1\r\n", "b.txt": "22\n"})
	cfg := defaultCfg()
	cfg.Policy = config.PolicySingleByte
	cfg.Reducer = config.ReducerHighway
	cfg.Workers = 8
	cfg.BatchSize = 64

	plan, err := BuildPlan(cfg, fs, tasks)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Probed || plan.Policy != parse.SingleByte {
		t.Errorf("explicit policy not honored: probed=%v policy=%s", plan.Probed, plan.Policy)
	}
	if plan.Strategy != reduce.StrategyHighway {
		t.Errorf("Strategy = %s, want highway", plan.Strategy)
	}
	if plan.Workers != 2 {
		t.Errorf("Workers = %d, want 2 (capped by file count)", plan.Workers)
	}
	if plan.Files != 2 || plan.TotalBytes != 7 {
		t.Errorf("Files=%d TotalBytes=%d", plan.Files, plan.TotalBytes)
	}

	opts := plan.EngineOptions()
	if opts.BatchSize != 64 || opts.Workers != 2 || opts.Source == nil {
		t.Errorf("EngineOptions = %+v", opts)
	}
}

func TestBuildPlan_SourceSelection(t *testing.T) {
	fs, tasks := memCorpus(t, map[string]string{"a.txt": "1\n"})
	plan, err := BuildPlan(defaultCfg(), fs, tasks)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := plan.Source.(ingest.FsSource); !ok || plan.SourceLabel() != "buffered read" {
		t.Errorf("in-memory fs should use buffered source, got %T (%s)", plan.Source, plan.SourceLabel())
	}

	cfg := defaultCfg()
	plan, err = BuildPlan(cfg, afero.NewOsFs(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Source.Mapped() != ingest.MmapSupported() {
		t.Errorf("OS fs with mmap on: Mapped() = %v, want %v", plan.Source.Mapped(), ingest.MmapSupported())
	}
	if plan.Workers != 0 {
		t.Errorf("no tasks should plan zero workers, got %d", plan.Workers)
	}
}

func TestBuildPlan_BadReducer(t *testing.T) {
	cfg := defaultCfg()
	cfg.Reducer = "gpu"
	if _, err := BuildPlan(cfg, afero.NewMemMapFs(), nil); err == nil {
		t.Error("expected error for unknown reducer")
	}
}
