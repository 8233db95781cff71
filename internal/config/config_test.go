package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/corpus", "/data/corpus"},
		{"single trailing slash", "/data/corpus/", "/data/corpus"},
		{"multiple trailing slashes", "/data/corpus///", "/data/corpus"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_Reducer(t *testing.T) {
	tests := []struct {
		name    string
		mode    ReducerMode
		wantErr bool
	}{
		{"scalar is valid", ReducerScalar, false},
		{"lanes is valid", ReducerLanes, false},
		{"highway is valid", ReducerHighway, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "avx512", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = ModeCheck // skip path requirement
			cfg.Reducer = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Policy(t *testing.T) {
	tests := []struct {
		name    string
		mode    PolicyMode
		wantErr bool
	}{
		{"auto is valid", PolicyAuto, false},
		{"permissive is valid", PolicyPermissive, false},
		{"single-byte is valid", PolicySingleByte, false},
		{"unknown is invalid", "strict", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = ModeCheck
			cfg.Policy = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, true},
		{"bad color", func(c *Config) { c.ColorMode = "rainbow" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputDir = "/data"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ModePaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); !errors.Is(err, ErrNoInputDir) {
		t.Errorf("scan without dir: err = %v, want ErrNoInputDir", err)
	}

	cfg.Mode = ModeGen
	if err := cfg.Validate(); !errors.Is(err, ErrNoOutputDir) {
		t.Errorf("gen without dir: err = %v, want ErrNoOutputDir", err)
	}
	cfg.InputDir = "/tmp/out"
	cfg.GenFiles = 0
	if err := cfg.Validate(); err == nil {
		t.Error("gen with zero files should fail")
	}

	cfg = DefaultConfig()
	cfg.Mode = ModeCheck
	if err := cfg.Validate(); err != nil {
		t.Errorf("check needs no dir: %v", err)
	}
}

func newScanFlags(cfg *Config, n *NegatedFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("scan", pflag.ContinueOnError)
	DefineGlobalFlags(fs, cfg, n)
	DefineScanFlags(fs, cfg, n)
	DefineGenFlags(fs, cfg)
	return fs
}

func TestFlags_ParseAndNegate(t *testing.T) {
	cfg := DefaultConfig()
	var n NegatedFlags
	fs := newScanFlags(&cfg, &n)
	args := []string{"-w", "3", "--reducer", "SIMD", "--policy", "single", "--no-mmap", "--no-progress", "--no-color", "-r", "-i", "*.txt"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ApplyNegatedFlags(&cfg, &n)

	want := DefaultConfig()
	want.Workers = 3
	want.Reducer = ReducerHighway
	want.Policy = PolicySingleByte
	want.Mmap = false
	want.Progress = false
	want.ColorMode = ColorNever
	want.Recursive = true
	want.Include = "*.txt"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestFlags_RejectUnknownEnum(t *testing.T) {
	cfg := DefaultConfig()
	var n NegatedFlags
	fs := newScanFlags(&cfg, &n)
	fs.SetOutput(discard{})
	if err := fs.Parse([]string{"--reducer", "gpu"}); err == nil {
		t.Error("expected error for unknown reducer")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minmax.yaml")
	body := "workers: 2\nbatch-size: 64\nreducer: scalar\nmmap: false\ngen:\n  per-file: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MINMAX_BATCH_SIZE", "128")
	t.Setenv("MINMAX_POLICY", "permissive")

	cfg := DefaultConfig()
	var n NegatedFlags
	fs := newScanFlags(&cfg, &n)
	if err := fs.Parse([]string{"--config", path, "--reducer", "highway"}); err != nil {
		t.Fatal(err)
	}
	ApplyNegatedFlags(&cfg, &n)
	if err := Load(NewViper(), fs, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 from file", cfg.Workers)
	}
	if cfg.BatchSize != 128 {
		t.Errorf("BatchSize = %d, want 128 from env", cfg.BatchSize)
	}
	if cfg.Reducer != ReducerHighway {
		t.Errorf("Reducer = %q, want flag value highway", cfg.Reducer)
	}
	if cfg.Policy != PolicyPermissive {
		t.Errorf("Policy = %q, want permissive from env", cfg.Policy)
	}
	if cfg.Mmap {
		t.Error("Mmap should be false from file")
	}
	if cfg.GenPerFile != 10 {
		t.Errorf("GenPerFile = %d, want 10 from nested gen key", cfg.GenPerFile)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfigFile = filepath.Join(t.TempDir(), "absent.yaml")
	if err := Load(NewViper(), nil, &cfg); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_InvalidEnumFromEnv(t *testing.T) {
	t.Setenv("MINMAX_REDUCER", "quantum")
	cfg := DefaultConfig()
	if err := Load(NewViper(), nil, &cfg); err == nil {
		t.Error("expected error for invalid reducer in environment")
	}
}
