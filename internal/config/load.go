package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (e.g. MINMAX_WORKERS=8).
const EnvPrefix = "MINMAX"

// setting binds one viper key to a Config field. flag names the CLI flag
// that wins when the user sets it explicitly.
type setting struct {
	key   string
	flag  string
	apply func(v *viper.Viper, key string, cfg *Config) error
}

var settings = []setting{
	{"include", "include", func(v *viper.Viper, k string, c *Config) error { c.Include = v.GetString(k); return nil }},
	{"recursive", "recursive", func(v *viper.Viper, k string, c *Config) error { c.Recursive = v.GetBool(k); return nil }},
	{"workers", "workers", func(v *viper.Viper, k string, c *Config) error { c.Workers = v.GetInt(k); return nil }},
	{"reducer", "reducer", func(v *viper.Viper, k string, c *Config) error {
		return (&reducerValue{&c.Reducer}).Set(v.GetString(k))
	}},
	{"policy", "policy", func(v *viper.Viper, k string, c *Config) error {
		return (&policyValue{&c.Policy}).Set(v.GetString(k))
	}},
	{"batch-size", "batch-size", func(v *viper.Viper, k string, c *Config) error { c.BatchSize = v.GetInt(k); return nil }},
	{"mmap", "no-mmap", func(v *viper.Viper, k string, c *Config) error { c.Mmap = v.GetBool(k); return nil }},
	{"progress", "no-progress", func(v *viper.Viper, k string, c *Config) error { c.Progress = v.GetBool(k); return nil }},
	{"color", "", func(v *viper.Viper, k string, c *Config) error {
		return (&colorValue{&c.ColorMode}).Set(v.GetString(k))
	}},
	{"verbose", "verbose", func(v *viper.Viper, k string, c *Config) error { c.Verbose = v.GetBool(k); return nil }},
	{"log", "log", func(v *viper.Viper, k string, c *Config) error { c.LogFile = v.GetString(k); return nil }},
	{"gen.files", "files", func(v *viper.Viper, k string, c *Config) error { c.GenFiles = v.GetInt(k); return nil }},
	{"gen.per-file", "per-file", func(v *viper.Viper, k string, c *Config) error { c.GenPerFile = v.GetInt(k); return nil }},
	{"gen.seed", "seed", func(v *viper.Viper, k string, c *Config) error { c.GenSeed = v.GetUint64(k); return nil }},
	{"gen.workers", "gen-workers", func(v *viper.Viper, k string, c *Config) error { c.GenWorkers = v.GetInt(k); return nil }},
}

// NewViper returns a viper instance reading MINMAX_* environment variables.
// Dots and dashes in keys map to underscores (gen.per-file -> MINMAX_GEN_PER_FILE).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load layers the config file (cfg.ConfigFile, if set) and environment over
// cfg. Values for flags the user set explicitly on fs are left alone, so the
// precedence is defaults < file < env < flags. fs may be nil.
func Load(v *viper.Viper, fs *pflag.FlagSet, cfg *Config) error {
	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("config file %s not found", cfg.ConfigFile)
			}
			return fmt.Errorf("read config %s: %w", cfg.ConfigFile, err)
		}
	}

	for _, s := range settings {
		if fs != nil && flagChanged(fs, s.flag) {
			continue
		}
		if s.key == "color" && fs != nil && (flagChanged(fs, "color") || flagChanged(fs, "no-color")) {
			continue
		}
		if !v.IsSet(s.key) {
			continue
		}
		if err := s.apply(v, s.key, cfg); err != nil {
			return fmt.Errorf("%s: %w", s.key, err)
		}
	}
	return nil
}

func flagChanged(fs *pflag.FlagSet, name string) bool {
	if name == "" {
		return false
	}
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
