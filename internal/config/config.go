package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/skelly-dev/projscout/internal/builders"
	"github.com/skelly-dev/projscout/internal/readme"
	"github.com/spf13/viper"
)

const (
	appName   = "projscout"
	EnvPrefix = "PROJSCOUT"
)

// Config represents the complete projscout configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Exclude ExcludeConfig `mapstructure:"exclude"`
	Runner  RunnerConfig  `mapstructure:"runner"`
	Bazel   BazelConfig   `mapstructure:"bazel"`
	Readme  ReadmeConfig  `mapstructure:"readme"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Preview PreviewConfig `mapstructure:"preview"`
}

// LoggingConfig controls the zap logger
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// Development switches to the human-readable console encoder
	Development bool `mapstructure:"development"`
}

// ExcludeConfig lists directory prefixes never offered as candidates
type ExcludeConfig struct {
	Dirs []string `mapstructure:"dirs"`
}

// RunnerConfig controls external commands
type RunnerConfig struct {
	// Timeout bounds each external command (0 = no limit)
	Timeout time.Duration `mapstructure:"timeout"`
}

// BazelConfig controls the module name/version query
type BazelConfig struct {
	Shell string `mapstructure:"shell"`
	// Query is passed to Shell with -c and must print "<name> <version>"
	Query string `mapstructure:"query"`
}

type ReadmeConfig struct {
	MaxLines int `mapstructure:"max_lines"`
}

// ScanConfig controls the scan command
type ScanConfig struct {
	Depth       int `mapstructure:"depth"`
	Concurrency int `mapstructure:"concurrency"`
}

type PreviewConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
		},
		Exclude: ExcludeConfig{
			Dirs: []string{},
		},
		Runner: RunnerConfig{
			Timeout: 30 * time.Second,
		},
		Bazel: BazelConfig{
			Shell: builders.DefaultBazelShell,
			Query: builders.DefaultBazelQuery,
		},
		Readme: ReadmeConfig{
			MaxLines: readme.DefaultMaxLines,
		},
		Scan: ScanConfig{
			Depth:       1,
			Concurrency: 8,
		},
		Preview: PreviewConfig{
			CacheSize: 256,
		},
	}
}

// SetDefaults registers every default with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.development", defaults.Logging.Development)

	viper.SetDefault("exclude.dirs", defaults.Exclude.Dirs)

	viper.SetDefault("runner.timeout", defaults.Runner.Timeout)

	viper.SetDefault("bazel.shell", defaults.Bazel.Shell)
	viper.SetDefault("bazel.query", defaults.Bazel.Query)

	viper.SetDefault("readme.max_lines", defaults.Readme.MaxLines)

	viper.SetDefault("scan.depth", defaults.Scan.Depth)
	viper.SetDefault("scan.concurrency", defaults.Scan.Concurrency)

	viper.SetDefault("preview.cache_size", defaults.Preview.CacheSize)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Template renders cfg as a commented config.yaml.
func Template(cfg *Config) string {
	var b strings.Builder
	b.WriteString("# projscout configuration\n")
	b.WriteString("# Every key can be overridden with PROJSCOUT_<SECTION>_<KEY>.\n\n")

	fmt.Fprintf(&b, "logging:\n  level: %s\n  development: %t\n\n", cfg.Logging.Level, cfg.Logging.Development)

	b.WriteString("exclude:\n")
	if len(cfg.Exclude.Dirs) == 0 {
		b.WriteString("  dirs: []\n\n")
	} else {
		b.WriteString("  dirs:\n")
		for _, dir := range cfg.Exclude.Dirs {
			fmt.Fprintf(&b, "    - %s\n", strconv.Quote(dir))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "runner:\n  timeout: %s\n\n", cfg.Runner.Timeout)

	b.WriteString("bazel:\n")
	fmt.Fprintf(&b, "  shell: %s\n", strconv.Quote(cfg.Bazel.Shell))
	b.WriteString("  # must print \"<name> <version>\" on one line\n")
	fmt.Fprintf(&b, "  query: %s\n\n", strconv.Quote(cfg.Bazel.Query))

	fmt.Fprintf(&b, "readme:\n  max_lines: %d\n\n", cfg.Readme.MaxLines)
	fmt.Fprintf(&b, "scan:\n  depth: %d\n  concurrency: %d\n\n", cfg.Scan.Depth, cfg.Scan.Concurrency)
	fmt.Fprintf(&b, "preview:\n  cache_size: %d\n", cfg.Preview.CacheSize)
	return b.String()
}
