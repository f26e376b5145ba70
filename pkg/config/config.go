package config

import (
	"errors"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the process-wide tracing and logging configuration.
// All fields are read-only after loading.
type Config struct {
	// Class-name matching rules for the instrumentor. A type is instrumented
	// when its name starts with, ends with, or contains any of the configured
	// strings (logical OR across the three lists).
	ClassNameStartsWith []string `env:"TRACE_CLASS_NAME_STARTSWITH" envSeparator:","`
	ClassNameEndsWith   []string `env:"TRACE_CLASS_NAME_ENDSWITH" envSeparator:","`
	ClassNameContain    []string `env:"TRACE_CLASS_NAME_CONTAIN" envSeparator:","`

	// LogLevel is the minimum console severity: debug, info, warn or error.
	LogLevel string `env:"TRACE_LOG_LEVEL" envDefault:"debug"`

	// LogDir is the directory under which the "logs" subdirectory with the
	// daily debug and error files is created.
	LogDir string `env:"TRACE_LOG_DIR" envDefault:"."`

	// HostIP is used to derive the short host suffix in the log line label.
	HostIP string `env:"TRACE_HOST_IP"`

	// SysArch labels every log line. Defaults to runtime.GOARCH.
	SysArch string `env:"TRACE_SYS_ARCH"`

	// RulesFile optionally points to a YAML file with additional class-name
	// matching rules merged into the three lists above.
	RulesFile string `env:"TRACE_RULES_FILE"`
}

// rulesFile mirrors the YAML rules file layout.
type rulesFile struct {
	StartsWith []string `yaml:"class_name_startswith"`
	EndsWith   []string `yaml:"class_name_endswith"`
	Contain    []string `yaml:"class_name_contain"`
}

var (
	loadOnce   sync.Once
	defaultEnv sync.Once
	cached     Config
	cachedErr  error
)

// Load returns the process-wide configuration. The environment is parsed only
// once; subsequent calls return the cached value. A .env file is loaded on
// first use when present.
func Load() (Config, error) {
	loadOnce.Do(func() {
		cached, cachedErr = Parse()
	})
	return cached, cachedErr
}

// Parse reads the configuration from the environment without caching.
// Useful for tests that manipulate environment variables.
func Parse() (Config, error) {
	defaultEnv.Do(func() {
		// The .env file might not exist and that's ok.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if cfg.SysArch == "" {
		cfg.SysArch = runtime.GOARCH
	}
	if cfg.RulesFile != "" {
		if err := cfg.mergeRules(cfg.RulesFile); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// mergeRules appends the class-name rules from a YAML file to the lists
// already populated from the environment.
func (c *Config) mergeRules(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingRules, err)
	}
	var rules rulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return errors.Join(ErrParsingRules, err)
	}
	c.ClassNameStartsWith = append(c.ClassNameStartsWith, rules.StartsWith...)
	c.ClassNameEndsWith = append(c.ClassNameEndsWith, rules.EndsWith...)
	c.ClassNameContain = append(c.ClassNameContain, rules.Contain...)
	return nil
}

// Level maps the configured log level string to a slog.Level.
// Unknown values fall back to debug rather than failing.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
