package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepin-autotest/funnylog2/pkg/config"
)

func TestParse_Defaults(t *testing.T) {
	os.Unsetenv("TRACE_CLASS_NAME_STARTSWITH")
	os.Unsetenv("TRACE_LOG_LEVEL")
	os.Unsetenv("TRACE_LOG_DIR")
	os.Unsetenv("TRACE_SYS_ARCH")
	os.Unsetenv("TRACE_RULES_FILE")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Empty(t, cfg.ClassNameStartsWith)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ".", cfg.LogDir)
	assert.NotEmpty(t, cfg.SysArch, "SysArch should default to runtime.GOARCH")
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("TRACE_CLASS_NAME_STARTSWITH", "Dde,Base")
	t.Setenv("TRACE_CLASS_NAME_ENDSWITH", "Widget")
	t.Setenv("TRACE_CLASS_NAME_CONTAIN", "Util,Helper")
	t.Setenv("TRACE_LOG_LEVEL", "info")
	t.Setenv("TRACE_LOG_DIR", "/tmp/trace")
	t.Setenv("TRACE_SYS_ARCH", "x86")
	t.Setenv("TRACE_HOST_IP", "10.8.11.52")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"Dde", "Base"}, cfg.ClassNameStartsWith)
	assert.Equal(t, []string{"Widget"}, cfg.ClassNameEndsWith)
	assert.Equal(t, []string{"Util", "Helper"}, cfg.ClassNameContain)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/tmp/trace", cfg.LogDir)
	assert.Equal(t, "x86", cfg.SysArch)
	assert.Equal(t, "10.8.11.52", cfg.HostIP)
}

func TestParse_RulesFile(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	content := []byte("class_name_startswith: [Dde]\nclass_name_endswith: [Widget]\nclass_name_contain: [Util]\n")
	require.NoError(t, os.WriteFile(rules, content, 0o644))

	t.Setenv("TRACE_CLASS_NAME_STARTSWITH", "Base")
	t.Setenv("TRACE_RULES_FILE", rules)

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, []string{"Base", "Dde"}, cfg.ClassNameStartsWith)
	assert.Equal(t, []string{"Widget"}, cfg.ClassNameEndsWith)
	assert.Equal(t, []string{"Util"}, cfg.ClassNameContain)
}

func TestParse_RulesFileMissing(t *testing.T) {
	t.Setenv("TRACE_RULES_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.Parse()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrReadingRules)
}

func TestParse_RulesFileInvalid(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("::: not yaml {"), 0o644))

	t.Setenv("TRACE_RULES_FILE", rules)

	_, err := config.Parse()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingRules)
}

func TestConfig_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "INFO", slog.LevelInfo},
		{"padded", "  error ", slog.LevelError},
		{"unknown falls back to debug", "verbose", slog.LevelDebug},
		{"empty falls back to debug", "", slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Config{LogLevel: tt.value}
			assert.Equal(t, tt.want, cfg.Level())
		})
	}
}
