package tracelog

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/deepin-autotest/funnylog2/pkg/config"
	"github.com/deepin-autotest/funnylog2/pkg/singleton"
)

var ipSuffixRe = regexp.MustCompile(`\d+\.\d+\.\d+\.(\d+)`)

// SinkOption configures sink construction.
type SinkOption func(*sinkConfig)

// WithConsoleWriter redirects console output, ignoring nil writers for safety.
func WithConsoleWriter(w io.Writer) SinkOption {
	return func(c *sinkConfig) {
		if w != nil {
			c.console = w
		}
	}
}

// WithLevel overrides the minimum console level from the configuration.
func WithLevel(l slog.Level) SinkOption {
	return func(c *sinkConfig) {
		c.level = &l
	}
}

// WithColor forces console colorization on or off instead of autodetecting
// terminal support.
func WithColor(enabled bool) SinkOption {
	return func(c *sinkConfig) {
		c.color = &enabled
	}
}

// WithoutFiles builds a console-only sink. Intended for tests and diagnostic
// tooling that must not touch the filesystem.
func WithoutFiles() SinkOption {
	return func(c *sinkConfig) {
		c.noFiles = true
	}
}

type sinkConfig struct {
	console io.Writer
	level   *slog.Level
	color   *bool
	noFiles bool
}

// Sink holds the constructed output destinations: a colorized console stream
// and two daily log files, one with everything at debug and above, one with
// errors only.
type Sink struct {
	handler   slog.Handler
	DebugPath string
	ErrorPath string
}

// Handler returns the combined slog handler fanning out to all destinations.
func (s *Sink) Handler() slog.Handler {
	return s.handler
}

// NewSink builds the output destinations once from the given configuration.
// Creating the log directory or files is the only fatal failure mode.
func NewSink(cfg config.Config, opts ...SinkOption) (*Sink, error) {
	sc := sinkConfig{console: os.Stderr}
	for _, opt := range opts {
		opt(&sc)
	}

	level := cfg.Level()
	if sc.level != nil {
		level = *sc.level
	}

	label := sinkLabel(cfg.SysArch, cfg.HostIP)

	colored := consoleSupportsColor(sc.console)
	if sc.color != nil {
		colored = *sc.color
	}
	console := newLineHandler(sc.console, level, label, colored)

	if sc.noFiles {
		return &Sink{handler: console}, nil
	}

	dir := filepath.Join(cfg.LogDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrCreatingLogDir, err)
	}

	date := time.Now().Format("2006-01-02")
	debugPath := filepath.Join(dir, date+"_debug.log")
	errorPath := filepath.Join(dir, date+"_error.log")

	debugFile := newLineHandler(newFileWriter(debugPath), slog.LevelDebug, label, false)
	errorFile := newLineHandler(newFileWriter(errorPath), slog.LevelError, label, false)

	return &Sink{
		handler:   slogmulti.Fanout(console, debugFile, errorFile),
		DebugPath: debugPath,
		ErrorPath: errorPath,
	}, nil
}

// sinks deduplicates sink construction by configuration, so every consumer of
// the same settings shares one set of destinations.
var sinks = singleton.New(func(args ...any) *Sink {
	cfg, ok := args[0].(config.Config)
	if !ok {
		return nil
	}
	s, err := NewSink(cfg)
	if err != nil {
		return nil
	}
	return s
})

// sharedSink returns the sink cached for cfg, constructing it when absent.
// Construction failures are not cached; the retry surfaces the error.
func sharedSink(cfg config.Config) (*Sink, error) {
	if s := sinks.Get(cfg); s != nil {
		return s, nil
	}
	return NewSink(cfg)
}

// newFileWriter wraps a log file with size-based rotation so a long-lived
// process cannot fill the disk within a single day.
func newFileWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
	}
}

// sinkLabel builds the per-line label: the architecture name plus the last
// octet of the host IP when one is configured.
func sinkLabel(arch, hostIP string) string {
	if arch == "" {
		arch = runtime.GOARCH
	}
	if m := ipSuffixRe.FindStringSubmatch(hostIP); m != nil {
		return arch + "-" + m[1]
	}
	return arch
}

func consoleSupportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) ||
		isatty.IsCygwinTerminal(f.Fd()) ||
		strings.Contains(os.Getenv("TERM"), "color")
}
