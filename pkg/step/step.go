package step

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Params carries the resolved parameter bindings of a traced call,
// keyed by declared parameter name.
type Params map[string]string

// Scope represents an open reporting step. End must be called on every exit
// path of the traced call, normal return or propagated panic alike.
type Scope interface {
	End()
}

// Reporter records a named, parameterized scope around an operation for later
// presentation, e.g. in a test report.
type Reporter interface {
	StartStep(title string, params Params) Scope
}

// NoopReporter discards every step. It is the default reporter, so the
// absence of a real reporting backend disables step reporting without error.
type NoopReporter struct{}

func (NoopReporter) StartStep(string, Params) Scope { return noopScope{} }

type noopScope struct{}

func (noopScope) End() {}

var (
	defaultMu       sync.RWMutex
	defaultReporter Reporter = NoopReporter{}
)

// Default returns the process-wide reporter.
func Default() Reporter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultReporter
}

// SetDefault installs the process-wide reporter. Call it once at startup to
// inject a real reporting backend; a nil reporter restores the no-op default.
func SetDefault(r Reporter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if r == nil {
		r = NoopReporter{}
	}
	defaultReporter = r
}

// LogReporter emits step boundaries as log records. Each step gets a unique
// id so its start and finish lines can be correlated.
type LogReporter struct {
	// Logger receives the step records. slog.Default() is used when nil.
	Logger *slog.Logger
}

func (r LogReporter) StartStep(title string, params Params) Scope {
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}
	id := uuid.NewString()
	args := []any{slog.String("step", id), slog.String("title", title)}
	for name, value := range params {
		args = append(args, slog.String(name, value))
	}
	log.Debug("step started", args...)
	return &logScope{log: log, id: id, title: title, started: time.Now()}
}

type logScope struct {
	log     *slog.Logger
	id      string
	title   string
	started time.Time
}

func (s *logScope) End() {
	s.log.Debug("step finished",
		slog.String("step", s.id),
		slog.String("title", s.title),
		slog.Duration("elapsed", time.Since(s.started)),
	)
}
