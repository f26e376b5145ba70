package tracelog

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/deepin-autotest/funnylog2/pkg/config"
)

var (
	mu       sync.RWMutex
	logger   *slog.Logger
	initOnce sync.Once
)

// Init constructs the process-wide sink from configuration and installs it.
// It may be called explicitly at startup to surface sink construction errors;
// otherwise the first log call initializes the sink lazily.
func Init(opts ...SinkOption) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	var sink *Sink
	if len(opts) == 0 {
		sink, err = sharedSink(cfg)
	} else {
		sink, err = NewSink(cfg, opts...)
	}
	if err != nil {
		return err
	}
	SetLogger(slog.New(sink.Handler()))
	return nil
}

// SetLogger replaces the process-wide logger. Useful for tests and for
// embedding the facade into an existing logging setup.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// active returns the installed logger, lazily initializing the sink exactly
// once. A sink construction failure degrades to a console-only sink: a log
// call must never take the process down.
func active() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	initOnce.Do(func() {
		if err := Init(); err != nil {
			fallback := newLineHandler(os.Stderr, slog.LevelDebug, sinkLabel("", ""), false)
			SetLogger(slog.New(fallback))
		}
	})

	mu.RLock()
	l = logger
	mu.RUnlock()
	if l == nil {
		l = slog.Default()
	}
	return l
}

// Info logs at informational severity, prefixed with the caller's name.
func Info(msg string) {
	active().Info(autoPrefix(1, msg))
}

// Debug logs at debug severity, prefixed with the caller's name. When the
// caller's own caller is a test function the record is promoted to
// informational severity, so low-level calls invoked directly from tests are
// visible by default.
func Debug(msg string) {
	l := active()
	msg = autoPrefix(1, msg)
	if isTestCaller(2) {
		l.Info(msg)
		return
	}
	l.Debug(msg)
}

// Error logs at error severity, prefixed with the caller's name.
func Error(msg string) {
	active().Error(autoPrefix(1, msg))
}

// Warning logs at warning severity.
func Warning(msg string) {
	active().Warn(msg)
}

// Exception logs at error severity with the current stack trace appended.
func Exception(msg string) {
	active().Error(msg + "\n" + string(debug.Stack()))
}

// Emit logs a message at the given level without any caller prefixing.
// The call tracer uses it to supply its own label.
func Emit(level slog.Level, msg string) {
	active().Log(context.Background(), level, msg)
}

// autoPrefix prepends "[name]: " with the bare function name of the frame
// skip levels above the facade entry point. On frame-inspection failure the
// message is returned unchanged.
func autoPrefix(skip int, msg string) string {
	name, ok := callerName(skip + 1)
	if !ok {
		return msg
	}
	return "[" + name + "]: " + msg
}

// isTestCaller reports whether the frame skip levels above the facade entry
// point is named like a test function. Insufficient call depth is not an
// error, it simply reports false.
func isTestCaller(skip int) bool {
	name, ok := callerName(skip + 1)
	if !ok {
		return false
	}
	return strings.HasPrefix(name, "Test") || strings.HasPrefix(name, "test_")
}

// callerName resolves the bare function name skip frames above the caller of
// callerName itself (skip 0 is that caller).
func callerName(skip int) (string, bool) {
	pcs := make([]uintptr, skip+8)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return "", false
	}
	frames := runtime.CallersFrames(pcs[:n])
	for i := 0; ; i++ {
		frame, more := frames.Next()
		if frame.Function == "" {
			return "", false
		}
		if i == skip {
			return shortFuncName(frame.Function), true
		}
		if !more {
			return "", false
		}
	}
}

// shortFuncName strips the package path and receiver from a fully qualified
// function name, e.g. "pkg/sub.(*T).Open" becomes "Open".
func shortFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	return full
}
