// Package step defines the optional step-reporting capability used by the
// call tracer: a Reporter opens a named, parameterized Scope around each
// traced call, and the Scope is closed on every exit path.
//
// The capability is injected explicitly via SetDefault rather than detected
// at load time. When no backend is installed the no-op reporter is used and
// step reporting is silently disabled.
//
// Three implementations ship with the package:
//
//   - NoopReporter: the default, discards everything.
//   - LogReporter: emits uuid-correlated start/finish log records.
//   - Recorder: captures steps in memory for tests.
//
// # Usage
//
//	import "github.com/deepin-autotest/funnylog2/pkg/step"
//
//	func init() {
//	    step.SetDefault(step.LogReporter{})
//	}
package step
