// Package tracelog provides the process-wide logging facade used by the call
// tracer and by instrumented code: Info, Debug, Error, Warning and Exception
// entry points with caller-aware message prefixing, colorized console output
// and dual daily log files.
//
// # Sinks
//
// The sink configuration is constructed exactly once per process, either
// explicitly via Init or lazily on the first log call. It fans every record
// out to three destinations:
//
//   - the console, colorized when the stream is a terminal, filtered by the
//     configured minimum level;
//   - <dir>/logs/<date>_debug.log with everything at debug and above;
//   - <dir>/logs/<date>_error.log with errors only.
//
// Every line is rendered as
//
//	<arch>[-<ip-suffix>]: <MM/DD HH:MM:SS> | <LEVEL> | <message>
//
// # Caller prefixing and test promotion
//
// Info, Debug and Error prepend "[name]: " with the immediate caller's bare
// function name, so call sites do not have to repeat themselves. Debug
// additionally inspects the caller of its caller: when that function is named
// like a test, the record is promoted to informational severity, making
// low-level calls invoked directly from tests visible without touching the
// call sites. Frame-inspection failures are swallowed and the message is
// emitted as requested.
//
// # Usage
//
//	import "github.com/deepin-autotest/funnylog2/pkg/tracelog"
//
//	func OpenSettings() {
//	    tracelog.Info("opening the settings window")
//	    // arch: 06/15 10:30:01 | INFO  | [OpenSettings]: opening the settings window
//	}
package tracelog
