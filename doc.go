// Package funnylog2 provides automatic call tracing: selected members of a
// struct are wrapped so that every invocation emits one human-readable log
// line whose text comes from a title template authored next to the member,
// with the call-site argument values substituted in.
//
// # How it works
//
// A wrapped callable is described by a Descriptor: its name, owning type,
// ordered parameter list and documentation string. Descriptors are captured
// once, at instrumentation time, either from struct tags or explicitly; no
// per-call reflection over declarations takes place.
//
// The classifier derives the calling convention purely from the declared
// parameter list: no parameters means a static method, a leading "self" an
// instance method, a leading "cls" a class method, anything else a plain
// function. Receivers are stripped before templating and never appear in the
// rendered title.
//
// The title is the documentation text before the first :param/:return marker;
// each {{name}} placeholder is replaced by the value bound to that parameter
// for this call: explicit positional argument first, then keyword, then the
// declared default, then the empty string.
//
// # Instrumenting a struct
//
// Instrument wraps the exported func-valued fields of a struct whose type
// name matches the configured class-name rules:
//
//	type DdeControlCenter struct {
//	    Open func(page string) error `trace:"Open the {{page}} page of the control center" params:"self,page"`
//	    Close func() error           `trace:"Close the control center" params:"self"`
//	}
//
//	cc := &DdeControlCenter{Open: openPage, Close: closeAll}
//	funnylog2.Instrument(cc)
//
//	cc.Open("display")
//	// x86-52: 06/15 10:30:01 | INFO  | [Open]: Open the display page of the control center
//
// Applying Instrument to the same instance twice is a no-op: every wrapped
// member is marked, and the second pass leaves it untouched.
//
// Free functions and bound methods are wrapped directly with Wrap and
// WrapMethod. Tracing never changes a call's outcome: results and panics of
// the original callable propagate unchanged, and failures inside the tracing
// layer itself are logged and swallowed.
//
// # Step reporting
//
// When a step-reporting backend is installed (see pkg/step), every traced
// call is additionally reported as a named step carrying the rendered title
// and the resolved parameter bindings; the step is closed on every exit path.
// Constructors (New* and init) are logged but never reported as steps.
package funnylog2
