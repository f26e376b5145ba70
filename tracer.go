package funnylog2

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"strings"

	"github.com/deepin-autotest/funnylog2/pkg/step"
	"github.com/deepin-autotest/funnylog2/pkg/tracelog"
)

// Option configures the call tracer.
type Option func(*options)

// WithLogger redirects trace records to the given logger instead of the
// process-wide facade. Nil loggers are ignored for safety.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReporter sets the step-reporting backend for wrapped calls, overriding
// the process-wide default.
func WithReporter(r step.Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithPolicy overrides the configured class-name matching policy of the
// instrumentor.
func WithPolicy(p MatchPolicy) Option {
	return func(o *options) {
		o.policy = &p
	}
}

type options struct {
	logger   *slog.Logger
	reporter step.Reporter
	policy   *MatchPolicy
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) emit(msg string) {
	if o.logger != nil {
		o.logger.Info(msg)
		return
	}
	tracelog.Emit(slog.LevelInfo, msg)
}

func (o *options) stepReporter() step.Reporter {
	if o.reporter != nil {
		return o.reporter
	}
	return step.Default()
}

// Wrap returns a callable of the same dynamic type that traces every
// invocation of fn: it renders the title from the descriptor and the call
// arguments, emits one informational record labeled with the callable's name,
// opens a reporting step around the call, and finally invokes fn with the
// original arguments, returning its results and propagating its panics
// unchanged. Tracing never alters the outcome of the call.
//
// Values that are not functions and callables whose name carries the
// internal-use marker (a leading underscore) are returned as-is.
func Wrap(fn any, d *Descriptor, opts ...Option) any {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return fn
	}
	if d == nil {
		d = &Descriptor{Name: funcName(v)}
	}
	if strings.HasPrefix(d.Name, "_") {
		return fn
	}

	o := newOptions(opts)
	call := v.Call
	if v.Type().IsVariadic() {
		call = v.CallSlice
	}

	wrapped := reflect.MakeFunc(v.Type(), func(args []reflect.Value) []reflect.Value {
		if finish := traceCall(o, d, args); finish != nil {
			defer finish()
		}
		return call(args)
	})
	return wrapped.Interface()
}

// WrapMethod wraps the named bound method of recv. The descriptor may be nil,
// in which case the title falls back to the method's bare name.
func WrapMethod(recv any, name string, d *Descriptor, opts ...Option) (any, error) {
	rv := reflect.ValueOf(recv)
	if !rv.IsValid() {
		return nil, ErrInvalidReceiver
	}
	m := rv.MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	if d == nil {
		d = &Descriptor{Name: name, Owner: baseTypeName(rv.Type())}
	}
	return Wrap(m.Interface(), d, opts...), nil
}

// traceCall performs the pre-call work: classification, receiver stripping,
// title rendering, log emission and step opening. It returns the step closer,
// or nil when no step was opened. Any failure inside tracing is recovered
// here so the wrapped call always proceeds.
func traceCall(o *options, d *Descriptor, args []reflect.Value) (finish func()) {
	defer func() {
		if r := recover(); r != nil {
			tracelog.Warning(fmt.Sprintf("tracing %s failed: %v", d.Name, r))
			finish = nil
		}
	}()

	kind := Classify(d)
	vals := make([]any, 0, len(args))
	for _, a := range args {
		vals = append(vals, a.Interface())
	}
	if kind.hasReceiver() && len(vals) > 0 && receiverPresent(d, vals) {
		vals = vals[1:]
	}

	bindings := BindParams(d, vals, nil)
	title := RenderTitle(d, bindings)
	o.emit(fmt.Sprintf("[%s]: %s", d.Name, title))

	// Constructors are logged but never reported as steps.
	if isConstructor(d.Name) {
		return nil
	}
	scope := o.stepReporter().StartStep(title, step.Params(bindings))
	if scope == nil {
		return nil
	}
	return scope.End
}

// receiverPresent reports whether the first call-site argument is the
// receiver. When the descriptor names its owner the argument's type decides.
// Otherwise the callable's arity is matched against the declared parameter
// list, where trailing defaulted parameters may be absent from the signature.
// Bound methods carry the receiver implicitly and nothing is stripped; the
// receiver is never logged.
func receiverPresent(d *Descriptor, vals []any) bool {
	if d.Owner != "" {
		t := reflect.TypeOf(vals[0])
		return t != nil && baseTypeName(t) == d.Owner
	}
	declared := len(d.Params)
	optional := trailingDefaults(d.Params)
	return len(vals) >= declared-optional && len(vals) <= declared
}

func trailingDefaults(params []Param) int {
	n := 0
	for i := len(params) - 1; i >= 0 && params[i].HasDefault; i-- {
		n++
	}
	return n
}

func isConstructor(name string) bool {
	return name == "init" || strings.HasPrefix(name, "New")
}

// funcName resolves the bare name of a function value for callables wrapped
// without a descriptor.
func funcName(v reflect.Value) string {
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return "func"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	// Method values are reported with a -fm suffix.
	return strings.TrimSuffix(name, "-fm")
}

func baseTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
