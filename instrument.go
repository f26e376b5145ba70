package funnylog2

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/deepin-autotest/funnylog2/pkg/config"
	"github.com/deepin-autotest/funnylog2/pkg/tracelog"
)

// MatchPolicy decides which owning types get their members instrumented.
// A type name matches when it starts with any configured prefix, ends with
// any configured suffix, or contains any configured substring. An empty
// policy matches nothing.
type MatchPolicy struct {
	StartsWith []string
	EndsWith   []string
	Contains   []string
}

// Match applies the policy to a type name.
func (p MatchPolicy) Match(name string) bool {
	if name == "" {
		return false
	}
	for _, s := range p.StartsWith {
		if s != "" && strings.HasPrefix(name, s) {
			return true
		}
	}
	for _, s := range p.EndsWith {
		if s != "" && strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, s := range p.Contains {
		if s != "" && strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// PolicyFromConfig builds the matching policy from the three configured
// class-name rule lists.
func PolicyFromConfig(cfg config.Config) MatchPolicy {
	return MatchPolicy{
		StartsWith: cfg.ClassNameStartsWith,
		EndsWith:   cfg.ClassNameEndsWith,
		Contains:   cfg.ClassNameContain,
	}
}

var defaultPolicy struct {
	once sync.Once
	val  MatchPolicy
}

func loadDefaultPolicy() MatchPolicy {
	defaultPolicy.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			tracelog.Warning(fmt.Sprintf("instrument: configuration unavailable, matching nothing: %v", err))
			return
		}
		defaultPolicy.val = PolicyFromConfig(cfg)
	})
	return defaultPolicy.val
}

// marks records which members of which instance have already been wrapped, so
// repeated instrumentation of the same instance is a no-op. Entries are keyed
// by instance address and dropped by a finalizer once the instance dies, so
// the registry never extends an instance's lifetime.
var marks = struct {
	sync.Mutex
	m map[uintptr]map[string]bool
}{m: make(map[uintptr]map[string]bool)}

// releaseMarks discards the marks of a dead instance. Finalizers run before
// the instance's memory can be reused, so a fresh instance at the same
// address never observes a stale entry.
func releaseMarks(target any) {
	marks.Lock()
	defer marks.Unlock()
	delete(marks.m, reflect.ValueOf(target).Pointer())
}

// Instrument wraps the exported func-valued fields of the struct that target
// points to with the call tracer, honoring the class-name matching policy for
// each field's declaring type (embedded structs are instrumented against
// their own type name). Already-wrapped members are marked and skipped, so
// applying Instrument twice yields the same wrapped-member identity as
// applying it once.
//
// The policy comes from the process configuration unless WithPolicy is given.
// Targets that are not pointers to structs are returned unmodified.
func Instrument(target any, opts ...Option) any {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		tracelog.Warning(fmt.Sprintf("instrument: want a pointer to struct, got %T", target))
		return target
	}

	o := newOptions(opts)
	var policy MatchPolicy
	if o.policy != nil {
		policy = *o.policy
	} else {
		policy = loadDefaultPolicy()
	}

	key := rv.Pointer()
	marks.Lock()
	defer marks.Unlock()
	mark, ok := marks.m[key]
	if !ok {
		mark = make(map[string]bool)
		marks.m[key] = mark
		// The instance is only visible here as an interface value, so
		// weak.Make and runtime.AddCleanup cannot be used; SetFinalizer
		// accepts it as-is.
		runtime.SetFinalizer(target, releaseMarks)
	}

	instrumentStruct(rv.Elem(), policy, mark, opts)
	return target
}

func instrumentStruct(elem reflect.Value, policy MatchPolicy, mark map[string]bool, opts []Option) {
	t := elem.Type()
	owner := t.Name()
	matched := policy.Match(owner)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)

		// Embedded structs contribute their members under their own
		// declaring type name.
		if f.Anonymous {
			fv := elem.Field(i)
			switch {
			case f.Type.Kind() == reflect.Struct:
				instrumentStruct(fv, policy, mark, opts)
			case f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct && !fv.IsNil():
				instrumentStruct(fv.Elem(), policy, mark, opts)
			}
			continue
		}

		if !matched || !f.IsExported() || f.Type.Kind() != reflect.Func {
			continue
		}
		key := owner + "." + f.Name
		if mark[key] {
			continue
		}
		fv := elem.Field(i)
		if fv.IsNil() {
			continue
		}

		d := descriptorForField(owner, f)
		fv.Set(reflect.ValueOf(Wrap(fv.Interface(), d, opts...)))
		mark[key] = true
	}
}
