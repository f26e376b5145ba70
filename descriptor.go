package funnylog2

import (
	"reflect"
	"strings"
)

// Conventional first-parameter names marking a receiver.
const (
	receiverName      = "self"
	classReceiverName = "cls"
)

// Kind classifies how a callable expects to be invoked.
type Kind int

const (
	// KindFunction is a plain function: no receiver, nothing is stripped.
	KindFunction Kind = iota
	// KindInstanceMethod carries the receiving object as its first declared
	// parameter; the receiver is stripped before templating.
	KindInstanceMethod
	// KindStaticMethod has no declared parameters at all.
	KindStaticMethod
	// KindClassMethod carries the owning type as its first declared
	// parameter; like a receiver, it is never logged.
	KindClassMethod
)

func (k Kind) String() string {
	switch k {
	case KindInstanceMethod:
		return "instance method"
	case KindStaticMethod:
		return "static method"
	case KindClassMethod:
		return "class method"
	default:
		return "function"
	}
}

// hasReceiver reports whether the first declared parameter represents a
// receiver that must be excluded from templating.
func (k Kind) hasReceiver() bool {
	return k == KindInstanceMethod || k == KindClassMethod
}

// Param describes one declared parameter of a wrapped callable.
type Param struct {
	Name       string
	Default    string
	HasDefault bool
}

// Descriptor identifies a wrapped callable: its name, owning type, ordered
// parameter list and documentation string. Captured once at instrumentation
// time and immutable afterwards.
type Descriptor struct {
	Name   string
	Owner  string
	Doc    string
	Params []Param
}

// Classify determines the calling convention of a callable from its declared
// parameter list alone. A nil or unparseable descriptor degrades to a plain
// function so no receiver is ever stripped by mistake; classification itself
// never fails.
func Classify(d *Descriptor) Kind {
	if d == nil {
		return KindFunction
	}
	if len(d.Params) == 0 {
		return KindStaticMethod
	}
	switch d.Params[0].Name {
	case receiverName:
		return KindInstanceMethod
	case classReceiverName:
		return KindClassMethod
	}
	return KindFunction
}

// descriptorForField captures a Descriptor from a func-valued struct field.
// The documentation comes from the "trace" tag, the declared parameter list
// from the "params" tag.
func descriptorForField(owner string, f reflect.StructField) *Descriptor {
	return &Descriptor{
		Name:   f.Name,
		Owner:  owner,
		Doc:    f.Tag.Get("trace"),
		Params: ParseParams(f.Tag.Get("params")),
	}
}

// ParseParams parses a comma-separated declared parameter list such as
// "self,a,b=3". A "name=value" entry declares a default; whitespace around
// names and values is ignored and empty entries are dropped.
func ParseParams(tag string) []Param {
	if strings.TrimSpace(tag) == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	params := make([]Param, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, def, found := strings.Cut(part, "=")
		p := Param{Name: strings.TrimSpace(name)}
		if found {
			p.Default = strings.TrimSpace(def)
			p.HasDefault = true
		}
		if p.Name == "" {
			continue
		}
		params = append(params, p)
	}
	return params
}
