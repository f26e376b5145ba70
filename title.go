package funnylog2

import (
	"fmt"
	"regexp"
	"strings"
)

// titleEndRe marks where the human-authored title of a documentation string
// ends and the parameter/return annotations begin.
var titleEndRe = regexp.MustCompile(`:param|@param|:return|@return`)

// BindParams binds each declared parameter (excluding the receiver) to the
// value it received for this call: an explicit positional argument takes
// precedence, then an explicit keyword argument, then the declared default.
// A parameter with no value and no default binds to the empty string.
//
// The positional slice must already have the receiver stripped; the binding
// map is built fresh per invocation and never retained.
func BindParams(d *Descriptor, positional []any, keyword map[string]any) map[string]string {
	bindings := make(map[string]string)
	if d == nil {
		return bindings
	}
	idx := 0
	for _, p := range d.Params {
		if p.Name == receiverName || p.Name == classReceiverName {
			continue
		}
		value := ""
		if p.HasDefault {
			value = stripQuotes(p.Default)
		}
		if idx < len(positional) {
			value = represent(positional[idx])
		}
		if v, ok := keyword[p.Name]; ok {
			value = represent(v)
		}
		bindings[p.Name] = value
		idx++
	}
	return bindings
}

// RenderTitle produces the human-readable title of a call: the documentation
// text preceding the first annotation marker, with every line trimmed and
// joined, and each {{name}} placeholder replaced by its bound value. Without
// documentation the title is the callable's bare name. Missing bindings
// substitute the empty string; templating never fails.
func RenderTitle(d *Descriptor, bindings map[string]string) string {
	if d == nil {
		return ""
	}
	if d.Doc == "" {
		return d.Name
	}

	title := titleEndRe.Split(d.Doc, 2)[0]
	lines := strings.Split(title, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	title = strings.Join(lines, "")

	for name, value := range bindings {
		title = strings.ReplaceAll(title, "{{"+name+"}}", value)
	}
	return title
}

// represent renders a bound value as the text substituted into the title.
// Strings lose their surrounding quote characters, nil becomes empty, and
// everything else uses its default text representation.
func represent(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return stripQuotes(s)
	}
	return fmt.Sprint(v)
}

func stripQuotes(s string) string {
	return strings.Trim(s, `'"`)
}
