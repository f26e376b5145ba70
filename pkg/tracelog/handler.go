package tracelog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

const timeLayout = "01/02 15:04:05"

// msgPrefixRe splits the optional "[name]" label from the message body so the
// two parts can be colorized independently.
var msgPrefixRe = regexp.MustCompile(`^(\[[a-zA-Z_][a-zA-Z0-9_]*\]:?)?(.*)$`)

var (
	labelColor = color.New(color.FgRed, color.Bold)
	timeColor  = color.New(color.FgHiYellow)
	nameColor  = color.New(color.FgGreen, color.Bold)

	levelColors = map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgHiBlue, color.Bold),
		slog.LevelInfo:  color.New(color.FgHiWhite, color.Bold),
		slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	}
)

// lineHandler writes one human-readable line per record in the form
//
//	<label>: <MM/DD HH:MM:SS> | <LEVEL> | <message>
//
// optionally colorized for terminals. It enforces its own minimum level so
// each sink of a fan-out can filter independently.
type lineHandler struct {
	w       io.Writer
	min     slog.Level
	label   string
	colored bool
	attrs   []slog.Attr
	mu      *sync.Mutex
}

func newLineHandler(w io.Writer, min slog.Level, label string, colored bool) *lineHandler {
	return &lineHandler{
		w:       w,
		min:     min,
		label:   label,
		colored: colored,
		mu:      &sync.Mutex{},
	}
}

func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.min
}

func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Level < h.min {
		return nil
	}

	msg := r.Message
	var extra strings.Builder
	for _, a := range h.attrs {
		fmt.Fprintf(&extra, " %s=%v", a.Key, a.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&extra, " %s=%v", a.Key, a.Value.Any())
		return true
	})
	msg += extra.String()

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var line string
	if h.colored {
		line = fmt.Sprintf("%s: %s | %s | %s\n",
			labelColor.Sprint(h.label),
			timeColor.Sprint(ts.Format(timeLayout)),
			colorLevel(r.Level),
			colorMessage(r.Level, msg),
		)
	} else {
		line = fmt.Sprintf("%s: %s | %-5s | %s\n",
			h.label, ts.Format(timeLayout), levelName(r.Level), msg)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns the handler unchanged: the line format is flat and the
// facade never emits grouped attributes.
func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func colorLevel(l slog.Level) string {
	name := fmt.Sprintf("%-5s", levelName(l))
	if c, ok := levelColors[l]; ok {
		return c.Sprint(name)
	}
	return name
}

// colorMessage highlights a leading "[name]" label in green and renders the
// rest of the message in the level color.
func colorMessage(l slog.Level, msg string) string {
	c, ok := levelColors[l]
	if !ok {
		return msg
	}
	m := msgPrefixRe.FindStringSubmatch(msg)
	if m == nil || m[1] == "" {
		return c.Sprint(msg)
	}
	return nameColor.Sprint(m[1]) + c.Sprint(m[2])
}
