package log

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"log/slog"
	"strings"
)

// slogLevelCritical is the slog level at and above which records map to CRITICAL.
const slogLevelCritical = slog.LevelError + 4

// Configure installs a new process-wide logger rendering to out at minLevel
// and routes the ambient channels through it: the standard library log
// package (at WARNING) and the slog default handler. It must run before any
// argument parsing so that every later diagnostic is observed.
func Configure(out io.Writer, minLevel Level, opts ...Option) *Logger {
	l := New(out, minLevel, opts...)
	setDefault(l)

	// slog.SetDefault redirects the stdlib log package to slog at INFO,
	// so the stdlib redirect has to come second.
	slog.SetDefault(slog.New(NewSlogHandler(l)))

	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(l.Writer(LevelWarning))

	return l
}

// SlogHandler adapts slog records into the diagnostic sink.
type SlogHandler struct {
	logger *Logger
	prefix string // pre-rendered attrs from WithAttrs
	group  string
}

// NewSlogHandler returns a slog.Handler that emits through l.
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled always reports true: records below the render level still count
// towards the Monitor and the file mirror.
func (h *SlogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})

	h.logger.emit(FromSlogLevel(r.Level), b.String(), true)
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		writeAttr(&b, h.group, a)
	}
	next := *h
	next.prefix = b.String()
	return &next
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Resolve())
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.group == "" {
		next.group = name
	} else {
		next.group = next.group + "." + name
	}
	return &next
}

// FromSlogLevel maps a slog level onto the diagnostic levels.
func FromSlogLevel(level slog.Level) Level {
	switch {
	case level < slog.LevelInfo:
		return LevelDebug
	case level < slog.LevelWarn:
		return LevelInfo
	case level < slog.LevelError:
		return LevelWarning
	case level < slogLevelCritical:
		return LevelError
	default:
		return LevelCritical
	}
}

var _ slog.Handler = (*SlogHandler)(nil)
