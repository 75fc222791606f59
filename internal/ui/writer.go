// Package ui holds terminal output helpers shared by handlers.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// DefaultPager is used when neither config nor $PAGER names one.
var DefaultPager = []string{"less", "-FRSX"}

// Writer prints long output through a pager when out is a terminal.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	pagerOverride string
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
	isTerminal    func(*os.File) bool
	run           func(name string, args []string, content string, out io.Writer) error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithPagerOverride sets a pager command that wins over config and $PAGER.
func WithPagerOverride(cmd string) WriterOption {
	return func(w *Writer) {
		w.pagerOverride = cmd
	}
}

// WithConfigGetter reads the "pager" key through fn.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter sets the environment lookup.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriterTo creates a Writer on out.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:        out,
		envGetter:  os.Getenv,
		isTerminal: func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) },
		run:        runPager,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Pager displays content, through a pager if out is a terminal.
func (w *Writer) Pager(content string) {
	if w.pagerDisabled {
		w.print(content)
		return
	}

	f, ok := w.out.(*os.File)
	if !ok || !w.isTerminal(f) {
		w.print(content)
		return
	}

	cmd := w.pagerCommand()
	if cmd == "cat" {
		w.print(content)
		return
	}

	var name string
	var args []string
	if cmd == "" {
		name, args = DefaultPager[0], DefaultPager[1:]
	} else {
		parts := strings.Fields(cmd)
		name, args = parts[0], parts[1:]
	}

	if err := w.run(name, args, content, w.out); err != nil {
		w.print(content)
	}
}

// pagerCommand resolves the pager: override, then config, then $PAGER.
func (w *Writer) pagerCommand() string {
	if cmd := strings.TrimSpace(w.pagerOverride); cmd != "" {
		return cmd
	}
	if w.configGetter != nil {
		if cmd, ok := w.configGetter("pager"); ok && strings.TrimSpace(cmd) != "" {
			return strings.TrimSpace(cmd)
		}
	}
	if w.envGetter != nil {
		return strings.TrimSpace(w.envGetter("PAGER"))
	}
	return ""
}

func (w *Writer) print(content string) {
	_, _ = fmt.Fprint(w.out, content)
}

func runPager(name string, args []string, content string, out io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
