package ui

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

type pagerCall struct {
	name    string
	args    []string
	content string
}

// ttyWriter returns a Writer on a real file that reports as a terminal.
func ttyWriter(t *testing.T, opts ...WriterOption) (*Writer, *pagerCall, *os.File) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	call := &pagerCall{}
	w := NewWriterTo(f, append([]WriterOption{WithEnvGetter(func(string) string { return "" })}, opts...)...)
	w.isTerminal = func(*os.File) bool { return true }
	w.run = func(name string, args []string, content string, _ io.Writer) error {
		*call = pagerCall{name: name, args: args, content: content}
		return nil
	}
	return w, call, f
}

func fileContents(t *testing.T, f *os.File) string {
	t.Helper()
	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return string(data)
}

func TestPager_NonFilePrintsDirectly(t *testing.T) {
	var buf bytes.Buffer
	NewWriterTo(&buf, WithPagerOverride("less")).Pager("hello\n")
	require.Equal(t, "hello\n", buf.String())
}

func TestPager_NotTerminalPrintsDirectly(t *testing.T) {
	w, call, f := ttyWriter(t)
	w.isTerminal = func(*os.File) bool { return false }

	w.Pager("plain\n")
	require.Empty(t, call.name)
	require.Equal(t, "plain\n", fileContents(t, f))
}

func TestPager_Disabled(t *testing.T) {
	w, call, f := ttyWriter(t, WithPagerDisabled())
	w.Pager("text")
	require.Empty(t, call.name)
	require.Equal(t, "text", fileContents(t, f))
}

func TestPager_DefaultLess(t *testing.T) {
	w, call, _ := ttyWriter(t)
	w.Pager("text")
	require.Equal(t, pagerCall{name: "less", args: []string{"-FRSX"}, content: "text"}, *call)
}

func TestPager_Precedence(t *testing.T) {
	config := WithConfigGetter(func(key string) (string, bool) {
		require.Equal(t, "pager", key)
		return "more -d", true
	})
	env := WithEnvGetter(func(string) string { return "most" })

	w, call, _ := ttyWriter(t, config, env, WithPagerOverride("bat --plain"))
	w.Pager("x")
	require.Equal(t, "bat", call.name)
	require.Equal(t, []string{"--plain"}, call.args)

	w, call, _ = ttyWriter(t, config, env)
	w.Pager("x")
	require.Equal(t, "more", call.name)
	require.Equal(t, []string{"-d"}, call.args)

	w, call, _ = ttyWriter(t, env)
	w.Pager("x")
	require.Equal(t, "most", call.name)
}

func TestPager_CatBypasses(t *testing.T) {
	w, call, f := ttyWriter(t, WithPagerOverride("cat"))
	w.Pager("direct")
	require.Empty(t, call.name)
	require.Equal(t, "direct", fileContents(t, f))
}

func TestPager_FallsBackOnError(t *testing.T) {
	w, _, f := ttyWriter(t)
	w.run = func(string, []string, string, io.Writer) error { return errors.New("not found") }

	w.Pager("fallback")
	require.Equal(t, "fallback", fileContents(t, f))
}
