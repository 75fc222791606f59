package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLogger_RendersTwoLineBlocks(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelDebug)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")
	logger.Critical("critical message")

	want := "## DEBUG\ndebug message\n" +
		"## INFO\ninfo message\n" +
		"## WARNING\nwarning message\n" +
		"## ERROR\nerror message\n" +
		"## CRITICAL\ncritical message\n"
	if out.String() != want {
		t.Errorf("rendered output mismatch\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelWarning)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warning message")
	logger.Error("error message")

	content := out.String()

	if strings.Contains(content, "DEBUG") {
		t.Error("Debug message should have been filtered")
	}
	if strings.Contains(content, "INFO") {
		t.Error("Info message should have been filtered")
	}
	if !strings.Contains(content, "## WARNING\nwarning message") {
		t.Error("Warning message not found")
	}
	if !strings.Contains(content, "## ERROR\nerror message") {
		t.Error("Error message not found")
	}
}

func TestLogger_FilteredMessagesStillFireMonitor(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelCritical)

	logger.Error("hidden error")

	if out.Len() != 0 {
		t.Errorf("expected no rendered output, got %q", out.String())
	}
	if !logger.Monitor().HasFired() {
		t.Error("monitor should fire on ERROR even when rendering is filtered")
	}
}

func TestLogger_WarningsDoNotFireMonitor(t *testing.T) {
	logger := New(nil, LevelDebug)

	for i := 0; i < 10; i++ {
		logger.Debug("d %d", i)
		logger.Info("i %d", i)
		logger.Warn("w %d", i)
		logger.Deprecated("old thing %d", i)
	}

	if logger.Monitor().HasFired() {
		t.Error("monitor fired without any ERROR or CRITICAL message")
	}
}

func TestLogger_LogUnmonitored(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelWarning)

	logger.LogUnmonitored(LevelError, "unrecognized arguments: %s", "--bogus")

	if out.String() != "## ERROR\nunrecognized arguments: --bogus\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if logger.Monitor().HasFired() {
		t.Error("unmonitored messages must not fire the monitor")
	}
	if logger.Counts()[LevelError] != 1 {
		t.Errorf("unmonitored messages are still counted, got %v", logger.Counts())
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelWarning)

	logger.Info("before")
	logger.SetLevel(LevelInfo)
	logger.Info("after")

	if strings.Contains(out.String(), "before") {
		t.Error("message emitted before SetLevel should be filtered")
	}
	if !strings.Contains(out.String(), "after") {
		t.Error("message emitted after SetLevel should be rendered")
	}
	if logger.Level() != LevelInfo {
		t.Errorf("Level() = %v, want INFO", logger.Level())
	}
}

func TestLogger_Counts(t *testing.T) {
	logger := New(nil, LevelCritical)

	logger.Warn("one")
	logger.Warn("two")
	logger.Error("three")

	counts := logger.Counts()
	if counts[LevelWarning] != 2 {
		t.Errorf("WARNING count = %d, want 2", counts[LevelWarning])
	}
	if counts[LevelError] != 1 {
		t.Errorf("ERROR count = %d, want 1", counts[LevelError])
	}
	if _, ok := counts[LevelDebug]; ok {
		t.Error("levels with no messages should be absent")
	}
}

func TestLogger_Writer(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelDebug)

	w := logger.Writer(LevelError)
	n, err := w.Write([]byte("from writer\n"))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if n != len("from writer\n") {
		t.Errorf("Write returned %d", n)
	}

	if out.String() != "## ERROR\nfrom writer\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if !logger.Monitor().HasFired() {
		t.Error("writer at ERROR should fire the monitor")
	}
}

func TestLogger_Deprecated(t *testing.T) {
	var out bytes.Buffer
	logger := New(&out, LevelWarning)

	logger.Deprecated("--old-flag is deprecated")

	if out.String() != "## WARNING\nDeprecationWarning: --old-flag is deprecated\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestLogger_MirrorToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "nested", "manubot.log")

	logger := New(nil, LevelError)
	if err := logger.MirrorToFile(logPath); err != nil {
		t.Fatalf("MirrorToFile: %v", err)
	}

	logger.Debug("debug message")
	logger.Error("error message")
	_ = logger.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	// The mirror ignores the render level
	if !strings.Contains(string(content), "DEBUG: debug message") {
		t.Error("Debug message not found in log file")
	}
	if !strings.Contains(string(content), "ERROR: error message") {
		t.Error("Error message not found in log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("log file permissions = %o, want 600", perm)
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger

	logger.Debug("nothing")
	logger.Error("nothing")
	logger.SetLevel(LevelDebug)

	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
	if logger.Monitor().HasFired() {
		t.Error("nil monitor should never report fired")
	}
}

func TestLogger_ConcurrentErrors(t *testing.T) {
	logger := New(nil, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%10 == 0 {
				logger.Error("worker %d failed", i)
			} else {
				logger.Info("worker %d ok", i)
			}
		}(i)
	}
	wg.Wait()

	if !logger.Monitor().HasFired() {
		t.Error("monitor should have fired")
	}
	if got := logger.Counts()[LevelError]; got != 5 {
		t.Errorf("ERROR count = %d, want 5", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
		ok    bool
	}{
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"Warning", LevelWarning, true},
		{"warn", LevelWarning, true},
		{"ERROR", LevelError, true},
		{"critical", LevelCritical, true},
		{"fatal", LevelWarning, false},
		{"", LevelWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseLevel(%q) error = %v, want ok=%v", tt.input, err, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelNamesMatchString(t *testing.T) {
	for i, name := range LevelNames {
		if Level(i).String() != name {
			t.Errorf("Level(%d).String() = %q, want %q", i, Level(i).String(), name)
		}
	}
}
