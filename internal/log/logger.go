package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/manubot/manubot/internal/ui/style"
)

// Logger is the diagnostic sink. Every message is counted and handed to the
// Monitor; only messages at or above the render level are written to out.
// An optional file mirror receives every message regardless of level.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	file     *os.File
	minLevel Level
	monitor  *Monitor
	counts   [numLevels]int
}

var (
	defaultLogger   *Logger
	defaultLoggerMu sync.RWMutex
)

// DefaultThreshold is the severity that fires a logger's Monitor unless
// WithThreshold says otherwise.
const DefaultThreshold = LevelError

// Option configures a Logger.
type Option func(*config)

type config struct {
	threshold Level
}

// WithThreshold sets the severity at or above which the Monitor fires.
// Lowering it to LevelWarning makes deprecation notices and captured
// stdlib log output count towards the exit code.
func WithThreshold(level Level) Option {
	return func(c *config) {
		c.threshold = level
	}
}

// New creates a logger that renders to out at minLevel and fires a fresh
// Monitor at DefaultThreshold.
func New(out io.Writer, minLevel Level, opts ...Option) *Logger {
	cfg := config{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	if out == nil {
		out = io.Discard
	}
	return &Logger{
		out:      out,
		minLevel: minLevel,
		monitor:  NewMonitor(cfg.threshold),
	}
}

// MirrorToFile appends every message to the file at logPath.
func (l *Logger) MirrorToFile(logPath string) error {
	// Create the directory with restrictive permissions
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if info, err := os.Stat(logPath); err == nil {
		if info.Mode().Perm() != 0600 {
			if err := os.Chmod(logPath, 0600); err != nil {
				return fmt.Errorf("chmod existing log file: %w", err)
			}
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = file
	return nil
}

// Close closes the file mirror, if any.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// SetLevel changes the render level. It does not affect the Monitor.
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// Level returns the current render level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minLevel
}

// Monitor returns the severity monitor fed by this logger.
func (l *Logger) Monitor() *Monitor {
	if l == nil {
		return nil
	}
	return l.monitor
}

// Counts returns how many messages were emitted at each level.
func (l *Logger) Counts() map[Level]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	counts := make(map[Level]int, numLevels)
	for i, n := range l.counts {
		if n > 0 {
			counts[Level(i)] = n
		}
	}
	return counts
}

// Log emits a message at the given level.
func (l *Logger) Log(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.emit(level, fmt.Sprintf(format, args...), true)
}

// LogUnmonitored renders, counts and mirrors a message like Log but does
// not show it to the Monitor. Invocation errors use it: they carry their
// own exit code.
func (l *Logger) LogUnmonitored(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.emit(level, fmt.Sprintf(format, args...), false)
}

func (l *Logger) emit(level Level, message string, observe bool) {
	if level < LevelDebug {
		level = LevelDebug
	}
	if level > LevelCritical {
		level = LevelCritical
	}
	message = strings.TrimRight(message, "\n")

	if observe {
		l.monitor.Observe(level)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.counts[level]++

	if l.file != nil {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("[%s] %s: %s\n", timestamp, level.String(), message)
		if _, err := l.file.Write([]byte(line)); err != nil && level >= LevelError {
			fmt.Fprintf(os.Stderr, "logger: write failed: %v (message: %s)\n", err, message)
		}
	}

	if level < l.minLevel {
		return
	}

	_, _ = fmt.Fprintf(l.out, "%s\n%s\n", header(level), message)
}

// header renders the "## LEVEL" line of a diagnostic block.
func header(level Level) string {
	h := "## " + level.String()
	switch level {
	case LevelDebug:
		return style.Muted(h)
	case LevelInfo:
		return style.Info(h)
	case LevelWarning:
		return style.Warning(h)
	case LevelError:
		return style.Error(h)
	default:
		return style.Critical(h)
	}
}

// Debug writes a debug message
func (l *Logger) Debug(format string, args ...any) {
	l.Log(LevelDebug, format, args...)
}

// Info writes an informational message
func (l *Logger) Info(format string, args ...any) {
	l.Log(LevelInfo, format, args...)
}

// Warn writes a warning
func (l *Logger) Warn(format string, args ...any) {
	l.Log(LevelWarning, format, args...)
}

// Error writes an error. It does not stop the caller.
func (l *Logger) Error(format string, args ...any) {
	l.Log(LevelError, format, args...)
}

// Critical writes a critical message
func (l *Logger) Critical(format string, args ...any) {
	l.Log(LevelCritical, format, args...)
}

// Deprecated reports use of a deprecated feature at WARNING severity.
func (l *Logger) Deprecated(format string, args ...any) {
	l.Log(LevelWarning, "DeprecationWarning: "+format, args...)
}

// Writer returns an io.Writer that logs each write at the given level.
func (l *Logger) Writer(level Level) io.Writer {
	return &logWriter{logger: l, level: level}
}

type logWriter struct {
	logger *Logger
	level  Level
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.logger.Log(w.level, "%s", string(p))
	return len(p), nil
}

// Convenience functions for the process-wide logger

// Debug writes a debug message to the process-wide logger
func Debug(format string, args ...any) {
	Default().Debug(format, args...)
}

// Info writes an informational message to the process-wide logger
func Info(format string, args ...any) {
	Default().Info(format, args...)
}

// Warn writes a warning to the process-wide logger
func Warn(format string, args ...any) {
	Default().Warn(format, args...)
}

// Error writes an error to the process-wide logger
func Error(format string, args ...any) {
	Default().Error(format, args...)
}

// Critical writes a critical message to the process-wide logger
func Critical(format string, args ...any) {
	Default().Critical(format, args...)
}

// Deprecated reports a deprecation notice to the process-wide logger
func Deprecated(format string, args ...any) {
	Default().Deprecated(format, args...)
}

// Default returns the process-wide logger (nil before Configure).
func Default() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

func setDefault(l *Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}
