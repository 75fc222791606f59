package app

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/manubot/manubot/internal/config"
	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/store"
	"github.com/manubot/manubot/internal/ui/style"
)

// Options configures the ambient services of a run.
type Options struct {
	// Color is "auto", "always" or "never".
	Color string

	// LogFile mirrors every diagnostic when non-empty.
	LogFile string

	// History records the run in the database at HistoryPath.
	History     bool
	HistoryPath string

	// Pager pages help output on a terminal; "cat" disables it.
	Pager string
}

// DefaultOptions reads the rc file once and merges it over the defaults.
// An invalid file is reported by config and the defaults are used.
func DefaultOptions() Options {
	values, _ := config.GetAll()

	return Options{
		Color:       values["color"],
		LogFile:     values["log_file"],
		History:     config.Bool(values["history"], true),
		HistoryPath: values["history_path"],
		Pager:       values["pager"],
	}
}

// colorEnabled resolves the color setting against the stderr writer.
func colorEnabled(setting string, stderr io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := stderr.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// setup installs the diagnostic sink and the ambient services for one run.
// The sink comes first so that config problems are reported through it.
func setup(stderr io.Writer, load func() Options) (*log.Logger, Options) {
	logger := log.Configure(stderr, log.LevelWarning)

	opts := load()
	style.Init(colorEnabled(opts.Color, stderr))

	if opts.LogFile != "" {
		if err := logger.MirrorToFile(opts.LogFile); err != nil {
			logger.Warn("could not open log file %s: %v", opts.LogFile, err)
		}
	}

	return logger, opts
}

// openHistory opens the history store, or returns nil when history is off
// or unavailable.
func openHistory(logger *log.Logger, opts Options, open func(string) (*store.Store, error)) *store.Store {
	if !opts.History || opts.HistoryPath == "" {
		return nil
	}
	s, err := open(opts.HistoryPath)
	if err != nil {
		logger.Debug("history: %v", err)
		return nil
	}
	return s
}
