// Package history implements the history subcommand, listing recorded runs.
package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/manubot/manubot/internal/config"
	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/format"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/store"
	"github.com/manubot/manubot/internal/ui"
	"github.com/manubot/manubot/internal/ui/style"
)

const defaultLimit = 20

func init() {
	handlers.RegisterFunc("history", "Command", Command)
}

// Command is the history handler.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return run(logger, opts, DefaultDeps())
}

func run(logger *log.Logger, opts dispatchers.Options, deps Deps) error {
	limit, err := strconv.Atoi(opts.String("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 0 {
		logger.Error("history: invalid --limit %q; using %d", opts.String("limit", ""), defaultLimit)
		limit = defaultLimit
	}

	s, err := deps.OpenStore()
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Debug("history: close: %v", err)
		}
	}()

	runs, err := s.ListRuns(store.RunFilter{
		Limit:      limit,
		FailedOnly: opts.Bool("failed"),
	})
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, style.Muted("No runs recorded"))
		return nil
	}

	layout := deps.Layout()
	now := deps.Now()
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(formatRun(r, layout, now))
		b.WriteByte('\n')
	}
	ui.NewWriterTo(deps.Stdout, ui.WithConfigGetter(config.Get)).Pager(b.String())
	return nil
}

func formatRun(r store.Run, layout format.Layout, now time.Time) string {
	status := style.Success("ok")
	if r.Failed() {
		status = style.Error(fmt.Sprintf("exit %d", r.ExitCode))
	}

	errors := r.Counts[log.LevelError.String()] + r.Counts[log.LevelCritical.String()]
	warnings := r.Counts[log.LevelWarning.String()]

	return fmt.Sprintf("%s  %-12s %-8s %s  %s",
		style.Muted(layout.DateTimeShort(r.StartedAt.Local())),
		r.Subcommand,
		status,
		style.Muted(fmt.Sprintf("%d errors, %d warnings, %s", errors, warnings, format.Duration(r.Duration()))),
		style.Muted(format.Ago(r.StartedAt, now)),
	)
}
