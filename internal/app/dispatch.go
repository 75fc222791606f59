package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/manubot/manubot/internal/cli"
	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/store"
	"github.com/manubot/manubot/internal/ui"
	"github.com/manubot/manubot/internal/ui/style"
	"github.com/manubot/manubot/internal/usage"
)

// HistoryLimit is the number of runs kept in the history database.
var HistoryLimit = 1000

// FailureMessage is logged at CRITICAL when a run ends because errors were logged.
const FailureMessage = "Failure: exiting with code 1 due to logged errors"

// Phase is a dispatcher state.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseDiagnosticsConfigured
	PhaseArgsParsed
	PhaseLevelApplied
	PhaseHandlerResolved
	PhaseHandlerInvoked
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseDiagnosticsConfigured:
		return "diagnostics-configured"
	case PhaseArgsParsed:
		return "args-parsed"
	case PhaseLevelApplied:
		return "level-applied"
	case PhaseHandlerResolved:
		return "handler-resolved"
	case PhaseHandlerInvoked:
		return "handler-invoked"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Dispatcher runs one command line end to end.
type Dispatcher struct {
	Registry  *dispatchers.Registry
	Resolve   func(id string) (handlers.Handler, error)
	Options   func() Options
	OpenStore func(path string) (*store.Store, error)
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer

	phase  Phase
	logger *log.Logger
}

// Result describes a finished run.
type Result struct {
	ExitCode   int
	Phase      Phase // last phase reached before termination
	Invocation *dispatchers.Invocation
	RunID      string // empty when the run was not recorded
}

// Run dispatches args (without the program name) with the built-in
// subcommands and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	d := &Dispatcher{
		Registry:  cli.Registry(),
		Resolve:   handlers.Resolve,
		Options:   DefaultOptions,
		OpenStore: store.New,
		Now:       time.Now,
		Stdout:    stdout,
		Stderr:    stderr,
	}
	return d.Execute(args).ExitCode
}

// Main runs with the process arguments and standard streams.
func Main() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Execute runs args through every dispatcher phase.
func (d *Dispatcher) Execute(args []string) Result {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Options == nil {
		d.Options = DefaultOptions
	}
	if d.Resolve == nil {
		d.Resolve = handlers.Resolve
	}
	if d.Stdout == nil {
		d.Stdout = io.Discard
	}
	if d.Stderr == nil {
		d.Stderr = io.Discard
	}

	started := d.Now()
	d.phase = PhaseInit

	logger, opts := setup(d.Stderr, d.Options)
	d.logger = logger
	defer func() { _ = logger.Close() }()
	d.advance(PhaseDiagnosticsConfigured)

	res := d.dispatch(args, opts)

	if res.Invocation == nil || (!res.Invocation.ShowHelp && !res.Invocation.ShowVersion) {
		res.RunID = d.record(opts, args, res, started)
	}

	res.Phase = d.phase
	d.phase = PhaseTerminated
	return res
}

func (d *Dispatcher) dispatch(args []string, opts Options) Result {
	logger := d.logger

	inv, err := dispatchers.Parse(args, d.Registry)
	if err != nil {
		return Result{ExitCode: d.usageFailure(err)}
	}
	d.advance(PhaseArgsParsed)
	res := Result{Invocation: inv}

	if inv.NoColor {
		style.Init(false)
	}

	switch {
	case inv.ShowVersion:
		_, _ = fmt.Fprintf(d.Stdout, "manubot %s\n", Version)
		return res
	case inv.ShowHelp && inv.Subcommand == "":
		ui.NewWriterTo(d.Stdout, ui.WithPagerOverride(opts.Pager)).Pager(dispatchers.RootHelp(d.Registry))
		return res
	case inv.ShowHelp:
		spec, _ := d.Registry.Lookup(inv.Subcommand)
		ui.NewWriterTo(d.Stdout, ui.WithPagerOverride(opts.Pager)).Pager(dispatchers.SubcommandHelp(spec))
		return res
	}

	logger.SetLevel(inv.LogLevel)
	d.advance(PhaseLevelApplied)
	logger.Debug("dispatch: %s -> %s", inv.Subcommand, inv.HandlerID)

	handler, err := d.Resolve(inv.HandlerID)
	if err != nil {
		logger.Critical("manubot %s: %v", inv.Subcommand, err)
		res.ExitCode = 1
		return res
	}
	d.advance(PhaseHandlerResolved)

	err = handler(logger, inv.Options)
	d.advance(PhaseHandlerInvoked)
	if err != nil {
		logger.Critical("manubot %s: %v", inv.Subcommand, err)
		res.ExitCode = 1
		return res
	}

	if logger.Monitor().HasFired() {
		logger.Critical(FailureMessage)
		res.ExitCode = 1
	}
	return res
}

// usageFailure renders a parse error and returns its exit code. The
// Monitor never sees it.
func (d *Dispatcher) usageFailure(err error) int {
	var ue *usage.Error
	if errors.As(err, &ue) {
		d.logger.LogUnmonitored(log.LevelError, "%s\n%s", ue.Error(), style.Muted(ue.Hint()))
		return ue.GetExitCode()
	}
	d.logger.LogUnmonitored(log.LevelError, "%v", err)
	return 1
}

func (d *Dispatcher) advance(p Phase) {
	d.phase = p
	d.logger.Debug("dispatch: phase %s", p)
}

func (d *Dispatcher) record(opts Options, args []string, res Result, started time.Time) string {
	s := openHistory(d.logger, opts, d.OpenStore)
	if s == nil {
		return ""
	}
	defer func() { _ = s.Close() }()

	counts := make(map[string]int)
	for level, n := range d.logger.Counts() {
		counts[level.String()] = n
	}

	run := store.Run{
		Args:       args,
		StartedAt:  started,
		FinishedAt: d.Now(),
		ExitCode:   res.ExitCode,
		Fired:      d.logger.Monitor().HasFired(),
		Counts:     counts,
	}
	if res.Invocation != nil {
		run.Subcommand = res.Invocation.Subcommand
	}

	id, err := s.RecordRun(run)
	if err != nil {
		d.logger.Debug("history: %v", err)
		return ""
	}
	if n, err := s.PruneRuns(HistoryLimit); err != nil {
		d.logger.Debug("history: prune: %v", err)
	} else if n > 0 {
		d.logger.Debug("history: pruned %d runs", n)
	}
	return id
}
