// Package completions implements the completions subcommand.
package completions

import (
	"fmt"
	"io"
	"os"

	"github.com/manubot/manubot/internal/cli"
	"github.com/manubot/manubot/internal/completions"
	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
)

type Deps struct {
	Stdout       io.Writer
	Registry     func() *dispatchers.Registry
	RunningShell func() completions.Shell
	AutoPath     func(completions.Shell) string
}

func DefaultDeps() Deps {
	return Deps{
		Stdout:       os.Stdout,
		Registry:     cli.Registry,
		RunningShell: completions.RunningShell,
		AutoPath:     completions.AutoInstallPath,
	}
}

func init() {
	handlers.RegisterFunc("completions", "Command", Command)
}

// Command prints install instructions, or the script itself with --script.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return run(logger, opts, DefaultDeps())
}

func run(logger *log.Logger, opts dispatchers.Options, deps Deps) error {
	shell, err := selectShell(opts.Strings("shell"), deps)
	if err != nil {
		return err
	}
	logger.Debug("completions: shell %s", shell)

	if opts.Bool("script") {
		return completions.PrintCompletions(deps.Stdout, shell, deps.Registry())
	}

	printInstructions(deps.Stdout, shell, deps.AutoPath(shell))
	return nil
}

func selectShell(args []string, deps Deps) (completions.Shell, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("expected one shell, got %d", len(args))
	}

	var shell completions.Shell
	if len(args) == 1 {
		shell = completions.Shell(args[0])
	} else {
		shell = deps.RunningShell()
		if shell == "" {
			return "", fmt.Errorf("could not detect shell, specify one: manubot completions <bash|zsh|fish>")
		}
	}

	switch shell {
	case completions.ShellBash, completions.ShellZsh, completions.ShellFish:
		return shell, nil
	default:
		return "", fmt.Errorf("unsupported shell: %s (use bash, zsh, or fish)", shell)
	}
}

func printInstructions(w io.Writer, shell completions.Shell, autoPath string) {
	_, _ = fmt.Fprintln(w, "To enable completions, choose one of the following:")
	_, _ = fmt.Fprintln(w)

	n := 1
	if autoPath != "" {
		_, _ = fmt.Fprintf(w, "%d. Write to auto-load directory:\n", n)
		_, _ = fmt.Fprintf(w, "   manubot completions --script %s > %s\n", shell, autoPath)
		_, _ = fmt.Fprintln(w)
		n++
	}

	_, _ = fmt.Fprintf(w, "%d. Add to %s:\n", n, completions.RcFile(shell))
	_, _ = fmt.Fprintf(w, "   %s\n", completions.SourceInstructions(shell))
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "Then restart your shell or run: exec $SHELL")
}
