// Package browse implements an interactive browser over the registered
// subcommands and their help text.
package browse

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/manubot/manubot/internal/cli"
	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/ui/style"
)

type Deps struct {
	Registry    func() *dispatchers.Registry
	Interactive func() bool
	Run         func(tea.Model) error
}

func DefaultDeps() Deps {
	return Deps{
		Registry: cli.Registry,
		Interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
		Run: func(m tea.Model) error {
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

var errNotInteractive = errors.New("browse requires an interactive terminal")

func init() {
	handlers.RegisterFunc("browse", "Command", Command)
}

// Command is the browse handler.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return browse(logger, opts, DefaultDeps())
}

func browse(logger *log.Logger, _ dispatchers.Options, deps Deps) error {
	if !deps.Interactive() {
		return errNotInteractive
	}

	items := buildItems(deps.Registry())
	logger.Debug("browse: %d subcommands", countSelectable(items))

	return deps.Run(newModel(items, style.GetColors()))
}
