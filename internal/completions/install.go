package completions

import (
	"fmt"
	"io"

	"github.com/manubot/manubot/internal/dispatchers"
)

// PrintCompletions writes the completion script for shell to w.
func PrintCompletions(w io.Writer, shell Shell, reg *dispatchers.Registry) error {
	script := generateScript(shell, ExtractCommands(reg))
	if script == "" {
		return fmt.Errorf("unsupported shell: %s", shell)
	}

	_, err := fmt.Fprint(w, script)
	return err
}

func generateScript(shell Shell, commands []CommandInfo) string {
	switch shell {
	case ShellBash:
		return GenerateBash(commands)
	case ShellZsh:
		return GenerateZsh(commands)
	case ShellFish:
		return GenerateFish(commands)
	default:
		return ""
	}
}
