package completions

import (
	"fmt"
	"os"
	"path/filepath"
)

// RunningShell guesses the user's shell from $SHELL.
func RunningShell() Shell {
	switch Shell(filepath.Base(os.Getenv("SHELL"))) {
	case ShellBash:
		return ShellBash
	case ShellZsh:
		return ShellZsh
	case ShellFish:
		return ShellFish
	default:
		return ""
	}
}

// SourceInstructions returns the line that loads completions for shell.
func SourceInstructions(shell Shell) string {
	switch shell {
	case ShellBash, ShellZsh:
		return fmt.Sprintf(`eval "$(%s completions --script %s)"`, binaryName, shell)
	case ShellFish:
		return fmt.Sprintf(`%s completions --script fish | source`, binaryName)
	default:
		return ""
	}
}

// RcFile returns the rc file path for the given shell
func RcFile(shell Shell) string {
	switch shell {
	case ShellBash:
		return "~/.bashrc"
	case ShellZsh:
		return "~/.zshrc"
	case ShellFish:
		return "~/.config/fish/config.fish"
	default:
		return ""
	}
}

// AutoInstallPath returns the path where completions can be auto-loaded from.
// Returns empty string if auto-install is not supported for this shell.
func AutoInstallPath(shell Shell) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch shell {
	case ShellFish:
		return filepath.Join(home, ".config", "fish", "completions", binaryName+".fish")
	case ShellBash:
		if isBashCompletionInstalled() {
			return filepath.Join(home, ".local", "share", "bash-completion", "completions", binaryName)
		}
		return ""
	default:
		return ""
	}
}

func isBashCompletionInstalled() bool {
	for _, p := range []string{
		"/usr/share/bash-completion/bash_completion",
		"/etc/bash_completion",
		"/opt/homebrew/etc/profile.d/bash_completion.sh",
		"/usr/local/etc/profile.d/bash_completion.sh",
	} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
