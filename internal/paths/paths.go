package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "manubot"

// AppDataDir returns the application data directory for the log file.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, appDirName)
}

// AppLocalDataDir returns the OS-appropriate local data directory.
// This is where application-managed data (like the run history) lives.
//   - macOS: ~/Library/Application Support/manubot
//   - Linux: $XDG_DATA_HOME/manubot or ~/.local/share/manubot
//   - Windows: %LOCALAPPDATA%\manubot
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// HistoryDBPath returns the default location of the run history database.
func HistoryDBPath() string {
	return filepath.Join(AppLocalDataDir(), "history.db")
}

// ConfigFilePath returns the rc file path. MANUBOT_CONFIG overrides the
// default of ~/.manubotrc.
func ConfigFilePath() (string, error) {
	if p := os.Getenv("MANUBOT_CONFIG"); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".manubotrc"), nil
}

// LogFilePath returns the suggested path for the diagnostic log file.
//   - macOS: ~/Library/Application Support/manubot/manubot.log
//   - Linux: $XDG_CONFIG_HOME/manubot/manubot.log or ~/.config/manubot/manubot.log
//   - Windows: %AppData%\manubot\manubot.log
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "manubot.log")
}
