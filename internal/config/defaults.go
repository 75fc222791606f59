package config

import (
	"strings"

	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/paths"
)

// Key defines a configuration key with its metadata.
type Key struct {
	Name        string
	Description string
}

// Keys lists the recognised configuration keys.
var Keys = []Key{
	{Name: "color", Description: "Color output on stderr: auto, always, never"},
	{Name: "log_file", Description: "Mirror every diagnostic to this file (empty disables)"},
	{Name: "history", Description: "Record each run in the history database (true/false)"},
	{Name: "history_path", Description: "Location of the history database"},
	{Name: "display_date", Description: "Date format: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, or Go format"},
	{Name: "display_time", Description: "Time format: 12h, 24h"},
	{Name: "pager", Description: "Pager for help and history output; cat disables paging"},
}

// Default configuration values (in code, not persisted)
var Defaults = map[string]func() string{
	"color":        func() string { return "auto" },
	"log_file":     func() string { return "" },
	"history":      func() string { return "true" },
	"history_path": func() string { return paths.HistoryDBPath() },
	"display_date": func() string { return "Jan 02" },
	"display_time": func() string { return "24h" },
	"pager":        func() string { return "" },
}

// Get returns the value for a config key.
// It checks the config file first, then falls back to the default.
// Returns the value and whether it was found (in file or defaults).
func Get(key string) (string, bool) {
	cfg, err := load()
	if err == nil {
		if value, exists := cfg[key]; exists {
			return value, true
		}
	}

	if defaultFn, ok := Defaults[key]; ok {
		return defaultFn(), true
	}

	return "", false
}

// GetAll returns all config values (user overrides merged with defaults).
func GetAll() (map[string]string, error) {
	result := make(map[string]string)

	for key, valueFn := range Defaults {
		result[key] = valueFn()
	}

	cfg, err := load()
	if err != nil {
		return result, err
	}

	for key, value := range cfg {
		result[key] = value
	}

	return result, nil
}

// Bool interprets a config value as a boolean; unknown values yield fallback.
func Bool(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	default:
		return fallback
	}
}

func load() (map[string]string, error) {
	lines, err := ReadLines()
	if err != nil {
		log.Debug("config: could not read config file: %v", err)
		return nil, err
	}
	cfg, err := Parse(lines)
	if err != nil {
		log.Warn("config: ignoring invalid config file: %v", err)
		return nil, err
	}
	return cfg, nil
}
