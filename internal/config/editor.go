package config

import "strings"

// Set replaces the first assignment of key in lines, or appends one.
// It reports whether an existing assignment was replaced.
func Set(lines []string, key, value string) ([]string, bool) {
	entry := key + "=" + quote(value)

	for i, line := range lines {
		if lineKey(line) == key {
			lines[i] = entry
			return lines, true
		}
	}

	return append(lines, entry), false
}

// Unset drops every assignment of key, keeping comments and other keys.
func Unset(lines []string, key string) ([]string, bool) {
	out := make([]string, 0, len(lines))
	removed := false

	for _, line := range lines {
		if lineKey(line) == key {
			removed = true
			continue
		}
		out = append(out, line)
	}

	return out, removed
}

// lineKey returns the key assigned on line, or "" for blanks and comments.
func lineKey(line string) string {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	key, _, ok := strings.Cut(trimmed, "=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(key)
}

// quote wraps values whose surrounding space would otherwise be trimmed.
func quote(value string) string {
	if value != strings.TrimSpace(value) {
		return `"` + value + `"`
	}
	return value
}
