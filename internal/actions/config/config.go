// Package config implements the config subcommand, which reads and edits
// the rc file.
package config

import (
	"fmt"
	"slices"

	"github.com/manubot/manubot/internal/config"
	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
)

func init() {
	handlers.RegisterFunc("config", "Command", Command)
}

// Command lists, gets, sets or unsets rc file keys depending on its arguments.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return run(logger, opts, DefaultDeps())
}

func run(logger *log.Logger, opts dispatchers.Options, deps Deps) error {
	args := opts.Strings("args")

	if opts.Bool("unset") {
		if len(args) != 1 {
			return fmt.Errorf("--unset takes exactly one key")
		}
		return unset(logger, args[0], deps)
	}

	switch len(args) {
	case 0:
		return list(deps)
	case 1:
		return get(args[0], deps)
	case 2:
		return set(logger, args[0], args[1], deps)
	default:
		return fmt.Errorf("expected at most a key and a value, got %d arguments", len(args))
	}
}

func list(deps Deps) error {
	values, _ := deps.GetAll()
	for _, key := range config.Keys {
		_, _ = fmt.Fprintf(deps.Stdout, "%s=%s\n", key.Name, values[key.Name])
	}
	return nil
}

func get(key string, deps Deps) error {
	if !known(key) {
		return unknownKey(key)
	}
	values, _ := deps.GetAll()
	_, _ = fmt.Fprintln(deps.Stdout, values[key])
	return nil
}

func set(logger *log.Logger, key, value string, deps Deps) error {
	if !known(key) {
		return unknownKey(key)
	}

	var updated bool
	err := deps.WithLock(func() error {
		lines, err := deps.ReadLines()
		if err != nil {
			return err
		}
		lines, updated = config.Set(lines, key, value)
		return deps.WriteLines(lines)
	})
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	action := "added"
	if updated {
		action = "updated"
	}
	logger.Info("config: %s %s", action, key)
	_, _ = fmt.Fprintf(deps.Stdout, "%s %s=%s\n", action, key, value)
	return nil
}

func unset(logger *log.Logger, key string, deps Deps) error {
	var removed bool
	err := deps.WithLock(func() error {
		lines, err := deps.ReadLines()
		if err != nil {
			return err
		}
		lines, removed = config.Unset(lines, key)
		if !removed {
			return nil
		}
		return deps.WriteLines(lines)
	})
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if !removed {
		return fmt.Errorf("%s is not set", key)
	}

	logger.Info("config: unset %s", key)
	_, _ = fmt.Fprintf(deps.Stdout, "unset %s\n", key)
	return nil
}

func known(key string) bool {
	return slices.ContainsFunc(config.Keys, func(k config.Key) bool { return k.Name == key })
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q", key)
}
