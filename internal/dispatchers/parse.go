package dispatchers

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/usage"
)

const defaultSuggestionsCount = 3

// Invocation is the structured result of parsing one command line.
type Invocation struct {
	Subcommand  string
	HandlerID   string
	Options     Options
	LogLevel    log.Level
	ShowHelp    bool // --help was given; Subcommand is empty for root help
	ShowVersion bool // --version was given before the subcommand
	NoColor     bool
}

// Parse resolves raw arguments (without the program name) against the
// registry. It reads no ambient state: equal inputs give equal results.
func Parse(args []string, reg *Registry) (*Invocation, error) {
	inv := &Invocation{}

	i := 0
	for ; i < len(args); i++ {
		tok := args[i]
		if tok == "--" {
			i++
			break
		}
		if !isFlag(tok) {
			break
		}
		switch tok {
		case "--version":
			return &Invocation{ShowVersion: true}, nil
		case "--help", "-h":
			return &Invocation{ShowHelp: true}, nil
		case "--no-color":
			inv.NoColor = true
		default:
			return nil, usage.InvalidFlag("", tok)
		}
	}

	if i >= len(args) {
		return nil, usage.MissingSubcommand()
	}

	name := args[i]
	spec, ok := reg.Lookup(name)
	if !ok {
		suggestions := FindSimilarCommands(name, reg.Names(), defaultSuggestionsCount)
		return nil, usage.UnknownSubcommand(name, suggestions...)
	}

	inv.Subcommand = spec.Name
	inv.HandlerID = spec.HandlerID

	help, values, err := parseOptions(&spec, args[i+1:])
	if err != nil {
		return nil, err
	}
	if help {
		return &Invocation{Subcommand: spec.Name, ShowHelp: true}, nil
	}

	level, err := log.ParseLevel(values[LogLevelKey].(string))
	if err != nil {
		return nil, usage.InvalidOptionValue(spec.Name, "--log-level", err.Error())
	}
	inv.LogLevel = level
	inv.Options = NewOptions(values)
	return inv, nil
}

// groupUse records which option of an exclusive group was supplied, and how.
type groupUse struct {
	index int
	flag  string
}

func parseOptions(spec *SubcommandSpec, args []string) (bool, map[string]any, error) {
	flagIndex := make(map[string]int)
	for idx, opt := range spec.Options {
		for _, f := range opt.Flags {
			flagIndex[f] = idx
		}
	}

	values := make(map[string]any)
	supplied := make(map[int]bool)
	groups := make(map[string]groupUse)
	var positionals []string
	endOfFlags := false

	for j := 0; j < len(args); j++ {
		tok := args[j]
		if endOfFlags || !isFlag(tok) {
			positionals = append(positionals, tok)
			continue
		}
		if tok == "--" {
			endOfFlags = true
			continue
		}
		if tok == "--help" || tok == "-h" {
			return true, nil, nil
		}

		name, value, hasValue := strings.Cut(tok, "=")
		idx, ok := flagIndex[name]
		if !ok {
			return false, nil, usage.InvalidFlag(spec.Name, name)
		}
		opt := spec.Options[idx]

		if opt.Group != "" {
			if prev, used := groups[opt.Group]; used && prev.index != idx {
				return false, nil, usage.MutuallyExclusive(spec.Name, name, prev.flag)
			}
			groups[opt.Group] = groupUse{index: idx, flag: name}
		}
		supplied[idx] = true

		if opt.Type == TypeFlag {
			if hasValue {
				return false, nil, usage.InvalidOptionValue(spec.Name, name, "ignored explicit argument '"+value+"'")
			}
			if opt.Const != nil {
				values[opt.Key] = opt.Const
			} else {
				values[opt.Key] = true
			}
			continue
		}

		var raw []string
		switch {
		case hasValue:
			raw = []string{value}
		case j+1 < len(args) && !isFlag(args[j+1]):
			raw = []string{args[j+1]}
			j++
			if opt.Type == TypeRepeatable && opt.Greedy {
				for j+1 < len(args) && !isFlag(args[j+1]) {
					raw = append(raw, args[j+1])
					j++
				}
			}
		case opt.OptionalValue:
			values[opt.Key] = opt.Const
			continue
		default:
			return false, nil, usage.InvalidOptionValue(spec.Name, name, "expected one argument")
		}

		for _, r := range raw {
			coerced, err := coerce(spec.Name, name, opt, r)
			if err != nil {
				return false, nil, err
			}
			if opt.Type == TypeRepeatable {
				list, _ := values[opt.Key].([]string)
				values[opt.Key] = append(list, coerced)
			} else {
				values[opt.Key] = coerced
			}
		}
	}

	pos, hasPos := spec.Positional()
	if !hasPos && len(positionals) > 0 {
		return false, nil, usage.InvalidFlag(spec.Name, strings.Join(positionals, " "))
	}

	var missing []string
	for idx, opt := range spec.Options {
		if !opt.Required {
			continue
		}
		if opt.Type == TypePositional {
			if len(positionals) == 0 {
				missing = append(missing, opt.Key)
			}
			continue
		}
		if !supplied[idx] {
			missing = append(missing, opt.name())
		}
	}
	if len(missing) > 0 {
		return false, nil, usage.MissingRequiredOption(spec.Name, missing...)
	}

	if hasPos && len(positionals) > 0 {
		values[pos.Key] = slices.Clone(positionals)
	}

	applyDefaults(spec, values)
	return false, values, nil
}

// applyDefaults fills keys that no supplied option stored into.
func applyDefaults(spec *SubcommandSpec, values map[string]any) {
	for _, opt := range spec.Options {
		if _, ok := values[opt.Key]; ok {
			continue
		}
		switch {
		case opt.Default != nil:
			values[opt.Key] = cloneValue(opt.Default)
		case opt.Type == TypeFlag && opt.Const == nil:
			values[opt.Key] = false
		}
	}
}

func coerce(subcommand, flag string, opt OptionSpec, raw string) (string, error) {
	if opt.OptionalValue && raw == "" {
		return "", usage.InvalidOptionValue(subcommand, flag, "expected a non-empty value")
	}
	switch opt.Type {
	case TypeChoice:
		if !slices.Contains(opt.Choices, raw) {
			return "", usage.InvalidOptionValue(subcommand, flag,
				"invalid choice: '"+raw+"' (choose from "+quoteAll(opt.Choices)+")")
		}
		return raw, nil
	case TypePath:
		if raw == "" {
			return "", usage.InvalidOptionValue(subcommand, flag, "empty path")
		}
		return filepath.Clean(raw), nil
	default:
		return raw, nil
	}
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}

func isFlag(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}
