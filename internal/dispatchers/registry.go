package dispatchers

import (
	"fmt"
	"slices"
	"strings"

	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/usage"
)

// LogLevelKey is the option key of the verbosity option attached to every subcommand.
const LogLevelKey = "log_level"

// logLevelOption is appended to every registered subcommand.
var logLevelOption = OptionSpec{
	Key:         LogLevelKey,
	Flags:       []string{"--log-level"},
	Type:        TypeChoice,
	Default:     "WARNING",
	Choices:     log.LevelNames,
	ValueHint:   "<level>",
	Description: "Set the logging level for stderr logging",
}

// reservedFlags are handled by the resolver itself.
var reservedFlags = []string{"--help", "-h"}

// Registry maps subcommand names to their specs. It is populated once at
// startup and read-only afterwards.
type Registry struct {
	specs  []*SubcommandSpec
	byName map[string]*SubcommandSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*SubcommandSpec)}
}

// Register validates spec, attaches the --log-level option and adds it.
// A repeated name fails with a usage error of kind ErrDuplicateSubcommand.
func (r *Registry) Register(spec SubcommandSpec) error {
	if spec.Name == "" || strings.HasPrefix(spec.Name, "-") {
		return usage.InvalidSchema(spec.Name, "subcommand name must be a non-empty word")
	}
	if _, exists := r.byName[spec.Name]; exists {
		return usage.DuplicateSubcommand(spec.Name)
	}
	if spec.HandlerID == "" {
		return usage.InvalidSchema(spec.Name, "missing handler identifier")
	}

	stored := spec
	stored.Options = make([]OptionSpec, 0, len(spec.Options)+1)
	for _, opt := range spec.Options {
		stored.Options = append(stored.Options, normalizeOption(opt))
	}
	stored.Options = append(stored.Options, logLevelOption)

	if err := validateOptions(&stored); err != nil {
		return err
	}

	r.specs = append(r.specs, &stored)
	r.byName[stored.Name] = &stored
	return nil
}

// MustRegister is like Register but panics on schema errors. It is meant for
// static registration at startup, where a schema error is a programming error.
func (r *Registry) MustRegister(specs ...SubcommandSpec) *Registry {
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			panic(err)
		}
	}
	return r
}

// All returns the registered specs in registration order.
func (r *Registry) All() []SubcommandSpec {
	out := make([]SubcommandSpec, 0, len(r.specs))
	for _, s := range r.specs {
		c := *s
		c.Options = slices.Clone(s.Options)
		out = append(out, c)
	}
	return out
}

// Names returns the registered subcommand names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for _, s := range r.specs {
		names = append(names, s.Name)
	}
	return names
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (SubcommandSpec, bool) {
	s, ok := r.byName[name]
	if !ok {
		return SubcommandSpec{}, false
	}
	c := *s
	c.Options = slices.Clone(s.Options)
	return c, true
}

// normalizeOption fills in the destination key.
func normalizeOption(opt OptionSpec) OptionSpec {
	if opt.Key != "" {
		return opt
	}
	for _, f := range opt.Flags {
		if strings.HasPrefix(f, "--") {
			opt.Key = strings.ReplaceAll(strings.TrimPrefix(f, "--"), "-", "_")
			return opt
		}
	}
	if len(opt.Flags) > 0 {
		opt.Key = strings.TrimLeft(opt.Flags[0], "-")
	}
	return opt
}

func validateOptions(spec *SubcommandSpec) error {
	seen := make(map[string]bool)
	for _, f := range reservedFlags {
		seen[f] = true
	}

	positionals := 0
	for _, opt := range spec.Options {
		if opt.Key == "" {
			return usage.InvalidSchema(spec.Name, "option without key or flags")
		}

		if opt.Type == TypePositional {
			positionals++
			if len(opt.Flags) > 0 {
				return usage.InvalidSchema(spec.Name, fmt.Sprintf("positional %q declares flags", opt.Key))
			}
			if positionals > 1 {
				return usage.InvalidSchema(spec.Name, "more than one positional option")
			}
			continue
		}

		if len(opt.Flags) == 0 {
			return usage.InvalidSchema(spec.Name, fmt.Sprintf("option %q has no flags", opt.Key))
		}
		for _, f := range opt.Flags {
			if !strings.HasPrefix(f, "-") || f == "-" || f == "--" || strings.Contains(f, "=") {
				return usage.InvalidSchema(spec.Name, fmt.Sprintf("malformed flag %q", f))
			}
			if seen[f] {
				return usage.InvalidSchema(spec.Name, fmt.Sprintf("flag %s declared more than once", f))
			}
			seen[f] = true
		}

		if opt.Type == TypeChoice {
			if len(opt.Choices) == 0 {
				return usage.InvalidSchema(spec.Name, fmt.Sprintf("option %s has no choices", opt.name()))
			}
			if def, ok := opt.Default.(string); ok && !slices.Contains(opt.Choices, def) {
				return usage.InvalidSchema(spec.Name, fmt.Sprintf("default %q of %s is not a choice", def, opt.name()))
			}
		}
		if opt.OptionalValue && opt.Type != TypeString && opt.Type != TypePath {
			return usage.InvalidSchema(spec.Name, fmt.Sprintf("option %s cannot have an optional value", opt.name()))
		}
	}
	return nil
}
