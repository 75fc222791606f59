package dispatchers

// ValueType is the coercion applied to an option's raw tokens.
type ValueType int

const (
	// TypeFlag takes no value; presence stores Const (true when Const is nil).
	TypeFlag ValueType = iota
	// TypeString stores the raw token.
	TypeString
	// TypePath stores the token as a cleaned file system path.
	TypePath
	// TypeRepeatable appends one token per occurrence (or every following
	// token when Greedy is set).
	TypeRepeatable
	// TypeChoice stores the token if it is one of Choices.
	TypeChoice
	// TypePositional collects the non-flag tokens of the invocation.
	TypePositional
)

func (t ValueType) String() string {
	switch t {
	case TypeFlag:
		return "flag"
	case TypeString:
		return "string"
	case TypePath:
		return "path"
	case TypeRepeatable:
		return "repeatable"
	case TypeChoice:
		return "choice"
	case TypePositional:
		return "positional"
	default:
		return "unknown"
	}
}

// OptionSpec declares one option of a subcommand.
//
// Several OptionSpecs may store into the same Key, e.g. --format and its
// shorthands --yml and --txt.
type OptionSpec struct {
	Key           string   // destination key; derived from the first long flag when empty
	Flags         []string // e.g. {"--output", "-o"}; empty for TypePositional
	Type          ValueType
	Default       any
	Const         any // TypeFlag: stored value; OptionalValue: value when given bare
	Required      bool
	Group         string   // mutually exclusive group id
	Choices       []string // TypeChoice domain
	Greedy        bool     // TypeRepeatable: consume every following non-flag token
	OptionalValue bool     // TypeString/TypePath: the value may be omitted
	ValueHint     string
	Description   string
}

// SubcommandSpec declares a subcommand: its option schema and the identifier
// of the handler that implements it.
type SubcommandSpec struct {
	Name        string
	Summary     string
	Description string
	Options     []OptionSpec
	HandlerID   string
	Category    CommandCategory
}

// Positional returns the positional option, if the subcommand declares one.
func (s *SubcommandSpec) Positional() (OptionSpec, bool) {
	for _, opt := range s.Options {
		if opt.Type == TypePositional {
			return opt, true
		}
	}
	return OptionSpec{}, false
}

// Usage renders the one-line usage string for the subcommand.
func (s *SubcommandSpec) Usage() string {
	usage := "manubot " + s.Name
	if len(s.Options) > 0 {
		usage += " [options]"
	}
	if pos, ok := s.Positional(); ok {
		if pos.Required {
			usage += " <" + pos.Key + ">..."
		} else {
			usage += " [" + pos.Key + "...]"
		}
	}
	return usage
}

// name returns the display name of an option: its first flag, or its key
// for positionals.
func (o OptionSpec) name() string {
	if len(o.Flags) > 0 {
		return o.Flags[0]
	}
	return o.Key
}
