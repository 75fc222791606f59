package usage

import "errors"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrInvalidFlag
	ErrMissingSubcommand
	ErrUnknownSubcommand
	ErrMissingRequiredOption
	ErrMutuallyExclusive
	ErrInvalidOptionValue
	ErrDuplicateSubcommand
	ErrInvalidSchema
)

// Exit codes:
//
//	Exit 1: Schema errors (programming mistakes caught at startup)
//	  - Unknown errors
//	  - Duplicate subcommand
//	  - Invalid schema
//
//	Exit 2: User input errors
//	  - Invalid flag
//	  - Missing subcommand
//	  - Unknown subcommand
//	  - Missing required option
//	  - Mutually exclusive options
//	  - Invalid option value
var exitCodes = map[ErrorKind]int{
	ErrUnknown:               1,
	ErrInvalidFlag:           2,
	ErrMissingSubcommand:     2,
	ErrUnknownSubcommand:     2,
	ErrMissingRequiredOption: 2,
	ErrMutuallyExclusive:     2,
	ErrInvalidOptionValue:    2,
	ErrDuplicateSubcommand:   1,
	ErrInvalidSchema:         1,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind       ErrorKind
	Message    string
	Subcommand string   // subcommand whose help the user should consult, if any
	Options    []string // offending option names, if any
	ExitCode   int      // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Hint returns the help command the user should run after this error.
func (e *Error) Hint() string {
	if e.Subcommand != "" {
		return "See 'manubot " + e.Subcommand + " --help'."
	}
	return "See 'manubot --help'."
}

// KindOf returns the kind of the first usage error in err's chain,
// or ErrUnknown if there is none.
func KindOf(err error) ErrorKind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ErrUnknown
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
