package usage

import "fmt"

// InvalidFlag is returned when a flag is not valid in the current context.
func InvalidFlag(subcommand, flag string) *Error {
	return &Error{
		Kind:       ErrInvalidFlag,
		Message:    fmt.Sprintf("manubot: unrecognized argument '%s'", flag),
		Subcommand: subcommand,
		Options:    []string{flag},
	}
}
