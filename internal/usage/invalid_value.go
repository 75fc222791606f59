package usage

import "fmt"

// InvalidOptionValue is returned when a raw token cannot be coerced to the
// option's declared type.
func InvalidOptionValue(subcommand, flag, reason string) *Error {
	return &Error{
		Kind:       ErrInvalidOptionValue,
		Message:    fmt.Sprintf("manubot %s: argument %s: %s", subcommand, flag, reason),
		Subcommand: subcommand,
		Options:    []string{flag},
	}
}
