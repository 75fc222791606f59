package usage

import "fmt"

// MutuallyExclusive is returned when two members of one exclusive group are given.
func MutuallyExclusive(subcommand, flag, other string) *Error {
	return &Error{
		Kind:       ErrMutuallyExclusive,
		Message:    fmt.Sprintf("manubot %s: argument %s: not allowed with argument %s", subcommand, flag, other),
		Subcommand: subcommand,
		Options:    []string{flag, other},
	}
}
