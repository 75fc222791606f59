package usage

import (
	"fmt"
	"strings"
)

// MissingRequiredOption is returned when required options or arguments
// were not supplied. All missing names are reported at once.
func MissingRequiredOption(subcommand string, names ...string) *Error {
	return &Error{
		Kind:       ErrMissingRequiredOption,
		Message:    fmt.Sprintf("manubot %s: the following arguments are required: %s", subcommand, strings.Join(names, ", ")),
		Subcommand: subcommand,
		Options:    names,
	}
}
