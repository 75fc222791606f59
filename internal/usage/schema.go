package usage

import "fmt"

// DuplicateSubcommand is returned when a subcommand name is registered twice.
func DuplicateSubcommand(name string) *Error {
	return &Error{
		Kind:    ErrDuplicateSubcommand,
		Message: fmt.Sprintf("manubot: subcommand '%s' is already registered", name),
	}
}

// InvalidSchema is returned when a subcommand declares an inconsistent option schema.
func InvalidSchema(subcommand, reason string) *Error {
	return &Error{
		Kind:       ErrInvalidSchema,
		Message:    fmt.Sprintf("manubot: invalid schema for subcommand '%s': %s", subcommand, reason),
		Subcommand: subcommand,
	}
}
