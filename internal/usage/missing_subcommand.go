package usage

// MissingSubcommand is returned when no subcommand token is given.
func MissingSubcommand() *Error {
	return &Error{
		Kind:    ErrMissingSubcommand,
		Message: "manubot: a subcommand is required",
	}
}
