package usage

import (
	"fmt"
	"strings"
)

// UnknownSubcommand is returned when the subcommand token matches no
// registered subcommand. Suggestions, if any, are appended to the message.
func UnknownSubcommand(name string, suggestions ...string) *Error {
	msg := fmt.Sprintf("manubot: '%s' is not a manubot subcommand.", name)
	if len(suggestions) == 1 {
		msg += fmt.Sprintf("\n\nThe most similar subcommand is\n\t%s", suggestions[0])
	} else if len(suggestions) > 1 {
		msg += "\n\nThe most similar subcommands are\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:    ErrUnknownSubcommand,
		Message: msg,
	}
}
