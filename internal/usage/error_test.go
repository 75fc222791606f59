package usage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"invalid flag", InvalidFlag("cite", "--nope"), 2},
		{"missing subcommand", MissingSubcommand(), 2},
		{"unknown subcommand", UnknownSubcommand("cit"), 2},
		{"missing option", MissingRequiredOption("process", "--content-directory"), 2},
		{"exclusive", MutuallyExclusive("cite", "--txt", "--yml"), 2},
		{"invalid value", InvalidOptionValue("cite", "--format", "invalid choice"), 2},
		{"duplicate", DuplicateSubcommand("cite"), 1},
		{"schema", InvalidSchema("cite", "bad"), 1},
		{"explicit", &Error{Kind: ErrInvalidFlag, ExitCode: 7}, 7},
		{"unknown kind", &Error{Kind: ErrorKind(99)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.GetExitCode())
		})
	}
}

func TestUnknownSubcommand_Suggestions(t *testing.T) {
	require.Equal(t, "manubot: 'cit' is not a manubot subcommand.", UnknownSubcommand("cit").Error())

	one := UnknownSubcommand("cit", "cite")
	require.Contains(t, one.Error(), "The most similar subcommand is\n\tcite")

	many := UnknownSubcommand("ai", "ai-cite", "ai-revision")
	require.Contains(t, many.Error(), "The most similar subcommands are\n\tai-cite\n\tai-revision")
}

func TestMissingRequiredOption_ListsAll(t *testing.T) {
	err := MissingRequiredOption("process", "--content-directory", "--output-directory")

	require.Equal(t, ErrMissingRequiredOption, err.Kind)
	require.Equal(t, []string{"--content-directory", "--output-directory"}, err.Options)
	require.Contains(t, err.Error(), "--content-directory, --output-directory")
}

func TestHint(t *testing.T) {
	require.Equal(t, "See 'manubot --help'.", MissingSubcommand().Hint())
	require.Equal(t, "See 'manubot cite --help'.", InvalidFlag("cite", "--x").Hint())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("parse: %w", MutuallyExclusive("cite", "--yml", "--txt"))

	require.Equal(t, ErrMutuallyExclusive, KindOf(wrapped))
	require.Equal(t, ErrUnknown, KindOf(fmt.Errorf("plain")))
	require.Equal(t, ErrUnknown, KindOf(nil))
}
