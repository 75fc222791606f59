package cli

import "github.com/manubot/manubot/internal/dispatchers"

var CitekeysArg = dispatchers.OptionSpec{
	Key:         "citekeys",
	Type:        dispatchers.TypePositional,
	Required:    true,
	ValueHint:   "<citekeys>...",
	Description: "One or more (space separated) citation keys to generate bibliographic metadata for",
}

var ShellArg = dispatchers.OptionSpec{
	Key:         "shell",
	Type:        dispatchers.TypePositional,
	ValueHint:   "[bash|zsh|fish]",
	Description: "Shell to generate completions for; detected from $SHELL when omitted",
}

var ConfigArgs = dispatchers.OptionSpec{
	Key:         "args",
	Type:        dispatchers.TypePositional,
	ValueHint:   "[key [value]]",
	Description: "List every key, print one key, or set a key to a value",
}
