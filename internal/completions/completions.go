// Package completions generates shell completion scripts from the
// subcommand registry.
package completions

import (
	"github.com/manubot/manubot/internal/dispatchers"
)

// Shell is a supported completion target.
type Shell string

const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// Shells lists the supported shells.
var Shells = []Shell{ShellBash, ShellZsh, ShellFish}

// binaryName is the command completions are generated for.
const binaryName = "manubot"

// CommandInfo is the completion view of one subcommand.
type CommandInfo struct {
	Name    string
	Summary string
	Flags   []FlagInfo
}

// FlagInfo is the completion view of one option.
type FlagInfo struct {
	Names       []string
	Description string
	HasValue    bool
	IsPath      bool
	Choices     []string
}

// globalFlags are accepted before the subcommand.
var globalFlags = []FlagInfo{
	{Names: []string{"--help", "-h"}, Description: "Show help"},
	{Names: []string{"--version"}, Description: "Show version"},
	{Names: []string{"--no-color"}, Description: "Disable colored output"},
}

// ExtractCommands converts the registry into completion data, in
// registration order.
func ExtractCommands(reg *dispatchers.Registry) []CommandInfo {
	specs := reg.All()
	commands := make([]CommandInfo, 0, len(specs))

	for _, spec := range specs {
		cmd := CommandInfo{Name: spec.Name, Summary: spec.Summary}
		for _, opt := range spec.Options {
			if opt.Type == dispatchers.TypePositional {
				continue
			}
			cmd.Flags = append(cmd.Flags, FlagInfo{
				Names:       opt.Flags,
				Description: opt.Description,
				HasValue:    opt.Type != dispatchers.TypeFlag && !opt.OptionalValue,
				IsPath:      opt.Type == dispatchers.TypePath,
				Choices:     opt.Choices,
			})
		}
		cmd.Flags = append(cmd.Flags, FlagInfo{Names: []string{"--help", "-h"}, Description: "Show help"})
		commands = append(commands, cmd)
	}
	return commands
}

// FindCommand finds a command by name.
func FindCommand(commands []CommandInfo, name string) *CommandInfo {
	for i := range commands {
		if commands[i].Name == name {
			return &commands[i]
		}
	}
	return nil
}
