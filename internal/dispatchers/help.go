package dispatchers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/manubot/manubot/internal/ui/style"
)

// Program description shown at the top of the root help.
const programSummary = "Manubot: the manuscript bot for scholarly writing"

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	// Find where the command ends (first [ or <)
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// RootHelp renders the top-level help: every subcommand grouped by category,
// in registration order within each category.
func RootHelp(reg *Registry) string {
	var out bytes.Buffer

	out.WriteString("manubot - ")
	out.WriteString(programSummary)
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage("manubot [--version] [--help] [--no-color] <subcommand> [options]"))
	out.WriteString("\n\n")

	grouped := make(map[CommandCategory][]SubcommandSpec)
	for _, spec := range reg.All() {
		grouped[spec.Category] = append(grouped[spec.Category], spec)
	}

	for _, cat := range categoryOrder {
		specs := grouped[cat]
		if len(specs) == 0 {
			continue
		}

		out.WriteString(style.Header(cat.String()))
		out.WriteString("\n")
		for _, spec := range specs {
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-12s", spec.Name)), spec.Summary)
		}
		out.WriteString("\n")
	}

	out.WriteString("See 'manubot <subcommand> --help' for detailed help on a specific subcommand.\n")
	return out.String()
}

// SubcommandHelp renders the help for one subcommand.
func SubcommandHelp(spec SubcommandSpec) string {
	var out bytes.Buffer

	out.WriteString("manubot ")
	out.WriteString(spec.Name)
	if spec.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(spec.Summary)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(spec.Usage()))
	out.WriteString("\n\n")

	if spec.Description != "" {
		out.WriteString(spec.Description)
		out.WriteString("\n\n")
	}

	if pos, ok := spec.Positional(); ok {
		out.WriteString(style.Header("ARGUMENTS"))
		out.WriteString("\n")
		fmt.Fprintf(&out, "   %s  %s\n\n", style.Info(fmt.Sprintf("%-28s", pos.Key)), pos.Description)
	}

	out.WriteString(style.Header("OPTIONS"))
	out.WriteString("\n")
	for _, opt := range spec.Options {
		if opt.Type == TypePositional {
			continue
		}
		fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-28s", optionSignature(opt))), optionDescription(opt))
	}

	return out.String()
}

func optionSignature(opt OptionSpec) string {
	sig := strings.Join(opt.Flags, ", ")
	if opt.Type == TypeFlag {
		return sig
	}

	hint := opt.ValueHint
	if hint == "" {
		switch opt.Type {
		case TypeChoice:
			hint = "{" + strings.Join(opt.Choices, ",") + "}"
		case TypePath:
			hint = "<path>"
		default:
			hint = "<value>"
		}
	}
	if opt.OptionalValue {
		return sig + " [" + strings.Trim(hint, "<>") + "]"
	}
	return sig + " " + hint
}

func optionDescription(opt OptionSpec) string {
	desc := opt.Description
	var notes []string
	if opt.Required {
		notes = append(notes, "required")
	}
	if opt.Type == TypeRepeatable {
		notes = append(notes, "repeatable")
	}
	if def, ok := opt.Default.(string); ok && def != "" {
		notes = append(notes, "default: "+def)
	}
	if len(notes) > 0 {
		desc += " " + style.Muted("("+strings.Join(notes, ", ")+")")
	}
	return strings.TrimSpace(desc)
}
