package completions

import (
	"fmt"
	"strings"
)

// GenerateBash renders a bash completion function.
func GenerateBash(commands []CommandInfo) string {
	var b strings.Builder
	fn := "_" + binaryName + "_completions"

	fmt.Fprintf(&b, "# bash completion for %s\n", binaryName)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local cur prev sub\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    sub=\"\"\n")
	b.WriteString("    local i\n")
	b.WriteString("    for ((i=1; i<COMP_CWORD; i++)); do\n")
	b.WriteString("        if [[ \"${COMP_WORDS[i]}\" != -* ]]; then sub=\"${COMP_WORDS[i]}\"; break; fi\n")
	b.WriteString("    done\n\n")

	b.WriteString("    if [[ -z \"$sub\" ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s %s\" -- \"$cur\"))\n", commandNames(commands), flagNames(globalFlags))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$sub\" in\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		if cases := bashValueCases(cmd); cases != "" {
			b.WriteString("            case \"$prev\" in\n")
			b.WriteString(cases)
			b.WriteString("            esac\n")
		}
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", flagNames(cmd.Flags))
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	fmt.Fprintf(&b, "complete -o default -F %s %s\n", fn, binaryName)
	return b.String()
}

func bashValueCases(cmd CommandInfo) string {
	var b strings.Builder
	for _, f := range cmd.Flags {
		if !f.HasValue {
			continue
		}
		pattern := strings.Join(f.Names, "|")
		switch {
		case len(f.Choices) > 0:
			fmt.Fprintf(&b, "                %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return ;;\n",
				pattern, strings.Join(f.Choices, " "))
		case f.IsPath:
			fmt.Fprintf(&b, "                %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", pattern)
		default:
			fmt.Fprintf(&b, "                %s) return ;;\n", pattern)
		}
	}
	return b.String()
}

// GenerateZsh renders a zsh completion function.
func GenerateZsh(commands []CommandInfo) string {
	var b strings.Builder
	fn := "_" + binaryName

	fmt.Fprintf(&b, "#compdef %s\n\n", binaryName)
	fmt.Fprintf(&b, "%s() {\n", fn)
	b.WriteString("    local -a subcommands\n")
	b.WriteString("    subcommands=(\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Summary))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	fmt.Fprintf(&b, "        _describe 'subcommand' subcommands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$words[2]\" in\n")
	for _, cmd := range commands {
		fmt.Fprintf(&b, "        %s)\n", cmd.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range cmd.Flags {
			for _, name := range f.Names {
				fmt.Fprintf(&b, "                '%s[%s]%s' \\\n", name, zshEscape(f.Description), zshAction(f))
			}
		}
		b.WriteString("                '*::arg:_default'\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	fmt.Fprintf(&b, "compdef %s %s\n", fn, binaryName)
	return b.String()
}

func zshAction(f FlagInfo) string {
	switch {
	case !f.HasValue:
		return ""
	case len(f.Choices) > 0:
		return ":value:(" + strings.Join(f.Choices, " ") + ")"
	case f.IsPath:
		return ":path:_files"
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", `'\''`)
	s = strings.ReplaceAll(s, "[", `\[`)
	s = strings.ReplaceAll(s, "]", `\]`)
	return strings.ReplaceAll(s, ":", `\:`)
}

// GenerateFish renders fish completions.
func GenerateFish(commands []CommandInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# fish completion for %s\n", binaryName)
	fmt.Fprintf(&b, "complete -c %s -f\n", binaryName)

	for _, cmd := range commands {
		fmt.Fprintf(&b, "complete -c %s -n '__fish_use_subcommand' -a '%s' -d '%s'\n",
			binaryName, cmd.Name, fishEscape(cmd.Summary))
	}
	for _, f := range globalFlags {
		fmt.Fprintf(&b, "complete -c %s -n '__fish_use_subcommand'%s -d '%s'\n",
			binaryName, fishFlag(f), fishEscape(f.Description))
	}

	for _, cmd := range commands {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", cmd.Name)
		for _, f := range cmd.Flags {
			fmt.Fprintf(&b, "complete -c %s -n '%s'%s -d '%s'\n",
				binaryName, cond, fishFlag(f), fishEscape(f.Description))
		}
	}
	return b.String()
}

func fishFlag(f FlagInfo) string {
	var b strings.Builder
	for _, name := range f.Names {
		if strings.HasPrefix(name, "--") {
			fmt.Fprintf(&b, " -l %s", strings.TrimPrefix(name, "--"))
		} else {
			fmt.Fprintf(&b, " -s %s", strings.TrimPrefix(name, "-"))
		}
	}
	switch {
	case len(f.Choices) > 0:
		fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Choices, " "))
	case f.IsPath:
		b.WriteString(" -r -F")
	case f.HasValue:
		b.WriteString(" -x")
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func commandNames(commands []CommandInfo) string {
	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name
	}
	return strings.Join(names, " ")
}

func flagNames(flags []FlagInfo) string {
	var names []string
	for _, f := range flags {
		names = append(names, f.Names...)
	}
	return strings.Join(names, " ")
}
