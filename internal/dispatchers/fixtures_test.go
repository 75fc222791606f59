package dispatchers

import "testing"

// newTestRegistry registers schemas shaped like the real manubot subcommands.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	for _, spec := range testSpecs() {
		if err := reg.Register(spec); err != nil {
			t.Fatalf("register %s: %v", spec.Name, err)
		}
	}
	return reg
}

func testSpecs() []SubcommandSpec {
	return []SubcommandSpec{
		{
			Name:      "process",
			Summary:   "process manuscript content",
			HandlerID: "process.Command",
			Category:  CategoryManuscript,
			Options: []OptionSpec{
				{Flags: []string{"--content-directory"}, Type: TypePath, Required: true},
				{Flags: []string{"--output-directory"}, Type: TypePath, Required: true},
				{Flags: []string{"--template-variables-path"}, Type: TypeRepeatable, Default: []string{}},
				{Flags: []string{"--skip-citations"}, Type: TypeFlag, Required: true},
				{Flags: []string{"--cache-directory"}, Type: TypePath},
			},
		},
		{
			Name:      "cite",
			Summary:   "citekey to CSL JSON command line utility",
			HandlerID: "cite.Command",
			Category:  CategoryReferences,
			Options: []OptionSpec{
				{Flags: []string{"--output"}, Type: TypePath},
				{Flags: []string{"--format"}, Type: TypeChoice, Group: "format",
					Choices: []string{"csljson", "cslyaml", "plain", "markdown", "docx", "html", "jats"}},
				{Key: "format", Flags: []string{"--yml"}, Type: TypeFlag, Const: "cslyaml", Group: "format"},
				{Key: "format", Flags: []string{"--txt"}, Type: TypeFlag, Const: "plain", Group: "format"},
				{Key: "format", Flags: []string{"--md"}, Type: TypeFlag, Const: "markdown", Group: "format"},
				{Flags: []string{"--csl"}, Type: TypeString, Default: "https://citation-style.manubot.org/"},
				{Flags: []string{"--bibliography"}, Type: TypeRepeatable, Default: []string{}},
				{Key: "infer_prefix", Flags: []string{"--no-infer-prefix"}, Type: TypeFlag, Default: true, Const: false},
				{Key: "citekeys", Type: TypePositional, Required: true},
			},
		},
		{
			Name:      "webpage",
			Summary:   "deploy Manubot outputs to a webpage directory tree",
			HandlerID: "webpage.Command",
			Category:  CategoryManuscript,
			Options: []OptionSpec{
				{Flags: []string{"--checkout"}, Type: TypeString, OptionalValue: true, Const: "gh-pages"},
				{Flags: []string{"--version"}, Type: TypeString},
				{Flags: []string{"--no-ots-cache"}, Type: TypeFlag, Group: "cache"},
				{Flags: []string{"--ots-cache"}, Type: TypePath, Default: "ci/cache/ots", Group: "cache"},
			},
		},
		{
			Name:      "ai-revision",
			Summary:   "revise manuscript content with language models",
			HandlerID: "airevision.Command",
			Category:  CategoryAI,
			Options: []OptionSpec{
				{Flags: []string{"--content-directory"}, Type: TypePath, Required: true},
				{Flags: []string{"--model-kwargs"}, Type: TypeRepeatable, Greedy: true},
			},
		},
	}
}
