package cli

import "github.com/manubot/manubot/internal/dispatchers"

// DefaultCSL is the citation style used for pandoc-rendered cite output.
const DefaultCSL = "https://citation-style.manubot.org/"

var (
	ProcessFlags = []dispatchers.OptionSpec{
		{
			Flags:       []string{"--content-directory"},
			Type:        dispatchers.TypePath,
			Required:    true,
			ValueHint:   "<dir>",
			Description: "Directory where manuscript content files are located",
		},
		{
			Flags:       []string{"--output-directory"},
			Type:        dispatchers.TypePath,
			Required:    true,
			ValueHint:   "<dir>",
			Description: "Directory to output files generated by this script",
		},
		{
			Flags:       []string{"--template-variables-path"},
			Type:        dispatchers.TypeRepeatable,
			ValueHint:   "<[namespace=]path>",
			Description: "Path of a YAML, TOML or JSON file of template variables, optionally stored under namespace. Unrecognized extensions are read as JSON",
		},
		{
			Flags:       []string{"--skip-citations"},
			Type:        dispatchers.TypeFlag,
			Required:    true,
			Description: "Skip citation and reference processing",
		},
		{
			Flags:       []string{"--cache-directory"},
			Type:        dispatchers.TypePath,
			ValueHint:   "<dir>",
			Description: "Custom cache directory. If not specified, caches to output-directory",
		},
		{
			Flags:       []string{"--clear-requests-cache"},
			Type:        dispatchers.TypeFlag,
			Description: "Clear the requests cache before processing",
		},
		{
			Flags:       []string{"--skip-remote"},
			Type:        dispatchers.TypeFlag,
			Description: "Do not add the rootstock repository to the local git repository remotes",
		},
	}

	CiteFlags = []dispatchers.OptionSpec{
		{
			Flags:       []string{"--output"},
			Type:        dispatchers.TypePath,
			ValueHint:   "<path>",
			Description: "File for output; when omitted, output is written to stdout and the format defaults to csljson",
		},
		{
			Key:         "format",
			Flags:       []string{"--format"},
			Type:        dispatchers.TypeChoice,
			Group:       "format",
			Choices:     []string{"csljson", "cslyaml", "plain", "markdown", "docx", "html", "jats"},
			ValueHint:   "<format>",
			Description: "Format to use for output file; inferred from the --output extension when omitted",
		},
		{
			Key:         "format",
			Flags:       []string{"--yml"},
			Type:        dispatchers.TypeFlag,
			Const:       "cslyaml",
			Group:       "format",
			Description: "Short for --format=cslyaml",
		},
		{
			Key:         "format",
			Flags:       []string{"--txt"},
			Type:        dispatchers.TypeFlag,
			Const:       "plain",
			Group:       "format",
			Description: "Short for --format=plain",
		},
		{
			Key:         "format",
			Flags:       []string{"--md"},
			Type:        dispatchers.TypeFlag,
			Const:       "markdown",
			Group:       "format",
			Description: "Short for --format=markdown",
		},
		{
			Flags:       []string{"--csl"},
			Type:        dispatchers.TypeString,
			Default:     DefaultCSL,
			ValueHint:   "<url>",
			Description: "URL or path with CSL XML style used to style references",
		},
		{
			Flags:       []string{"--bibliography"},
			Type:        dispatchers.TypeRepeatable,
			ValueHint:   "<path>",
			Description: "File to read manual reference metadata; overrides generated metadata for matching citekeys",
		},
		{
			Key:         "infer_prefix",
			Flags:       []string{"--no-infer-prefix"},
			Type:        dispatchers.TypeFlag,
			Const:       false,
			Default:     true,
			Description: "Do not attempt to infer the prefix for citekeys without a known prefix",
		},
		{
			Key:         "prune_csl",
			Flags:       []string{"--allow-invalid-csl-data"},
			Type:        dispatchers.TypeFlag,
			Const:       false,
			Default:     true,
			Description: "Allow CSL Items that do not conform to the JSON Schema; skips pruning invalid fields",
		},
		CitekeysArg,
	}

	WebpageFlags = []dispatchers.OptionSpec{
		{
			Flags:         []string{"--checkout"},
			Type:          dispatchers.TypeString,
			OptionalValue: true,
			Const:         "gh-pages",
			ValueHint:     "<branch>",
			Description:   "Branch to checkout webpage/v from; defaults to gh-pages when given without a value",
		},
		{
			Flags:       []string{"--version"},
			Type:        dispatchers.TypeString,
			ValueHint:   "<version>",
			Description: "Version of the manuscript; used to name webpage/v/{version} (defaults to local)",
		},
		{
			Flags:       []string{"--timestamp"},
			Type:        dispatchers.TypeFlag,
			Description: "Timestamp versioned manuscripts in webpage/v using OpenTimestamps",
		},
		{
			Flags:       []string{"--no-ots-cache"},
			Type:        dispatchers.TypeFlag,
			Group:       "ots",
			Description: "Disable the timestamp cache",
		},
		{
			Flags:       []string{"--ots-cache"},
			Type:        dispatchers.TypePath,
			Default:     "ci/cache/ots",
			Group:       "ots",
			ValueHint:   "<dir>",
			Description: "Location for the timestamp cache",
		},
	}

	// AIRevisionFlags is shared by ai-revision and ai-cite.
	AIRevisionFlags = []dispatchers.OptionSpec{
		{
			Flags:       []string{"--content-directory"},
			Type:        dispatchers.TypePath,
			Required:    true,
			ValueHint:   "<dir>",
			Description: "Directory where manuscript content files are located",
		},
		{
			Flags:       []string{"--model-type"},
			Type:        dispatchers.TypeString,
			Default:     "GPT3CompletionModel",
			ValueHint:   "<model>",
			Description: "Model type used to revise the manuscript",
		},
		{
			Flags:       []string{"--model-kwargs"},
			Type:        dispatchers.TypeRepeatable,
			Greedy:      true,
			ValueHint:   "<key=value>...",
			Description: "Keyword arguments for the revision model",
		},
	}

	HistoryFlags = []dispatchers.OptionSpec{
		{
			Flags:       []string{"--limit"},
			Type:        dispatchers.TypeString,
			Default:     "20",
			ValueHint:   "<n>",
			Description: "Number of runs to show; 0 shows all",
		},
		{
			Flags:       []string{"--failed"},
			Type:        dispatchers.TypeFlag,
			Description: "Only show runs that exited non-zero",
		},
	}

	CompletionsFlags = []dispatchers.OptionSpec{
		{
			Flags:       []string{"--script"},
			Type:        dispatchers.TypeFlag,
			Description: "Print the completion script instead of install instructions",
		},
		ShellArg,
	}

	ConfigFlags = []dispatchers.OptionSpec{
		{
			Flags:       []string{"--unset"},
			Type:        dispatchers.TypeFlag,
			Description: "Remove the key from the rc file",
		},
		ConfigArgs,
	}
)
