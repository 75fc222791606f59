// Package cli declares the manubot subcommands.
package cli

import (
	"sync"

	"github.com/manubot/manubot/internal/dispatchers"
)

// Subcommands returns the built-in subcommand specs in help order.
func Subcommands() []dispatchers.SubcommandSpec {
	return []dispatchers.SubcommandSpec{
		{
			Name:    "process",
			Summary: "Process manuscript content",
			Description: "Process manuscript content to create outputs for Pandoc consumption. " +
				"Writes manuscript.md and variables.json to the output directory.",
			Options:   ProcessFlags,
			HandlerID: "process.Command",
			Category:  dispatchers.CategoryManuscript,
		},
		{
			Name:    "webpage",
			Summary: "Deploy Manubot outputs to a webpage directory tree",
			Description: "Update the webpage directory tree with Manubot output files. " +
				"Copies output/manuscript.html and output/manuscript.pdf into webpage/v/{version} and webpage/v/latest.",
			Options:   WebpageFlags,
			HandlerID: "webpage.Command",
			Category:  dispatchers.CategoryManuscript,
		},
		{
			Name:    "cite",
			Summary: "Citekey to CSL JSON command line utility",
			Description: "Generate bibliographic metadata in CSL JSON format for one or more citation keys. " +
				"Optionally, render the metadata into formatted references using Pandoc. " +
				"Text outputs are UTF-8 encoded.",
			Options:   CiteFlags,
			HandlerID: "cite.Command",
			Category:  dispatchers.CategoryReferences,
		},
		{
			Name:    "ai-revision",
			Summary: "Revise manuscript content with language models",
			Description: "Revise manuscript content using AI models to suggest text improvements. " +
				"Requires the AI revision module, which is not part of every build.",
			Options:   AIRevisionFlags,
			HandlerID: "airevision.Command",
			Category:  dispatchers.CategoryAI,
		},
		{
			Name:    "ai-cite",
			Summary: "Suggest citations with language models",
			Description: "Suggest citations for manuscript content using AI models. " +
				"Requires the AI citation module, which is not part of every build.",
			Options:   AIRevisionFlags,
			HandlerID: "aicite.Command",
			Category:  dispatchers.CategoryAI,
		},
		{
			Name:        "history",
			Summary:     "List recent manubot runs",
			Description: "List runs recorded in the history database, newest first. Disable recording with history=false in ~/.manubotrc.",
			Options:     HistoryFlags,
			HandlerID:   "history.Command",
			Category:    dispatchers.CategoryTools,
		},
		{
			Name:        "browse",
			Summary:     "Browse subcommands interactively",
			Description: "Open an interactive browser over every subcommand and its options. Requires a terminal.",
			HandlerID:   "browse.Command",
			Category:    dispatchers.CategoryTools,
		},
		{
			Name:        "completions",
			Summary:     "Generate shell completions",
			Description: "Print instructions for enabling shell completions, or the completion script itself with --script.",
			Options:     CompletionsFlags,
			HandlerID:   "completions.Command",
			Category:    dispatchers.CategoryTools,
		},
		{
			Name:        "config",
			Summary:     "Read or edit ~/.manubotrc",
			Description: "With no arguments, list every configuration key. With a key, print its value; with a key and a value, store it. --unset removes a key.",
			Options:     ConfigFlags,
			HandlerID:   "config.Command",
			Category:    dispatchers.CategoryTools,
		},
	}
}

// BuildRegistry registers every built-in subcommand in a new registry.
func BuildRegistry() (*dispatchers.Registry, error) {
	reg := dispatchers.NewRegistry()
	for _, spec := range Subcommands() {
		if err := reg.Register(spec); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

var (
	registryOnce sync.Once
	registry     *dispatchers.Registry
)

// Registry returns the process-wide registry, built on first use. The
// built-in schema is static, so an error here is a programming error.
func Registry() *dispatchers.Registry {
	registryOnce.Do(func() {
		reg, err := BuildRegistry()
		if err != nil {
			panic(err)
		}
		registry = reg
	})
	return registry
}
