// Package cite implements the cite subcommand: CSL data items for citekeys.
package cite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
)

// Output formats accepted by --format.
const (
	FormatCSLJSON  = "csljson"
	FormatCSLYAML  = "cslyaml"
	FormatPlain    = "plain"
	FormatMarkdown = "markdown"
	FormatDocx     = "docx"
	FormatHTML     = "html"
	FormatJATS     = "jats"
)

// Formats lists every --format choice.
var Formats = []string{
	FormatCSLJSON, FormatCSLYAML, FormatPlain, FormatMarkdown,
	FormatDocx, FormatHTML, FormatJATS,
}

var extensionFormats = map[string]string{
	".json": FormatCSLJSON,
	".yaml": FormatCSLYAML,
	".yml":  FormatCSLYAML,
	".txt":  FormatPlain,
	".md":   FormatMarkdown,
	".docx": FormatDocx,
	".html": FormatHTML,
	".xml":  FormatJATS,
}

func init() {
	handlers.RegisterFunc("cite", "Command", Command)
}

// Command is the cite handler.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return run(logger, opts, DefaultDeps())
}

// InferFormat picks the output format: explicit format first, then the
// --output extension, then csljson.
func InferFormat(format, output string) string {
	if format != "" {
		return format
	}
	if output != "" {
		if f, ok := extensionFormats[strings.ToLower(filepath.Ext(output))]; ok {
			return f
		}
	}
	return FormatCSLJSON
}

func run(logger *log.Logger, opts dispatchers.Options, deps Deps) error {
	output := opts.String("output", "")
	format := InferFormat(opts.String("format", ""), output)
	inferPrefix := opts.Bool("infer_prefix")
	pruneCSL := opts.Bool("prune_csl")

	logger.Debug("cite: format=%s output=%q infer_prefix=%t prune_csl=%t", format, output, inferPrefix, pruneCSL)

	manual := loadManualReferences(logger, opts.Strings("bibliography"), deps)

	var items []Item
	seen := make(map[string]bool)
	for _, input := range opts.Strings("citekeys") {
		item, ok := itemFor(logger, input, inferPrefix, manual)
		if !ok {
			continue
		}
		if seen[item.ID()] {
			logger.Debug("cite: skipping duplicate citekey %s", input)
			continue
		}
		seen[item.ID()] = true

		if pruneCSL {
			for _, field := range Prune(item) {
				logger.Debug("cite: pruned field %q from %s", field, item.ID())
			}
		}
		items = append(items, item)
	}

	if format != FormatCSLJSON && format != FormatCSLYAML {
		logger.Error("cite: cannot render %s output: pandoc rendering is unavailable in this build (csl style %s)",
			format, opts.String("csl", ""))
		return nil
	}

	data, err := Encode(items, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if output == "" {
		_, err = deps.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := deps.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := deps.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	logger.Info("cite: wrote %d items to %s", len(items), output)
	return nil
}

func loadManualReferences(logger *log.Logger, paths []string, deps Deps) map[string]Item {
	manual := make(map[string]Item)
	for _, path := range paths {
		data, err := deps.ReadFile(path)
		if err != nil {
			logger.Error("cite: could not read bibliography %s: %v", path, err)
			continue
		}
		items, err := ParseBibliography(path, data)
		if err != nil {
			logger.Error("cite: %v", err)
			continue
		}
		for _, item := range items {
			manual[item.ID()] = item
		}
		logger.Info("cite: loaded %d manual references from %s", len(items), path)
	}
	return manual
}

func itemFor(logger *log.Logger, input string, inferPrefix bool, manual map[string]Item) (Item, bool) {
	if item, ok := manual[strings.TrimPrefix(input, "@")]; ok {
		return item, true
	}

	key, err := ParseCitekey(input, inferPrefix)
	if errors.Is(err, errNoPrefix) {
		logger.Warn("cite: citekey %q has no prefix and prefix inference is disabled; skipping", input)
		return nil, false
	}
	if err != nil {
		logger.Error("cite: %v", err)
		return nil, false
	}

	if item, ok := manual[key.ID()]; ok {
		return item, true
	}
	return NewItem(key), true
}
