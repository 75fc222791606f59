// Package process implements the process subcommand: it assembles the
// manuscript sources and template variables into the output directory.
package process

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
)

const (
	manuscriptFile = "manuscript.md"
	variablesFile  = "variables.json"
)

func init() {
	handlers.RegisterFunc("process", "Command", Command)
}

// Command is the process handler.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return run(logger, opts, DefaultDeps())
}

func run(logger *log.Logger, opts dispatchers.Options, deps Deps) error {
	contentDir := opts.String("content_directory", "")
	outputDir := opts.String("output_directory", "")

	if !opts.Bool("skip_citations") {
		logger.Error("process: citation processing is not available in this build; rerun with --skip-citations")
		return nil
	}

	if cacheDir := opts.String("cache_directory", ""); cacheDir != "" && opts.Bool("clear_requests_cache") {
		if err := deps.RemoveAll(cacheDir); err != nil {
			logger.Warn("process: could not clear requests cache %s: %v", cacheDir, err)
		} else {
			logger.Info("process: cleared requests cache %s", cacheDir)
		}
	}
	if opts.Bool("skip_remote") {
		logger.Debug("process: remote template variables skipped")
	}

	if err := deps.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	sections, err := readSections(logger, contentDir, deps)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		logger.Warn("process: no markdown files found in %s", contentDir)
	}

	manuscript := filepath.Join(outputDir, manuscriptFile)
	if err := deps.WriteFile(manuscript, joinSections(sections), 0644); err != nil {
		return fmt.Errorf("write %s: %w", manuscript, err)
	}
	logger.Info("process: wrote %d sections to %s", len(sections), manuscript)

	vars := loadVariables(logger, opts.Strings("template_variables_path"), deps)
	data, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return fmt.Errorf("encode variables: %w", err)
	}
	variables := filepath.Join(outputDir, variablesFile)
	if err := deps.WriteFile(variables, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", variables, err)
	}
	logger.Info("process: wrote %s", variables)

	return nil
}

type section struct {
	name string
	text []byte
}

func readSections(logger *log.Logger, dir string, deps Deps) ([]section, error) {
	entries, err := deps.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	sections := make([]section, 0, len(names))
	for _, name := range names {
		text, err := deps.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Error("process: could not read %s: %v", name, err)
			continue
		}
		logger.Debug("process: including %s", name)
		sections = append(sections, section{name: name, text: text})
	}
	return sections, nil
}

func joinSections(sections []section) []byte {
	var buf bytes.Buffer
	for i, s := range sections {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.Write(bytes.TrimRight(s.text, "\n"))
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

func loadVariables(logger *log.Logger, values []string, deps Deps) map[string]any {
	vars := make(map[string]any)
	for _, value := range values {
		namespace, path := SplitVariablesPath(value)
		data, err := deps.ReadFile(path)
		if err != nil {
			logger.Error("process: could not read template variables %s: %v", path, err)
			continue
		}
		parsed, err := ParseVariables(path, data)
		if err != nil {
			logger.Error("process: %v", err)
			continue
		}
		merge(vars, namespace, parsed)
		logger.Debug("process: loaded %d template variables from %s", len(parsed), path)
	}
	return vars
}
