package process

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/log"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func setupContent(t *testing.T) (content, output string) {
	t.Helper()
	root := t.TempDir()
	content = filepath.Join(root, "content")
	output = filepath.Join(root, "output")
	writeFile(t, filepath.Join(content, "02.intro.md"), "## Introduction\n\nText.\n\n")
	writeFile(t, filepath.Join(content, "01.abstract.md"), "## Abstract\n")
	writeFile(t, filepath.Join(content, "metadata.yaml"), "title: ignored\n")
	return content, output
}

func options(values map[string]any) dispatchers.Options {
	return dispatchers.NewOptions(values)
}

func TestSplitVariablesPath(t *testing.T) {
	tests := []struct {
		value, ns, path string
	}{
		{"vars.json", "", "vars.json"},
		{"stats=build/stats.json", "stats", "build/stats.json"},
		{"_x1=a.toml", "_x1", "a.toml"},
		{"1bad=a.json", "", "1bad=a.json"},
		{"https://example.com/v.json?a=b", "", "https://example.com/v.json?a=b"},
	}
	for _, tt := range tests {
		ns, path := SplitVariablesPath(tt.value)
		require.Equal(t, tt.ns, ns, tt.value)
		require.Equal(t, tt.path, path, tt.value)
	}
}

func TestParseVariables(t *testing.T) {
	vars, err := ParseVariables("v.toml", []byte("title = \"Rootstock\"\n[stats]\nwords = 12\n"))
	require.NoError(t, err)
	require.Equal(t, "Rootstock", vars["title"])

	vars, err = ParseVariables("v.yml", []byte("title: Rootstock\n"))
	require.NoError(t, err)
	require.Equal(t, "Rootstock", vars["title"])

	vars, err = ParseVariables("v.json", []byte(`{"n": 3}`))
	require.NoError(t, err)
	require.Equal(t, float64(3), vars["n"])

	vars, err = ParseVariables("variables.txt", []byte(`{"title": "Rootstock"}`))
	require.NoError(t, err, "unknown extensions are read as JSON")
	require.Equal(t, "Rootstock", vars["title"])

	vars, err = ParseVariables("variables", []byte(`{"n": 1}`))
	require.NoError(t, err)
	require.Equal(t, float64(1), vars["n"])

	_, err = ParseVariables("v.ini", []byte("title = Rootstock\n"))
	require.Error(t, err)

	_, err = ParseVariables("v.json", []byte("{"))
	require.Error(t, err)
}

func TestRun_AssemblesManuscript(t *testing.T) {
	content, output := setupContent(t)
	varsDir := t.TempDir()
	writeFile(t, filepath.Join(varsDir, "a.json"), `{"title": "Draft", "lang": "en"}`)
	writeFile(t, filepath.Join(varsDir, "b.toml"), "title = \"Final\"\n")
	writeFile(t, filepath.Join(varsDir, "stats.yaml"), "words: 42\n")

	var stderr bytes.Buffer
	logger := log.New(&stderr, log.LevelWarning)
	opts := options(map[string]any{
		"content_directory": content,
		"output_directory":  output,
		"skip_citations":    true,
		"template_variables_path": []string{
			filepath.Join(varsDir, "a.json"),
			filepath.Join(varsDir, "b.toml"),
			"stats=" + filepath.Join(varsDir, "stats.yaml"),
		},
	})

	require.NoError(t, run(logger, opts, DefaultDeps()))
	require.False(t, logger.Monitor().HasFired())
	require.Empty(t, stderr.String())

	manuscript, err := os.ReadFile(filepath.Join(output, "manuscript.md"))
	require.NoError(t, err)
	require.Equal(t, "## Abstract\n\n## Introduction\n\nText.\n", string(manuscript))

	data, err := os.ReadFile(filepath.Join(output, "variables.json"))
	require.NoError(t, err)
	var vars map[string]any
	require.NoError(t, json.Unmarshal(data, &vars))
	require.Equal(t, "Final", vars["title"])
	require.Equal(t, "en", vars["lang"])
	require.Equal(t, map[string]any{"words": float64(42)}, vars["stats"])
}

func TestRun_BadVariablesFileLogsError(t *testing.T) {
	content, output := setupContent(t)

	var stderr bytes.Buffer
	logger := log.New(&stderr, log.LevelWarning)
	opts := options(map[string]any{
		"content_directory":       content,
		"output_directory":        output,
		"skip_citations":          true,
		"template_variables_path": []string{filepath.Join(t.TempDir(), "missing.json")},
	})

	require.NoError(t, run(logger, opts, DefaultDeps()))
	require.True(t, logger.Monitor().HasFired())
	require.Contains(t, stderr.String(), "## ERROR\nprocess: could not read template variables")

	_, err := os.Stat(filepath.Join(output, "manuscript.md"))
	require.NoError(t, err, "processing continues after a logged error")
}

func TestRun_WithoutSkipCitationsLogsError(t *testing.T) {
	content, output := setupContent(t)

	var stderr bytes.Buffer
	logger := log.New(&stderr, log.LevelWarning)
	opts := options(map[string]any{
		"content_directory": content,
		"output_directory":  output,
		"skip_citations":    false,
	})

	require.NoError(t, run(logger, opts, DefaultDeps()))
	require.True(t, logger.Monitor().HasFired())
}

func TestRun_MissingContentDirectoryIsFatal(t *testing.T) {
	var stderr bytes.Buffer
	logger := log.New(&stderr, log.LevelWarning)
	opts := options(map[string]any{
		"content_directory": filepath.Join(t.TempDir(), "nope"),
		"output_directory":  filepath.Join(t.TempDir(), "output"),
		"skip_citations":    true,
	})

	err := run(logger, opts, DefaultDeps())
	require.ErrorContains(t, err, "read content directory")
}

func TestRun_ClearsRequestsCache(t *testing.T) {
	content, output := setupContent(t)
	cache := filepath.Join(t.TempDir(), "cache")
	writeFile(t, filepath.Join(cache, "requests.sqlite"), "x")

	var stderr bytes.Buffer
	logger := log.New(&stderr, log.LevelInfo)
	opts := options(map[string]any{
		"content_directory":    content,
		"output_directory":     output,
		"skip_citations":       true,
		"cache_directory":      cache,
		"clear_requests_cache": true,
	})

	require.NoError(t, run(logger, opts, DefaultDeps()))
	_, err := os.Stat(cache)
	require.True(t, os.IsNotExist(err))
	require.Contains(t, stderr.String(), "## INFO\nprocess: cleared requests cache")
}
