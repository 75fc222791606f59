package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manubot/manubot/internal/log"
	"github.com/manubot/manubot/internal/usage"
)

func requireUsageError(t *testing.T, err error, kind usage.ErrorKind) *usage.Error {
	t.Helper()
	require.Error(t, err)
	ue, ok := err.(*usage.Error)
	require.True(t, ok, "expected *usage.Error, got %T", err)
	require.Equal(t, kind, ue.Kind, ue.Message)
	return ue
}

func TestParse_MissingSubcommand(t *testing.T) {
	reg := newTestRegistry(t)

	for _, args := range [][]string{nil, {}, {"--no-color"}, {"--"}} {
		_, err := Parse(args, reg)
		requireUsageError(t, err, usage.ErrMissingSubcommand)
	}
}

func TestParse_UnknownSubcommand(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := Parse([]string{"cit", "10.1/doi"}, reg)
	ue := requireUsageError(t, err, usage.ErrUnknownSubcommand)
	require.Contains(t, ue.Message, "'cit'")
	require.Contains(t, ue.Message, "cite")

	_, err = Parse([]string{"publish"}, reg)
	requireUsageError(t, err, usage.ErrUnknownSubcommand)
}

func TestParse_CiteDefaults(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"cite", "10.1/doi"}, reg)
	require.NoError(t, err)
	require.Equal(t, "cite", inv.Subcommand)
	require.Equal(t, "cite.Command", inv.HandlerID)
	require.Equal(t, log.LevelWarning, inv.LogLevel)
	require.False(t, inv.ShowHelp)
	require.False(t, inv.ShowVersion)

	opts := inv.Options
	require.False(t, opts.Has("format"), "format is inferred by the handler when not given")
	require.False(t, opts.Has("output"))
	require.Equal(t, "https://citation-style.manubot.org/", opts.String("csl", ""))
	require.Equal(t, []string{}, opts.Strings("bibliography"))
	require.True(t, opts.Bool("infer_prefix"))
	require.Equal(t, []string{"10.1/doi"}, opts.Strings("citekeys"))
	require.Equal(t, "WARNING", opts.String(LogLevelKey, ""))
}

func TestParse_ProcessMissingRequired(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := Parse([]string{"process"}, reg)
	ue := requireUsageError(t, err, usage.ErrMissingRequiredOption)
	require.Equal(t, []string{"--content-directory", "--output-directory", "--skip-citations"}, ue.Options)
	require.Equal(t, 2, ue.GetExitCode())

	_, err = Parse([]string{"process", "--content-directory=content", "--skip-citations"}, reg)
	ue = requireUsageError(t, err, usage.ErrMissingRequiredOption)
	require.Equal(t, []string{"--output-directory"}, ue.Options)
}

func TestParse_MutuallyExclusive(t *testing.T) {
	reg := newTestRegistry(t)

	tests := [][]string{
		{"cite", "--yml", "--txt", "10.1/doi"},
		{"cite", "--format", "plain", "--md", "10.1/doi"},
		{"webpage", "--no-ots-cache", "--ots-cache", "cache"},
	}

	for _, args := range tests {
		_, err := Parse(args, reg)
		requireUsageError(t, err, usage.ErrMutuallyExclusive)
	}
}

func TestParse_RepeatedGroupMemberIsAllowed(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"cite", "--yml", "--yml", "x"}, reg)
	require.NoError(t, err)
	require.Equal(t, "cslyaml", inv.Options.String("format", ""))
}

func TestParse_FormatShorthands(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"cite", "--yml", "x"}, "cslyaml"},
		{[]string{"cite", "--txt", "x"}, "plain"},
		{[]string{"cite", "--md", "x"}, "markdown"},
		{[]string{"cite", "--format=jats", "x"}, "jats"},
		{[]string{"cite", "--format", "html", "x"}, "html"},
	}

	for _, tt := range tests {
		inv, err := Parse(tt.args, reg)
		require.NoError(t, err, tt.args)
		require.Equal(t, tt.want, inv.Options.String("format", ""), tt.args)
	}
}

func TestParse_InvalidValues(t *testing.T) {
	reg := newTestRegistry(t)

	tests := [][]string{
		{"cite", "--format", "bibtex", "x"},
		{"cite", "--output"},
		{"cite", "--log-level=LOUD", "x"},
		{"cite", "--output=", "x"},
		{"process", "--content-directory=c", "--output-directory=o", "--skip-citations=yes"},
	}

	for _, args := range tests {
		_, err := Parse(args, reg)
		requireUsageError(t, err, usage.ErrInvalidOptionValue)
	}
}

func TestParse_InvalidFlags(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := Parse([]string{"cite", "--nope", "x"}, reg)
	ue := requireUsageError(t, err, usage.ErrInvalidFlag)
	require.Equal(t, "cite", ue.Subcommand)

	_, err = Parse([]string{"--nope", "cite", "x"}, reg)
	requireUsageError(t, err, usage.ErrInvalidFlag)

	_, err = Parse([]string{"process", "--content-directory=c", "--output-directory=o", "--skip-citations", "extra"}, reg)
	requireUsageError(t, err, usage.ErrInvalidFlag)
}

func TestParse_MissingPositional(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := Parse([]string{"cite", "--yml"}, reg)
	ue := requireUsageError(t, err, usage.ErrMissingRequiredOption)
	require.Equal(t, []string{"citekeys"}, ue.Options)
}

func TestParse_Idempotent(t *testing.T) {
	reg := newTestRegistry(t)

	inputs := [][]string{
		{"cite", "--yml", "--bibliography", "a.json", "--bibliography=b.yaml", "10.1/doi", "pmid:123"},
		{"process", "--content-directory", "content/", "--output-directory=output", "--skip-citations", "--log-level", "DEBUG"},
		{"webpage", "--checkout", "--version", "abc123"},
	}

	for _, args := range inputs {
		first, err := Parse(args, reg)
		require.NoError(t, err, args)
		second, err := Parse(args, reg)
		require.NoError(t, err, args)
		require.Equal(t, first, second)
	}
}

func TestParse_LogLevel(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"cite", "--log-level=ERROR", "x"}, reg)
	require.NoError(t, err)
	require.Equal(t, log.LevelError, inv.LogLevel)

	inv, err = Parse([]string{"webpage", "--log-level", "DEBUG"}, reg)
	require.NoError(t, err)
	require.Equal(t, log.LevelDebug, inv.LogLevel)
}

func TestParse_VersionAndHelp(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"--version"}, reg)
	require.NoError(t, err)
	require.True(t, inv.ShowVersion)

	// --version is evaluated before the subcommand, whatever follows
	inv, err = Parse([]string{"--version", "nonsense"}, reg)
	require.NoError(t, err)
	require.True(t, inv.ShowVersion)

	inv, err = Parse([]string{"--help"}, reg)
	require.NoError(t, err)
	require.True(t, inv.ShowHelp)
	require.Empty(t, inv.Subcommand)

	inv, err = Parse([]string{"process", "-h"}, reg)
	require.NoError(t, err, "help wins over missing required options")
	require.True(t, inv.ShowHelp)
	require.Equal(t, "process", inv.Subcommand)
}

func TestParse_WebpageOptions(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"webpage"}, reg)
	require.NoError(t, err)
	require.False(t, inv.Options.Has("checkout"))
	require.False(t, inv.Options.Has("version"))
	require.False(t, inv.Options.Bool("no_ots_cache"))
	require.Equal(t, "ci/cache/ots", inv.Options.String("ots_cache", ""))

	// Subcommand-level --version is an ordinary option
	inv, err = Parse([]string{"webpage", "--version", "v1.2", "--checkout"}, reg)
	require.NoError(t, err)
	require.False(t, inv.ShowVersion)
	require.Equal(t, "v1.2", inv.Options.String("version", ""))
	require.Equal(t, "gh-pages", inv.Options.String("checkout", ""))

	inv, err = Parse([]string{"webpage", "--checkout=upstream/gh-pages"}, reg)
	require.NoError(t, err)
	require.Equal(t, "upstream/gh-pages", inv.Options.String("checkout", ""))
}

func TestParse_OptionalValueRejectsEmpty(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := Parse([]string{"webpage", "--checkout="}, reg)
	ue := requireUsageError(t, err, usage.ErrInvalidOptionValue)
	require.Contains(t, ue.Message, "--checkout")
	require.Contains(t, ue.Message, "non-empty")
}

func TestParse_RepeatableAndGreedy(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"cite", "--bibliography", "a.json", "--bibliography=b.yaml", "x"}, reg)
	require.NoError(t, err)
	require.Equal(t, []string{"a.json", "b.yaml"}, inv.Options.Strings("bibliography"))
	require.Equal(t, []string{"x"}, inv.Options.Strings("citekeys"))

	inv, err = Parse([]string{"ai-revision", "--model-kwargs", "temperature=0.5", "max_tokens=100", "--content-directory", "content"}, reg)
	require.NoError(t, err)
	require.Equal(t, []string{"temperature=0.5", "max_tokens=100"}, inv.Options.Strings("model_kwargs"))
	require.Equal(t, "content", inv.Options.String("content_directory", ""))
}

func TestParse_PathsAreCleaned(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"process", "--content-directory=content/", "--output-directory", "./output//", "--skip-citations"}, reg)
	require.NoError(t, err)
	require.Equal(t, "content", inv.Options.String("content_directory", ""))
	require.Equal(t, "output", inv.Options.String("output_directory", ""))
	require.True(t, inv.Options.Bool("skip_citations"))
	require.Equal(t, []string{}, inv.Options.Strings("template_variables_path"))
	require.False(t, inv.Options.Has("cache_directory"))
}

func TestParse_StoreFalse(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"cite", "--no-infer-prefix", "x"}, reg)
	require.NoError(t, err)
	require.True(t, inv.Options.Has("infer_prefix"))
	require.False(t, inv.Options.Bool("infer_prefix"))
}

func TestParse_DoubleDashEndsFlags(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"cite", "--txt", "--", "-odd-key", "--yml"}, reg)
	require.NoError(t, err)
	require.Equal(t, "plain", inv.Options.String("format", ""))
	require.Equal(t, []string{"-odd-key", "--yml"}, inv.Options.Strings("citekeys"))
}

func TestParse_NoColor(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := Parse([]string{"--no-color", "cite", "x"}, reg)
	require.NoError(t, err)
	require.True(t, inv.NoColor)
	require.Equal(t, "cite", inv.Subcommand)
}
