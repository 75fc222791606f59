// Package webpage implements the webpage subcommand: it publishes the
// rendered manuscript outputs into a versioned webpage directory.
package webpage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manubot/manubot/internal/dispatchers"
	"github.com/manubot/manubot/internal/git"
	"github.com/manubot/manubot/internal/handlers"
	"github.com/manubot/manubot/internal/log"
)

const (
	defaultVersion = "local"
	latestDir      = "latest"
)

// Outputs are the rendered files copied into each version directory.
var Outputs = []string{"manuscript.html", "manuscript.pdf"}

// Layout names the directories the handler reads and writes.
type Layout struct {
	RepoDir    string
	OutputDir  string
	WebpageDir string
}

// DefaultLayout is relative to the manuscript repository root.
var DefaultLayout = Layout{
	RepoDir:    ".",
	OutputDir:  "output",
	WebpageDir: "webpage",
}

func init() {
	handlers.RegisterFunc("webpage", "Command", Command)
}

// Command is the webpage handler.
func Command(logger *log.Logger, opts dispatchers.Options) error {
	return run(logger, opts, DefaultLayout)
}

func run(logger *log.Logger, opts dispatchers.Options, layout Layout) error {
	if opts.Has("checkout") {
		ref := opts.String("checkout", "")
		if err := checkoutVersions(logger, ref, layout); err != nil {
			return fmt.Errorf("checkout %s: %w", ref, err)
		}
	}
	if opts.Bool("timestamp") {
		logger.Warn("webpage: --timestamp is not supported in this build; OpenTimestamps are not created")
	}
	if opts.Bool("no_ots_cache") {
		logger.Debug("webpage: timestamp cache disabled")
	} else {
		logger.Debug("webpage: timestamp cache at %s", opts.String("ots_cache", ""))
	}

	version := opts.String("version", "")
	if version == "" {
		version = defaultVersion
	}
	if version == latestDir || filepath.Base(version) != version {
		return fmt.Errorf("invalid webpage version %q", version)
	}

	versionDir := filepath.Join(layout.WebpageDir, "v", version)
	latest := filepath.Join(layout.WebpageDir, "v", latestDir)

	if err := os.RemoveAll(latest); err != nil {
		return fmt.Errorf("clear %s: %w", latest, err)
	}
	for _, dir := range []string{versionDir, latest} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	copied := 0
	for _, name := range Outputs {
		src := filepath.Join(layout.OutputDir, name)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			logger.Warn("webpage: %s does not exist; skipping", src)
			continue
		}
		ok := true
		for _, dir := range []string{versionDir, latest} {
			if err := copyFile(src, filepath.Join(dir, name)); err != nil {
				logger.Error("webpage: could not copy %s: %v", src, err)
				ok = false
			}
		}
		if ok {
			copied++
		}
	}

	logger.Info("webpage: published %d outputs as version %s", copied, version)
	return nil
}

// checkoutVersions replaces webpage/v with the v directory of ref,
// fetching ref first when it names a remote branch.
func checkoutVersions(logger *log.Logger, ref string, layout Layout) error {
	root, err := git.RepoRoot(layout.RepoDir)
	if err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}

	if remote, branch, ok := git.SplitRemote(root, ref); ok {
		logger.Info("webpage: fetching %s from %s", branch, remote)
		if err := git.Fetch(root, remote, branch); err != nil {
			return err
		}
	}

	workTree, err := filepath.Abs(layout.WebpageDir)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(filepath.Join(workTree, "v")); err != nil {
		return err
	}
	if err := os.MkdirAll(workTree, 0755); err != nil {
		return err
	}

	if err := git.CheckoutInto(root, workTree, ref, "v"); err != nil {
		return err
	}
	logger.Info("webpage: checked out existing versions from %s", ref)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
