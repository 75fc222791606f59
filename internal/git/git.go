// Package git runs the git commands the webpage subcommand needs.
package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"slices"
	"strings"

	"github.com/manubot/manubot/internal/log"
)

// refPattern accepts branch names, remote branches and commit hashes.
var refPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-./]+$`)

// IsValidRef reports whether ref is safe to pass to git as a revision.
func IsValidRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "-") || strings.Contains(ref, "..") {
		return false
	}
	return refPattern.MatchString(ref)
}

// IsAvailable reports whether a working git executable is on PATH.
func IsAvailable() bool {
	path, err := exec.LookPath("git")
	if err != nil {
		return false
	}
	return exec.Command(path, "--version").Run() == nil
}

func RepoRoot(path string) (string, error) {
	return runGit("-C", path, "rev-parse", "--show-toplevel")
}

// ListRemotes returns all remote names for a repository.
func ListRemotes(repoRoot string) ([]string, error) {
	out, err := runGit("-C", repoRoot, "remote")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// SplitRemote splits "upstream/gh-pages" into its remote and branch when
// the prefix names a configured remote.
func SplitRemote(repoRoot, ref string) (remote, branch string, ok bool) {
	remote, branch, found := strings.Cut(ref, "/")
	if !found || branch == "" {
		return "", "", false
	}
	remotes, err := ListRemotes(repoRoot)
	if err != nil || !slices.Contains(remotes, remote) {
		return "", "", false
	}
	return remote, branch, true
}

// Fetch fetches branch from remote.
func Fetch(repoRoot, remote, branch string) error {
	_, err := runGit("-C", repoRoot, "fetch", remote, branch)
	return err
}

// CheckoutInto writes paths from ref into workTree without switching
// branches, then unstages them so the index matches HEAD again.
func CheckoutInto(repoRoot, workTree, ref string, paths ...string) error {
	if !IsValidRef(ref) {
		return fmt.Errorf("invalid git ref %q", ref)
	}

	args := append([]string{"-C", repoRoot, "--work-tree=" + workTree, "checkout", ref, "--"}, paths...)
	if _, err := runGit(args...); err != nil {
		return err
	}

	args = append([]string{"-C", repoRoot, "reset", "--quiet", "HEAD", "--"}, paths...)
	_, err := runGit(args...)
	return err
}

func runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		log.Debug("git: command failed: git %s: %v", strings.Join(args, " "), err)
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, firstLine(msg))
		}
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
