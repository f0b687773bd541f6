package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes git subcommands with a hard timeout.
type Runner struct {
	Timeout time.Duration
}

func (r Runner) Git(ctx context.Context, dir string, args ...string) (string, error) {
	c := exec.CommandContext(ctx, "git", args...)
	c.Dir = dir
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Start(); err != nil {
		return "", formatGitError(args, err, stderr.String())
	}
	done := make(chan error, 1)
	go func() { done <- c.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return "", formatGitError(args, err, stderr.String())
		}
		return stdout.String(), nil
	case <-time.After(r.Timeout):
		_ = c.Process.Kill()
		<-done
		return "", formatGitError(args, fmt.Errorf("command timed out after %s", r.Timeout), stderr.String())
	case <-ctx.Done():
		_ = c.Process.Kill()
		<-done
		cause := ctx.Err()
		if cause == nil {
			cause = errors.New("context canceled")
		}
		return "", formatGitError(args, cause, stderr.String())
	}
}

func formatGitError(args []string, cause error, stderr string) error {
	cmd := strings.Join(args, " ")
	stderr = strings.TrimSpace(stderr)
	if stderr != "" {
		return fmt.Errorf("git %s: %w: %s", cmd, cause, stderr)
	}
	return fmt.Errorf("git %s: %w", cmd, cause)
}

// Repo exposes the staged-change queries the commit flow needs, scoped to a
// working tree path.
type Repo struct {
	path   string
	runner Runner
}

func New(path string) *Repo {
	return &Repo{path: path, runner: Runner{Timeout: 2 * time.Minute}}
}

// Root returns the top-level directory of the repository containing path.
func (r *Repo) Root(ctx context.Context) (string, error) {
	out, err := r.runner.Git(ctx, r.path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StagedDiff returns the staged diff in unified format with zero context lines.
func (r *Repo) StagedDiff(ctx context.Context) (string, error) {
	return r.runner.Git(ctx, r.path, "diff", "--cached", "--unified=0")
}

// StagedFiles returns the paths of all staged files.
func (r *Repo) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.runner.Git(ctx, r.path, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	var files []string
	for _, l := range lines {
		if l != "" {
			files = append(files, l)
		}
	}
	return files, nil
}
