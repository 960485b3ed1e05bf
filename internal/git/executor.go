package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/huimingz/semiauto-go/internal/log"
)

// Executor defines the git operations the commit flow depends on
type Executor interface {
	// IsRepository reports whether the working directory is inside a work tree
	IsRepository(ctx context.Context) bool

	// StagedFileNames lists the files with staged changes
	StagedFileNames(ctx context.Context) ([]string, error)

	// DiffCached returns the diff of staged changes, untrimmed
	DiffCached(ctx context.Context) (string, error)

	// Commit runs an interactive commit with message pre-filled in the editor
	Commit(ctx context.Context, message string) error
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// ExecutorOption configures a DefaultExecutor
type ExecutorOption func(*DefaultExecutor)

// WithStdio sets the streams attached to interactive commands
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) ExecutorOption {
	return func(e *DefaultExecutor) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string, opts ...ExecutorOption) *DefaultExecutor {
	e := &DefaultExecutor{
		workDir: workDir,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// runGit runs a git command and returns its raw stdout
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	log.DebugCommand("git", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}

// IsRepository runs git rev-parse --is-inside-work-tree
func (e *DefaultExecutor) IsRepository(ctx context.Context) bool {
	_, err := e.runGit(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		log.Debug("repository check failed: %v", err)
		return false
	}
	return true
}

// StagedFileNames returns the output of git diff --cached --name-only, one
// entry per line
func (e *DefaultExecutor) StagedFileNames(ctx context.Context) ([]string, error) {
	output, err := e.runGit(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(output, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// Commit runs git commit -e -m message attached to the executor's stdio so the
// user's editor can open. A non-zero exit from git, such as an aborted edit,
// is not reported; git has already told the user what happened. When ctx ends
// while git is running, the context error is returned.
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	args := []string{"commit", "-e", "-m", message}
	log.DebugCommand("git", args)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("git commit interrupted: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Debug("git commit exited with status %d", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run git commit: %w", err)
	}
	return nil
}
