package commit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huimingz/semiauto-go/internal/git"
	"github.com/huimingz/semiauto-go/internal/llm"
	"github.com/huimingz/semiauto-go/internal/log"
	"github.com/huimingz/semiauto-go/internal/prompt"
	"github.com/huimingz/semiauto-go/internal/ui"
)

// AbortError is a precondition failure. Message is shown to the user as is.
type AbortError struct {
	Message string
}

func (e *AbortError) Error() string {
	return e.Message
}

// Precondition failures
var (
	ErrNotARepository = &AbortError{Message: "You are not in a Git repository."}
	ErrNothingStaged  = &AbortError{Message: "There are no staged commits."}
)

// IsAbort reports whether err is a precondition failure
func IsAbort(err error) bool {
	var abort *AbortError
	return errors.As(err, &abort)
}

// Spinner brackets the completion call
type Spinner interface {
	Start()
	Succeed(text string)
	Stop()
}

// Result describes a finished run
type Result struct {
	Message string
	Stats   *ui.ExecutionStats
}

// GeneratorOptions contains configuration for Generator
type GeneratorOptions struct {
	GitExecutor git.Executor  // Git executor for running git commands
	Completer   llm.Completer // Completion client, only needed by Run
	Printer     *ui.Printer   // Printer for stats (optional)
	Spinner     Spinner       // Progress indicator (optional)
	Output      io.Writer     // Output writer for the default spinner
}

// Generator drives guard, prompt, completion and commit in order
type Generator struct {
	git       git.Executor
	completer llm.Completer
	printer   *ui.Printer
	spinner   Spinner
}

// NewGenerator creates a Generator
func NewGenerator(opts GeneratorOptions) (*Generator, error) {
	if opts.GitExecutor == nil {
		return nil, fmt.Errorf("git executor is required")
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}

	spinner := opts.Spinner
	if spinner == nil {
		spinner = ui.NewSpinner(output, "Processing")
	}

	printer := opts.Printer
	if printer == nil {
		printer = ui.NewPrinter(output, ui.WithVerbose(log.IsDebugMode()))
	}

	return &Generator{
		git:       opts.GitExecutor,
		completer: opts.Completer,
		printer:   printer,
		spinner:   spinner,
	}, nil
}

// Check verifies the working directory is a repository with staged files
func (g *Generator) Check(ctx context.Context) error {
	if !g.git.IsRepository(ctx) {
		return ErrNotARepository
	}

	names, err := g.git.StagedFileNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list staged files: %w", err)
	}
	if len(names) == 0 {
		return ErrNothingStaged
	}

	log.Debug("Staged files: %s", strings.Join(names, ", "))
	return nil
}

// BuildPrompt runs Check and builds the prompt from the staged diff
func (g *Generator) BuildPrompt(ctx context.Context) (prompt.Prompt, error) {
	if err := g.Check(ctx); err != nil {
		return prompt.Prompt{}, err
	}

	diff, err := g.git.DiffCached(ctx)
	if err != nil {
		return prompt.Prompt{}, fmt.Errorf("failed to get staged changes: %w", err)
	}

	if strings.TrimSpace(diff) == "" {
		log.Warn("staged files produce an empty diff, the model will only see the instructions")
	}

	return prompt.Build(diff), nil
}

// Run generates a message for the staged changes and opens the commit editor
// with it
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if g.completer == nil {
		return nil, fmt.Errorf("completer is required")
	}

	p, err := g.BuildPrompt(ctx)
	if err != nil {
		return nil, err
	}

	log.Debug("Sending prompt via %s API", g.completer.Name())

	startTime := time.Now()
	g.spinner.Start()
	completion, err := g.completer.Complete(ctx, p)
	if err != nil {
		g.spinner.Stop()
		return nil, fmt.Errorf("failed to generate commit message: %w", err)
	}
	g.spinner.Succeed("Done")

	stats := &ui.ExecutionStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     completion.PromptTokens,
		CompletionTokens: completion.CompletionTokens,
		TotalTokens:      completion.TotalTokens,
	}
	log.DebugDuration("Completion", stats.Duration())
	log.DebugTokenUsage(stats.PromptTokens, stats.CompletionTokens, stats.TotalTokens)
	_ = g.printer.PrintStats(stats)

	if err := g.git.Commit(ctx, completion.Text); err != nil {
		return nil, err
	}

	return &Result{
		Message: completion.Text,
		Stats:   stats,
	}, nil
}
