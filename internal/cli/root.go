package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/huimingz/semiauto-go/internal/commit"
	"github.com/huimingz/semiauto-go/internal/config"
	"github.com/huimingz/semiauto-go/internal/git"
	"github.com/huimingz/semiauto-go/internal/llm"
	"github.com/huimingz/semiauto-go/internal/log"
	"github.com/huimingz/semiauto-go/internal/ui"
)

var (
	// Global flags
	debugMode bool

	// settings reads SEMI_AUTO_* from the environment, with --api-mode on top
	settings = config.New()

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// Collaborators, replaced in tests
var (
	newExecutor = func(workDir string) git.Executor {
		return git.NewExecutor(workDir)
	}
	newCompleter = func(ctx context.Context, cfg config.Config) (llm.Completer, error) {
		return llm.NewCompleterFactory().Create(ctx, cfg)
	}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "semiauto",
	Short: "Draft a commit message for your staged changes",
	Long: `semiauto sends the staged diff (git diff --cached) to a completion
service and opens your editor with the generated commit message.

Required environment variables:
  SEMI_AUTO_API_KEY     API key for the completion service
  SEMI_AUTO_API_URL     Base URL of the OpenAI-compatible API
  SEMI_AUTO_API_MODEL   Model name to request

Optional:
  SEMI_AUTO_API_MODE    completion (default) or chat`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runCommit,
}

// Execute runs the root command, reports any error and returns it
func Execute() error {
	ctx, stop := interruptContext(context.Background())
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().String("api-mode", config.ModeCompletion,
		fmt.Sprintf("Completion API to call %v (overrides %s)", config.SupportedModes(), config.EnvName(config.KeyAPIMode)))

	// BindPFlag only fails on a nil flag
	_ = settings.BindPFlag(config.KeyAPIMode, rootCmd.PersistentFlags().Lookup("api-mode"))
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Resolve configuration before touching git or the network
	cfg, err := config.Load(settings)
	if err != nil {
		return err
	}

	log.DebugConfig("Configuration", cfg.Redacted())

	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	completer, err := newCompleter(ctx, *cfg)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	generator, err := commit.NewGenerator(commit.GeneratorOptions{
		GitExecutor: newExecutor(cwd),
		Completer:   completer,
		Printer:     ui.NewPrinter(cmd.ErrOrStderr(), ui.WithVerbose(debugMode)),
		Output:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	result, err := generator.Run(ctx)
	if err != nil {
		return err
	}

	log.Debug("Commit step finished with message of %d bytes", len(result.Message))
	return nil
}

// reportError prints precondition failures verbatim to out and everything
// else through the error log, with a hint on errOut when one applies
func reportError(out, errOut io.Writer, err error) {
	if commit.IsAbort(err) {
		_ = ui.NewPrinter(out).PrintLine(err.Error())
		return
	}

	if errors.Is(err, context.Canceled) {
		log.Warn("interrupted")
		return
	}

	log.Error("%v", err)
	if hint := llm.Hint(err); hint != "" {
		_ = ui.NewPrinter(errOut).PrintHint(hint)
	}
}
