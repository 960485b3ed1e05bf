package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huimingz/semiauto-go/internal/commit"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt for the staged changes",
	Long: `Print the exact prompt semiauto would send for the current staged diff.

No API configuration is needed: nothing is sent and no commit is created.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	generator, err := commit.NewGenerator(commit.GeneratorOptions{
		GitExecutor: newExecutor(cwd),
		Output:      cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	p, err := generator.BuildPrompt(cmd.Context())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Render())
	return err
}
