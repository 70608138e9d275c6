package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/ui"
)

var contextsCmd = &cobra.Command{
	Use:     "contexts",
	Aliases: []string{"ctx"},
	Short:   "List all configured contexts",
	Long: `List all configured contexts.

The current active context is marked with an asterisk (*).

Examples:
  stratus contexts
  stratus ctx`,
	RunE: runContexts,
}

func init() {
	rootCmd.AddCommand(contextsCmd)
}

func runContexts(cmd *cobra.Command, args []string) error {
	contexts, current, err := config.ListContexts()
	if err != nil {
		return fmt.Errorf("failed to list contexts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(contexts) == 0 {
		fmt.Fprintln(out, "No contexts configured.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Add a context with:")
		fmt.Fprintln(out, "  stratus use add prod --profile <profile> --region <region>")
		return nil
	}

	if err := ui.PrintContextTable(out, contexts, current); err != nil {
		return err
	}

	summary := fmt.Sprintf("  %d contexts configured", len(contexts))
	if current != "" {
		summary += ", current: " + ui.SuccessStyle.Render(current)
	}
	fmt.Fprintln(out, summary)
	return nil
}

// completeContexts completes the configured context names.
func completeContexts(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	contexts, _, err := config.ListContexts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return config.SortedContextNames(contexts), cobra.ShellCompDirectiveNoFileComp
}
