package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/ui"
)

var useCmd = &cobra.Command{
	Use:   "use [context-name]",
	Short: "Set the active context",
	Long: `Set the active context for subsequent commands.

A context is a named AWS profile and region. Once set, every service command
runs with that profile and region unless --profile, --region or --context
is given. Without a name an interactive selector is shown.

Examples:
  stratus use prod          # Switch to the prod context
  stratus use               # Pick a context interactively`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeContexts,
	RunE:              runUse,
}

var useAddCmd = &cobra.Command{
	Use:   "add <context-name>",
	Short: "Add a new context",
	Long: `Add a new context configuration, or replace an existing one.

Examples:
  stratus use add prod --profile prod-sso --region eu-west-1
  stratus use add sandbox --region us-east-1`,
	Args: cobra.ExactArgs(1),
	RunE: runUseAdd,
}

var useDeleteCmd = &cobra.Command{
	Use:   "delete <context-name>",
	Short: "Delete a context",
	Long: `Delete a context configuration.

Examples:
  stratus use delete old-env`,
	Args:    cobra.ExactArgs(1),
	Aliases: []string{"rm", "remove"},
	RunE:    runUseDelete,
}

var (
	// Flags for use add
	useAddProfile string
	useAddRegion  string
)

func init() {
	rootCmd.AddCommand(useCmd)
	useCmd.AddCommand(useAddCmd)
	useCmd.AddCommand(useDeleteCmd)

	// Flags for use add. They shadow the global --profile and --region.
	useAddCmd.Flags().StringVar(&useAddProfile, "profile", "", "AWS profile name")
	useAddCmd.Flags().StringVar(&useAddRegion, "region", "", "AWS region")
	_ = useAddCmd.RegisterFlagCompletionFunc("profile", completeProfiles)
}

// completeProfiles completes the profiles of the shared AWS config files.
func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	profiles, err := aws.ListProfiles()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]cobra.Completion, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func runUse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	contexts, current, err := config.ListContexts()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("no context name given and stdin is not a terminal")
		}
		name, err = ui.SelectContext(contexts, current)
		if errors.Is(err, ui.ErrSelectionCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if _, ok := contexts[name]; !ok {
		fmt.Fprintf(out, "Context %q not found.\n\n", name)
		if len(contexts) == 0 {
			fmt.Fprintln(out, "No contexts configured. Add one with:")
			fmt.Fprintln(out, "  stratus use add prod --profile <profile> --region <region>")
			return nil
		}
		fmt.Fprintln(out, "Available contexts:")
		for _, n := range config.SortedContextNames(contexts) {
			marker := "  "
			if n == current {
				marker = "* "
			}
			fmt.Fprintf(out, "  %s%s\n", marker, n)
		}
		return nil
	}

	if err := config.SetCurrentContext(name); err != nil {
		return err
	}

	ctx := contexts[name]
	fmt.Fprintf(out, "Switched to context: %s\n", ui.SuccessStyle.Render(name))
	if ctx.Profile != "" {
		fmt.Fprintf(out, "  Profile:  %s\n", ctx.Profile)
	}
	if ctx.Region != "" {
		fmt.Fprintf(out, "  Region:   %s\n", ctx.Region)
	}
	return nil
}

func runUseAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	if useAddProfile == "" && useAddRegion == "" {
		return fmt.Errorf("provide --profile, --region or both")
	}
	if useAddProfile != "" {
		if p, ok := aws.FindProfile(useAddProfile); !ok {
			slog.Warn("profile not found in the shared AWS config files", "profile", useAddProfile)
		} else if useAddRegion == "" && p.Region != "" {
			slog.Info("using the profile region", "profile", p.Name, "region", p.Region)
		}
	}

	ctx := &config.Context{
		Profile: useAddProfile,
		Region:  useAddRegion,
	}
	if err := config.AddContext(name, ctx); err != nil {
		return fmt.Errorf("failed to add context: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Context added: %s\n", name)
	fmt.Fprintln(out, "\nTo use this context:")
	fmt.Fprintf(out, "  stratus use %s\n", name)
	return nil
}

func runUseDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := config.DeleteContext(name); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Context deleted: %s\n", name)
	return nil
}
