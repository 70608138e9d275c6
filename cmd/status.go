package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	awscmd "github.com/vietdv277/stratus/cmd/aws"
	"github.com/vietdv277/stratus/internal/aws"
	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current context and authentication status",
	Long: `Display the current active context and verify that its AWS credentials
work.

Examples:
  stratus status
  stratus status --context prod`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	_, ctxName, err := config.GetCurrentContext()
	if err != nil {
		return fmt.Errorf("failed to get current context: %w", err)
	}
	if contextName != "" {
		ctxName = contextName
	}

	profile, region, err := awscmd.Target()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Status")
	fmt.Fprintln(out, ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Fprintln(out)

	if ctxName == "" {
		fmt.Fprintln(out, "Context:  "+ui.MutedStyle.Render("(not set)"))
	} else {
		fmt.Fprintf(out, "Context:  %s\n", ui.HeaderStyle.Render(ctxName))
	}
	fmt.Fprintf(out, "Profile:  %s\n", ui.NameStyle.Render(orDefault(profile, "default")))

	client, err := aws.NewClient(cmd.Context(), aws.WithProfile(profile), aws.WithRegion(region))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Region:   %s\n", orDefault(client.Region(), ui.MutedStyle.Render("(not set)")))
	fmt.Fprintln(out)

	// Try to get caller identity
	fmt.Fprint(out, "Auth:     ")
	identity, err := client.CallerIdentity(cmd.Context())
	if err != nil {
		fmt.Fprintln(out, ui.ErrorStyle.Render("✗ Not authenticated"))
		fmt.Fprintf(out, "          %s\n", ui.MutedStyle.Render(err.Error()))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "To authenticate:")
		fmt.Fprintf(out, "  aws sso login --profile %s\n", orDefault(profile, "default"))
		return nil
	}

	fmt.Fprintln(out, ui.SuccessStyle.Render("✓ Authenticated"))
	fmt.Fprintf(out, "Account:  %s\n", identity.Account)
	fmt.Fprintf(out, "User:     %s\n", identity.UserID)
	if identity.Arn != "" {
		fmt.Fprintf(out, "ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
	}

	if ctxName == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No context configured. Set one with:")
		fmt.Fprintln(out, "  stratus use add prod --profile <profile> --region <region>")
		fmt.Fprintln(out, "  stratus use prod")
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
