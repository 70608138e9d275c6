package aws

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	internalAWS "github.com/vietdv277/stratus/internal/aws"
	internalConfig "github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/operation"
	"github.com/vietdv277/stratus/internal/ui"
	"github.com/vietdv277/stratus/pkg/provider"
)

// catalog holds every operation exposed under the aws command.
var catalog = internalAWS.NewCatalog()

// AWSCmd is the root command for AWS service operations
var AWSCmd = &cobra.Command{
	Use:   "aws",
	Short: "AWS service commands",
	Long: `Run AWS IoT Events and Amazon Machine Learning operations.

Every operation is a verb-noun command under its service. Results are
streamed page by page; list commands follow continuation tokens until the
service has no more results or --max-items is reached.

Examples:
  stratus aws ml get-ml-model-list --max-items 50
  stratus aws ml get-ml-model ml-abc123 --select MLModelType
  stratus aws iotevents get-input motor-input
  stratus aws iotevents remove-input motor-input --force
  stratus aws operations ml`,
}

var operationsCmd = &cobra.Command{
	Use:     "operations [service]",
	Aliases: []string{"ops"},
	Short:   "List the available operations",
	Long: `List the operations of every service, or of one service.

Examples:
  stratus aws operations
  stratus aws operations iotevents`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: catalog.Services(),
	RunE:      runOperations,
}

func init() {
	for _, svc := range catalog.Services() {
		AWSCmd.AddCommand(newServiceCommand(svc, catalog.List(svc), runOperation))
	}
	AWSCmd.AddCommand(operationsCmd)
}

func newServiceCommand(service string, ops []*operation.OperationDescriptor, run runFunc) *cobra.Command {
	title := internalAWS.ServiceTitles[service]
	if title == "" {
		title = service
	}
	cmd := &cobra.Command{
		Use:   service,
		Short: title + " operations",
		Long: fmt.Sprintf(`%s operations.

Examples:
  stratus aws operations %s`, title, service),
	}
	for _, d := range ops {
		cmd.AddCommand(newOperationCommand(d, run))
	}
	return cmd
}

// ApplyAliases adds the command aliases configured in cfg.
func ApplyAliases(cfg *internalConfig.Config) {
	if cfg == nil {
		return
	}
	for _, svcCmd := range AWSCmd.Commands() {
		for _, opCmd := range svcCmd.Commands() {
			for _, alias := range cfg.CommandAliases(svcCmd.Name(), opCmd.Name()) {
				if !slices.Contains(opCmd.Aliases, alias) {
					opCmd.Aliases = append(opCmd.Aliases, alias)
				}
			}
		}
	}
}

func runOperations(cmd *cobra.Command, args []string) error {
	service := ""
	if len(args) == 1 {
		service = args[0]
	}

	ops := catalog.List(service)
	if len(ops) == 0 {
		return fmt.Errorf("%w: %q (available: %s)", provider.ErrNotSupported, service, strings.Join(catalog.Services(), ", "))
	}

	t := &ui.Table{Headers: []string{"Command", "Service", "API", "Paged", "Summary"}}
	for _, d := range ops {
		command := d.Command()
		if d.Mutating {
			command += " *"
		}
		paged := ""
		if d.Paging != nil {
			paged = "yes"
		}
		t.Rows = append(t.Rows, []string{command, d.Service, d.Name, paged, d.Summary})
	}

	out := cmd.OutOrStdout()
	if err := t.Render(out); err != nil {
		return err
	}
	ui.PrintCount(out, len(ops), "operation")
	fmt.Fprintln(out, ui.HintStyle.Render("  * asks for confirmation unless --force is given"))
	return nil
}
