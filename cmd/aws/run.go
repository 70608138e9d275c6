package aws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	internalAWS "github.com/vietdv277/stratus/internal/aws"
	internalConfig "github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/operation"
	"github.com/vietdv277/stratus/internal/ui"
	"github.com/vietdv277/stratus/pkg/provider"
)

// ErrOperationFailed is returned when the service rejected a call. The error
// itself has already been written to stderr.
var ErrOperationFailed = errors.New("operation failed")

// serviceClient returns the SDK client an operation is invoked on.
var serviceClient = func(ctx context.Context, service string) (any, error) {
	profile, region, err := Target()
	if err != nil {
		return nil, err
	}

	client, err := internalAWS.NewClient(ctx,
		internalAWS.WithProfile(profile),
		internalAWS.WithRegion(region),
		internalAWS.WithLogger(slog.Default(), viper.GetString("log-level") == "debug"),
	)
	if err != nil {
		return nil, err
	}
	if client.Region() == "" {
		return nil, fmt.Errorf("%w: no AWS region, set --region, a context region or AWS_REGION", provider.ErrNotConfigured)
	}
	return client.Service(service)
}

// confirmer returns the prompt used for mutating operations.
var confirmer = func() operation.Confirmer {
	return ui.NewPrompt()
}

// Target resolves the AWS profile and region to use. Flags win over the
// selected context, which wins over AWS_PROFILE, AWS_REGION and
// AWS_DEFAULT_REGION.
func Target() (profile, region string, err error) {
	profile = viper.GetString("profile")
	region = viper.GetString("region")

	var ctx *internalConfig.Context
	if name := viper.GetString("context"); name != "" {
		ctx, err = internalConfig.GetContext(name)
	} else {
		ctx, _, err = internalConfig.GetCurrentContext()
	}
	if err != nil {
		return "", "", err
	}

	if ctx != nil {
		if profile == "" {
			profile = ctx.Profile
		}
		if region == "" {
			region = ctx.Region
		}
	}
	if profile == "" {
		profile = os.Getenv("AWS_PROFILE")
	}
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
	return profile, region, nil
}

func runOperation(cmd *cobra.Command, d *operation.OperationDescriptor, args operation.Args) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out, err := ui.NewOutput(viper.GetString("output"), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	binder := operation.Binder{Strict: viper.GetBool("strict")}
	if _, err := binder.Bind(d, args); err != nil {
		return err
	}

	client, err := serviceClient(ctx, d.Service)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", d.Service, err)
	}

	p := &operation.Pipeline{
		Binder:  binder,
		Confirm: confirmer(),
		Logger:  slog.Default(),
	}
	sum, err := p.Execute(ctx, d, client, args, out)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	if sum.Skipped {
		fmt.Fprintln(errOut, ui.MutedStyle.Render("Cancelled."))
		return nil
	}
	if sum.NextToken != "" {
		fmt.Fprintf(errOut, "%s --%s %s\n", ui.HintStyle.Render("More results available, continue with"), flagNextToken, sum.NextToken)
	}
	if sum.Failed {
		return ErrOperationFailed
	}
	return nil
}
