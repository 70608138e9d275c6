package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	awscmd "github.com/vietdv277/stratus/cmd/aws"
	"github.com/vietdv277/stratus/internal/config"
	"github.com/vietdv277/stratus/internal/ui"
)

var (
	// Global flags
	profile     string
	region      string
	contextName string
	output      string
	strict      bool
	logLevel    string

	// configErr is the error of loading the config file at startup.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "stratus",
	Short: "Stratus - command-line access to AWS IoT Events and Amazon Machine Learning",
	Long: `Stratus runs AWS IoT Events and Amazon Machine Learning operations from the
command line. Every API operation is a verb-noun command; list commands page
through results automatically and mutating commands ask before they run.

Context-Aware Commands:
  stratus use prod                    # Switch to the prod context
  stratus status                      # Show current context and auth status
  stratus contexts                    # List all configured contexts

Service Commands:
  stratus aws ml get-ml-model-list    # List ML models
  stratus aws iotevents get-input-list
  stratus aws operations              # List every operation`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		configErr = err
	} else {
		applyDefaults(cfg)
		awscmd.ApplyAliases(cfg)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, awscmd.ErrOperationFailed) {
			fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error:"), err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	//Global persistent flags (available to all subcommands)
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&profile, "profile", "p", "", "AWS profile to use")
	flags.StringVarP(&region, "region", "r", "", "AWS region to use")
	flags.StringVar(&contextName, "context", "", "context to use instead of the current one")
	flags.StringVarP(&output, "output", "o", config.OutputTable, "output format: table, json or yaml")
	flags.BoolVar(&strict, "strict", false, "refuse to call operations with missing required parameters")
	flags.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	// Bind flags to viper
	for _, name := range []string{"profile", "region", "context", "output", "strict", "log-level"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	_ = rootCmd.RegisterFlagCompletionFunc("profile", completeProfiles)
	_ = rootCmd.RegisterFlagCompletionFunc("context", completeContexts)
	_ = rootCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]cobra.Completion{config.OutputTable, config.OutputJSON, config.OutputYAML}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(awscmd.AWSCmd)
}

func initConfig() {
	// Read from environment variables, e.g. STRATUS_OUTPUT or STRATUS_LOG_LEVEL
	viper.SetEnvPrefix("STRATUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// applyDefaults makes the config file defaults the fallback of the
// matching flags.
func applyDefaults(cfg *config.Config) {
	if cfg.Defaults == nil {
		return
	}
	if cfg.Defaults.Output != "" {
		viper.SetDefault("output", cfg.Defaults.Output)
	}
	if cfg.Defaults.LogLevel != "" {
		viper.SetDefault("log-level", cfg.Defaults.LogLevel)
	}
	viper.SetDefault("strict", cfg.Defaults.Strict)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level := viper.GetString("log-level")
	if level == "" {
		level = "warn"
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if configErr != nil {
		logger.Warn("ignoring config file", "path", config.GetConfigPath(), "err", configErr)
	}
	return nil
}

// newLogger returns a tint logger on w. Colors are used only when w is a
// terminal.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})), nil
}
