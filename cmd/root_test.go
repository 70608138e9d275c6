package cmd

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/stratus/internal/config"
)

// run executes the root command with args against a temporary config
// directory and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "page", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "page=2")
	assert.NotContains(t, buf.String(), "\x1b[")

	_, err = newLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	applyDefaults(&config.Config{Defaults: &config.Defaults{Output: config.OutputYAML, Strict: true, LogLevel: "debug"}})
	assert.Equal(t, config.OutputYAML, viper.GetString("output"))
	assert.True(t, viper.GetBool("strict"))
	assert.Equal(t, "debug", viper.GetString("log-level"))
}

func TestContextCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.DiscardHandler)) })

	out, err := run(t, "contexts")
	require.NoError(t, err)
	assert.Contains(t, out, "No contexts configured.")

	out, err = run(t, "use", "add", "prod", "--profile", "prod-admin", "--region", "eu-west-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Context added: prod")

	out, err = run(t, "use", "staging")
	require.NoError(t, err)
	assert.Contains(t, out, `Context "staging" not found.`)
	assert.Contains(t, out, "prod")

	out, err = run(t, "use", "prod")
	require.NoError(t, err)
	assert.Contains(t, out, "Switched to context: prod")
	assert.Contains(t, out, "eu-west-1")

	out, err = run(t, "contexts")
	require.NoError(t, err)
	assert.Contains(t, out, "prod-admin")
	assert.Contains(t, out, "1 contexts configured, current: prod")

	out, err = run(t, "use", "delete", "prod")
	require.NoError(t, err)
	assert.Contains(t, out, "Context deleted: prod")

	_, err = run(t, "use", "rm", "prod")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Stratus CLI")
	assert.Contains(t, out, "Version:    dev")
}
