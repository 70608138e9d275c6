package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "stratus", "config.yaml")
}

func TestLoadConfigMissingFile(t *testing.T) {
	path := useTempConfig(t)
	assert.Equal(t, path, GetConfigPath())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OutputTable, cfg.Defaults.Output)
	assert.Equal(t, "warn", cfg.Defaults.LogLevel)
	assert.Empty(t, cfg.CurrentContext)
	assert.NotNil(t, cfg.Contexts)
}

func TestLoadConfigFile(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
current_context: prod
contexts:
  prod:
    profile: prod-admin
    region: eu-west-1
aliases:
  models: ml:get-ml-model-list
  ml-models: ml:get-ml-model-list
defaults:
  strict: true
`), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.CurrentContext)
	assert.Equal(t, &Context{Profile: "prod-admin", Region: "eu-west-1"}, cfg.Contexts["prod"])
	assert.True(t, cfg.Defaults.Strict)
	assert.Equal(t, OutputTable, cfg.Defaults.Output)
	assert.Equal(t, []string{"ml-models", "models"}, cfg.CommandAliases("ml", "get-ml-model-list"))
	assert.Empty(t, cfg.CommandAliases("iotevents", "get-input-list"))
}

func TestLoadConfigRejectsBadFiles(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	for name, body := range map[string]string{
		"syntax":           "contexts: [",
		"output":           "defaults:\n  output: xml\n",
		"dangling context": "current_context: gone\n",
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestContextLifecycle(t *testing.T) {
	useTempConfig(t)

	require.NoError(t, AddContext("dev", &Context{Profile: "dev", Region: "us-east-1"}))
	require.NoError(t, AddContext("prod", &Context{Profile: "prod", Region: "eu-west-1"}))
	assert.Error(t, AddContext(" ", &Context{}))

	ctx, name, err := GetCurrentContext()
	require.NoError(t, err)
	assert.Nil(t, ctx)
	assert.Empty(t, name)

	assert.Error(t, SetCurrentContext("staging"))
	require.NoError(t, SetCurrentContext("prod"))

	ctx, name, err = GetCurrentContext()
	require.NoError(t, err)
	assert.Equal(t, "prod", name)
	assert.Equal(t, "eu-west-1", ctx.Region)

	got, err := GetContext("dev")
	require.NoError(t, err)
	assert.Equal(t, "dev", got.Profile)

	contexts, current, err := ListContexts()
	require.NoError(t, err)
	assert.Equal(t, "prod", current)
	assert.Equal(t, []string{"dev", "prod"}, SortedContextNames(contexts))

	require.NoError(t, DeleteContext("prod"))
	_, name, err = GetCurrentContext()
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Error(t, DeleteContext("prod"))
}

func TestSaveConfigValidates(t *testing.T) {
	useTempConfig(t)

	cfg := defaultConfig()
	cfg.Defaults.Output = "csv"
	assert.Error(t, SaveConfig(cfg))

	cfg.Defaults.Output = OutputJSON
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, loaded.Defaults.Output)
}
