package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "forgeguard", configBaseName)
	assert.Equal(t, "forgeguard.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "dry-run", dryRunFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "report", reportFlagName)
	assert.Equal(t, "claim-suffix", claimSuffixFlagName)
	assert.Equal(t, "paths.controllers", controllerPathsKey)
	assert.Equal(t, "paths.views", viewPathsKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "claims.suffix", claimSuffixKey)
	assert.Equal(t, ".forgeguard.log", defaultLogFilename)
	assert.Equal(t, "FORGEGUARD", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	assert.Equal(t, []string{".cs"}, viper.GetStringSlice(controllerExtensionsKey))
	assert.Equal(t, []string{".cshtml"}, viper.GetStringSlice(viewExtensionsKey))
	assert.Equal(t, ".lock", viper.GetString(claimSuffixKey))
	assert.False(t, viper.GetBool(dryRunConfigKey))
	assert.Empty(t, viper.GetStringSlice(controllerPathsKey))
}

func TestConfigEnvOverride(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)
	t.Setenv("FORGEGUARD_CLAIMS_SUFFIX", ".claim")
	t.Setenv("FORGEGUARD_DRY_RUN", "true")

	assert.Equal(t, ".claim", viper.GetString(claimSuffixKey))
	assert.True(t, viper.GetBool(dryRunConfigKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	resetConfig()
	original := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(original)
		resetConfig()
	})

	logPath := filepath.Join(t.TempDir(), "forgeguard.log")

	configureLogger(logPath, false)
	slog.Debug("hidden")
	slog.Info("visible", "path", "Controllers/HomeController.cs")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=visible")
	assert.Contains(t, string(data), "path=Controllers/HomeController.cs")
	assert.NotContains(t, string(data), "hidden")

	verbosePath := filepath.Join(t.TempDir(), "verbose.log")

	configureLogger(verbosePath, true)
	slog.Debug("shown")

	data, err = os.ReadFile(verbosePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=shown")
}
