package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"forgeguard.dev/pkg/forgeguard/internal/domain"
)

// newTestRootCmd returns a fresh root command with the given subcommands and a clean
// viper state that logs into a temp dir.
func newTestRootCmd(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	resetConfig()
	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "forgeguard.log"))
	t.Cleanup(resetConfig)

	cmd := newRootCmd()
	cmd.AddCommand(subcommands...)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func resetConfig() {
	viper.Reset()
	configureViper()
}

// usePipeline makes commands run against p and records the options they built.
func usePipeline(t *testing.T, p domain.Pipeline) *domain.Options {
	t.Helper()

	captured := &domain.Options{}
	original := newPipeline
	newPipeline = func(_ *cobra.Command, options domain.Options) (domain.Pipeline, error) {
		*captured = options
		return p, nil
	}

	t.Cleanup(func() { newPipeline = original })

	return captured
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
