package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimsCmd_ListsMarkers(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Controllers", "HomeController.cs"), "")
	writeTestFile(t, filepath.Join(root, "Controllers", "HomeController.cs.lock"), "")
	writeTestFile(t, filepath.Join(root, "Views", "Login.cshtml"), "")
	writeTestFile(t, filepath.Join(root, "Views", "Login.cshtml.lock"), "")
	writeTestFile(t, filepath.Join(root, "ClientApp", "yarn.lock"), "# yarn lockfile v1\n")

	cmd, out := newTestRootCmd(t, newClaimsCmd())

	cmd.SetArgs([]string{"claims", root})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "HomeController.cs.lock")
	assert.Contains(t, out.String(), "Login.cshtml.lock")
	assert.Contains(t, strings.ToUpper(out.String()), "TOTAL 2")
	assert.NotContains(t, out.String(), "yarn.lock")
}

func TestClaimsCmd_UsesConfiguredPaths(t *testing.T) {
	controllers := t.TempDir()
	views := t.TempDir()

	cmd, out := newTestRootCmd(t, newClaimsCmd())
	viper.Set(controllerPathsKey, []string{controllers})
	viper.Set(viewPathsKey, []string{views})

	cmd.SetArgs([]string{"claims"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "No claim markers found.")
}

func TestClaimsCmd_NoPaths(t *testing.T) {
	cmd, _ := newTestRootCmd(t, newClaimsCmd())

	cmd.SetArgs([]string{"claims"})
	require.Error(t, cmd.Execute())
}
