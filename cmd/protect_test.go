package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainmocks "forgeguard.dev/pkg/forgeguard/internal/domain/mocks"
	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

var homeController = dedent.Dedent(`
	public class HomeController : Controller
	{
	    [HttpPost]
	    public IActionResult Contact(ContactModel model)
	    {
	        return View();
	    }
	}
`)

func TestControllersCmd_UsesArguments(t *testing.T) {
	mockPipeline := domainmocks.NewMockPipeline(t)

	cmd, _ := newTestRootCmd(t, newControllersCmd())
	options := usePipeline(t, mockPipeline)

	mockPipeline.On("ProcessControllers", mock.Anything, []m.Path{"./Controllers", "./Areas"}).
		Return([]m.FileReport{{Path: "Controllers/HomeController.cs", Outcome: m.OutcomeUpdated}}, nil)

	cmd.SetArgs([]string{"controllers", "--dry-run", "-x", "Migrations/", "./Controllers", "./Areas"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.True(t, options.DryRun)
	assert.Equal(t, []string{"Migrations/"}, options.Exclude)
	assert.Equal(t, []string{".cs"}, options.ControllerExtensions)
}

func TestViewsCmd_UsesConfiguredPaths(t *testing.T) {
	mockPipeline := domainmocks.NewMockPipeline(t)

	cmd, _ := newTestRootCmd(t, newViewsCmd())
	usePipeline(t, mockPipeline)
	viper.Set(viewPathsKey, []string{"./Views"})

	mockPipeline.On("ProcessViews", mock.Anything, []m.Path{"./Views"}).Return(nil, nil)

	cmd.SetArgs([]string{"views"})
	require.NoError(t, cmd.Execute())
}

func TestControllersCmd_NoPaths(t *testing.T) {
	mockPipeline := domainmocks.NewMockPipeline(t)

	cmd, _ := newTestRootCmd(t, newControllersCmd())
	usePipeline(t, mockPipeline)

	cmd.SetArgs([]string{"controllers"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), controllerPathsKey)
}

func TestControllersCmd_PipelineError(t *testing.T) {
	mockPipeline := domainmocks.NewMockPipeline(t)

	cmd, _ := newTestRootCmd(t, newControllersCmd())
	usePipeline(t, mockPipeline)

	failure := errors.New("parse failed")
	mockPipeline.On("ProcessControllers", mock.Anything, mock.Anything).Return(nil, failure)

	cmd.SetArgs([]string{"controllers", "./Controllers"})
	err := cmd.Execute()
	require.ErrorIs(t, err, failure)
}

func TestViewsCmd_WritesReport(t *testing.T) {
	mockPipeline := domainmocks.NewMockPipeline(t)

	cmd, _ := newTestRootCmd(t, newViewsCmd())
	usePipeline(t, mockPipeline)

	reports := []m.FileReport{
		{Path: "Views/Login.cshtml", Kind: m.KindView, Outcome: m.OutcomeUpdated, Changes: 1},
		{Path: "Views/Search.cshtml", Kind: m.KindView, Outcome: m.OutcomeUnchanged},
	}
	mockPipeline.On("ProcessViews", mock.Anything, mock.Anything).Return(reports, nil)

	reportPath := filepath.Join(t.TempDir(), "reports", "views.yaml")

	cmd.SetArgs([]string{"views", "--report", reportPath, "./Views"})
	require.NoError(t, cmd.Execute())

	saved, err := reportStore.LoadReport(context.Background(), m.Path(reportPath))
	require.NoError(t, err)
	assert.False(t, saved.DryRun)
	assert.Equal(t, reports, saved.Files)
}

func TestControllersCmd_EndToEnd(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Controllers", "HomeController.cs")
	writeTestFile(t, path, homeController)

	cmd, out := newTestRootCmd(t, newControllersCmd())

	cmd.SetArgs([]string{"controllers", root})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[HttpPost, ValidateAntiForgeryToken]")
	assert.Contains(t, out.String(), "updated")
	assert.Contains(t, out.String(), "Controller processing done.")
	assert.NoFileExists(t, path+".lock")
}

func TestControllersCmd_EndToEndCustomSuffix(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "HomeController.cs")
	writeTestFile(t, path, homeController)
	writeTestFile(t, path+".claim", "")

	cmd, out := newTestRootCmd(t, newControllersCmd())

	cmd.SetArgs([]string{"controllers", "--claim-suffix", ".claim", root})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, homeController, string(data))
	assert.Contains(t, out.String(), "already claimed")
}
