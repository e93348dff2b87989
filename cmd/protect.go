package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forgeguard.dev/pkg/forgeguard/internal/domain"
	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

const controllersLongDescription = `Add [ValidateAntiForgeryToken] to every [HttpPost] action in the C#
files found under the given paths.

` + pathsHelp

const viewsLongDescription = `Add asp-antiforgery="true" to every POST form in the Razor views found
under the given paths.

` + pathsHelp

// stage selects one pipeline operation.
type stage func(p domain.Pipeline, ctx context.Context, roots []m.Path) ([]m.FileReport, error)

var controllersCmd = newControllersCmd()
var viewsCmd = newViewsCmd()

func newControllersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "controllers [paths...]",
		Short: "Protect HttpPost actions in C# controllers",
		Long:  controllersLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, args, controllerPathsKey, domain.Pipeline.ProcessControllers)
		},
	}
}

func newViewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views [paths...]",
		Short: "Protect POST forms in Razor views",
		Long:  viewsLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(cmd, args, viewPathsKey, domain.Pipeline.ProcessViews)
		},
	}
}

func init() {
	rootCmd.AddCommand(controllersCmd)
	rootCmd.AddCommand(viewsCmd)
}

func runStage(cmd *cobra.Command, args []string, pathsKey string, process stage) error {
	roots, err := resolvePaths(args, pathsKey)
	if err != nil {
		return err
	}

	options := pipelineOptions()

	pipeline, err := newPipeline(cmd, options)
	if err != nil {
		return err
	}

	reports, err := process(pipeline, cmd.Context(), roots)
	if err != nil {
		return err
	}

	return saveReport(cmd.Context(), m.RunReport{DryRun: options.DryRun, Files: reports})
}

// saveReport writes the run report when --report is set.
func saveReport(ctx context.Context, report m.RunReport) error {
	path := viper.GetString(reportConfigKey)
	if path == "" {
		return nil
	}

	if err := reportStore.SaveReport(ctx, m.Path(path), report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}
