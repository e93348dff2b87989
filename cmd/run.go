package cmd

import (
	"slices"

	"github.com/spf13/cobra"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Protect controllers, then views, using the configured paths",
		Long: `Run the controller pipeline and then the view pipeline over paths.controllers
and paths.views from forgeguard.yaml (or FORGEGUARD_PATHS_CONTROLLERS and
FORGEGUARD_PATHS_VIEWS).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			controllerRoots, err := resolvePaths(nil, controllerPathsKey)
			if err != nil {
				return err
			}

			viewRoots, err := resolvePaths(nil, viewPathsKey)
			if err != nil {
				return err
			}

			options := pipelineOptions()

			pipeline, err := newPipeline(cmd, options)
			if err != nil {
				return err
			}

			// Stages run in order: controllers, then views.
			controllerReports, err := pipeline.ProcessControllers(cmd.Context(), controllerRoots)
			if err != nil {
				return err
			}

			viewReports, err := pipeline.ProcessViews(cmd.Context(), viewRoots)
			if err != nil {
				return err
			}

			return saveReport(cmd.Context(), m.RunReport{
				DryRun: options.DryRun,
				Files:  slices.Concat(controllerReports, viewReports),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
