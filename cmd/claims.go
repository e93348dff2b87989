package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"forgeguard.dev/pkg/forgeguard/internal/controller"
)

// claimsCmd represents the claims command.
var claimsCmd = newClaimsCmd()

func newClaimsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claims [paths...]",
		Short: "List claim markers left in the source tree",
		Long: `List claim marker files found under the given paths (default: the configured
controller and view paths). A marker outlives a forgeguard process that crashed
while holding it and keeps its file claimed until it is released.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = append(viper.GetStringSlice(controllerPathsKey), viper.GetStringSlice(viewPathsKey)...)
			}

			if len(roots) == 0 {
				return fmt.Errorf("no paths given and neither %s nor %s is configured", controllerPathsKey, viewPathsKey)
			}

			markers, err := newClaimer().Orphans(roots)
			if err != nil {
				return fmt.Errorf("failed to list claims: %w", err)
			}

			controller.NewSimpleUI(cmd).DisplayClaims(cmd.Context(), parsePaths(markers))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(claimsCmd)
}
