package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	m "forgeguard.dev/pkg/forgeguard/internal/model"
)

// releaseCmd represents the release command.
var releaseCmd = newReleaseCmd()

func newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <files...>",
		Short: "Remove claim markers",
		Long: `Remove the claim markers of the given files. Either the source file or the
marker itself may be named. Only controller and view files that exist can be
released. Only release a claim when no forgeguard process is running against
the file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims := newClaimer()

			var errs []error

			for _, arg := range args {
				path := arg
				if claimed, ok := claims.ClaimedPath(arg); ok {
					path = claimed
				} else if !claims.Claimable(arg) {
					errs = append(errs, fmt.Errorf("release %s: not a controller or view file, nor one of their claim markers", arg))
					continue
				}

				info, err := fsAdapter.FileInfo(cmd.Context(), m.Path(path))
				if err != nil || !info.Mode().IsRegular() {
					errs = append(errs, fmt.Errorf("release %s: claimed file %s does not exist", arg, path))
					continue
				}

				if err := claims.Release(path); err != nil {
					errs = append(errs, fmt.Errorf("release %s: %w", path, err))
					continue
				}

				cmd.Println("released", claims.MarkerPath(path))
			}

			return errors.Join(errs...)
		},
	}
}

func init() {
	rootCmd.AddCommand(releaseCmd)
}
