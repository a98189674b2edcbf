package cli

import (
	"fmt"

	"github.com/opensdd/osdd-shortcut/core/actions"
	"github.com/spf13/cobra"
)

func NewHealthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the configuration and the API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			out, err := d.Dispatch(cmd.Context(), actions.Params{Action: actions.ActionWhoami})
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), "OK\n"+out)
			return err
		},
	}
}
