package cli

import (
	"github.com/opensdd/osdd-shortcut/core/mcpserver"
	"github.com/spf13/cobra"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the "shortcut" tool.

The server runs until the client disconnects. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rootOpts.setup(cmd)
			if err != nil {
				return err
			}
			return mcpserver.Serve(cmd.Context(), mcpserver.NewServer(d, rootOpts.Version))
		},
	}
}
