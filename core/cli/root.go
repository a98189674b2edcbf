// Package cli wires configuration, the Shortcut client and the dispatcher into
// the osdd-shortcut command line.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/opensdd/osdd-shortcut/core/actions"
	"github.com/opensdd/osdd-shortcut/core/config"
	"github.com/opensdd/osdd-shortcut/core/shortcut"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Token      string
	BaseURL    string
	Version    string
}

// NewRootCommand creates the root command of the osdd-shortcut CLI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{Version: version}

	cmd := &cobra.Command{
		Use:   "osdd-shortcut",
		Short: "Shortcut tools for coding agents",
		Long: `osdd-shortcut reads and updates Shortcut stories on behalf of coding agents.

It runs as an MCP server over stdio (serve) or performs a single action
from the shell (call). Story references, workflow states and members are
resolved from loose human input such as "sc-123", "wip" or "me".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $HOME/.config/osdd-shortcut/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging to stderr")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "Shortcut API token (overrides SHORTCUT_API_TOKEN)")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "Shortcut API base URL")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewCallCommand(opts))
	cmd.AddCommand(NewHealthCommand(opts))

	return cmd
}

// setup loads configuration, installs the default logger on the command's
// stderr and builds a dispatcher backed by the Shortcut API.
func (o *RootOptions) setup(cmd *cobra.Command) (*actions.Dispatcher, error) {
	overrides := map[string]string{
		config.KeyAPIToken: o.Token,
		config.KeyBaseURL:  o.BaseURL,
	}
	if o.Verbose {
		overrides[config.KeyLogLevel] = "debug"
	}
	cfg, err := config.Load(config.LoadOptions{ConfigFile: o.ConfigFile, Overrides: overrides})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logger(cmd.ErrOrStderr()))

	client, err := shortcut.NewClient(cfg.APIToken,
		shortcut.WithBaseURL(cfg.BaseURL),
		shortcut.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shortcut client: %w", err)
	}
	slog.Debug("Shortcut client ready", "base_url", cfg.BaseURL, "timeout", cfg.Timeout)
	return actions.NewDispatcher(client), nil
}
