package cli

import (
	"fmt"

	"github.com/opensdd/osdd-shortcut/core/actions"
	"github.com/spf13/cobra"
)

// CallOptions holds flags for the call command.
type CallOptions struct {
	*RootOptions
	Params actions.Params
}

func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CallOptions{RootOptions: rootOpts}

	validArgs := make([]string, 0, len(actions.ValidActions()))
	for _, a := range actions.ValidActions() {
		validArgs = append(validArgs, string(a))
	}

	cmd := &cobra.Command{
		Use:   "call <action>",
		Short: "Run a single action and print the result",
		Long: `Run a single action of the shortcut tool and print the rendered result.

Examples:
  osdd-shortcut call get_story --story sc-123
  osdd-shortcut call move_story --story 123 --state wip
  osdd-shortcut call search_stories --query "owner:alice state:done" --limit 5`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := opts.Params
			p.Action = actions.Action(args[0])
			if !cmd.Flags().Changed("estimate") {
				p.Estimate = nil
			}
			return runCall(cmd, opts.RootOptions, p)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Params.Story, "story", "", "story number, sc-123 or story URL")
	f.StringVar(&opts.Params.Epic, "epic", "", "epic number or epic URL")
	f.StringVar(&opts.Params.Query, "query", "", "search query")
	f.StringVar(&opts.Params.Name, "name", "", "story name")
	f.StringVar(&opts.Params.Description, "description", "", "story description")
	f.StringVar(&opts.Params.StoryType, "type", "", "story type (feature|bug|chore)")
	f.StringVar(&opts.Params.State, "state", "", "workflow state name")
	f.StringVar(&opts.Params.Owner, "owner", "", `owner name, mention name or "me"`)
	f.StringVar(&opts.Params.Text, "text", "", "comment or task text")
	f.IntVar(&opts.Params.Limit, "limit", 0, "maximum search results")
	opts.Params.Estimate = new(int64)
	f.Int64Var(opts.Params.Estimate, "estimate", 0, "story points")

	return cmd
}

func runCall(cmd *cobra.Command, rootOpts *RootOptions, p actions.Params) error {
	d, err := rootOpts.setup(cmd)
	if err != nil {
		return err
	}
	out, err := d.Dispatch(cmd.Context(), p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
