// Package mcpserver exposes the action dispatcher as a single MCP tool.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/opensdd/osdd-shortcut/core/actions"
)

const (
	ServerName = "osdd-shortcut"
	ToolName   = "shortcut"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, p actions.Params) (string, error)
}

func toolDescription() string {
	var b strings.Builder
	b.WriteString(`Read and update Shortcut stories. Use the action parameter to select the operation.
Stories can be given as 123, sc-123 or a story URL. States and owners are matched loosely
("wip", "done", "alice", "me").

REQUIRED FIELDS BY ACTION:
- get_story: story
- search_stories: query (limit optional, max 25)
- create_story: name (description, story_type, state, owner, estimate optional)
- update_story: story plus at least one of name, description, story_type, state, owner, estimate
- move_story: story, state
- assign_story: story, owner
- add_comment: story, text
- add_task: story, text
- get_epic: epic
- list_workflows, list_members, whoami: none

ACTIONS: `)
	names := make([]string, 0, len(actions.ValidActions()))
	for _, a := range actions.ValidActions() {
		names = append(names, string(a))
	}
	b.WriteString(strings.Join(names, ", "))
	return b.String()
}

// NewServer registers the shortcut tool on a fresh MCP server.
func NewServer(d Dispatcher, version string) *mcp.Server {
	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}
	opts := &mcp.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcp.ServerSession, params *mcp.InitializedParams) {
			slog.Info("MCP connection established")
		},
	}
	server := mcp.NewServer(impl, opts)

	tool := &mcp.Tool{
		Name:        ToolName,
		Description: toolDescription(),
	}
	mcp.AddTool(server, tool, handler(d))
	return server
}

// handler adapts the dispatcher to the tool signature. Action failures are
// returned as tool results with IsError set so the caller can correct itself.
func handler(d Dispatcher) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[actions.Params]) (*mcp.CallToolResultFor[any], error) {
	return func(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[actions.Params]) (*mcp.CallToolResultFor[any], error) {
		if params == nil {
			return errorResult(fmt.Errorf("missing tool arguments")), nil
		}
		out, err := d.Dispatch(ctx, params.Arguments)
		if err != nil {
			slog.Debug("Tool call failed", "action", params.Arguments.Action, "error", err)
			return errorResult(err), nil
		}
		return &mcp.CallToolResultFor[any]{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
		}, nil
	}
}

func errorResult(err error) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + err.Error()}},
		IsError: true,
	}
}

// Serve runs server over stdio until the client disconnects or ctx is done.
// stdout carries the protocol, so nothing else may write to it.
func Serve(ctx context.Context, server *mcp.Server) error {
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
