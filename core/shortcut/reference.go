package shortcut

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// FetchWorkflows returns every workflow with its states, in API order.
func (c *Client) FetchWorkflows(ctx context.Context) ([]Workflow, error) {
	var workflows []Workflow
	if err := c.do(ctx, http.MethodGet, "/workflows", nil, &workflows); err != nil {
		return nil, fmt.Errorf("failed to fetch workflows: %w", err)
	}
	slog.Debug("Shortcut workflows fetched", "count", len(workflows))
	return workflows, nil
}

// FetchMembers returns every member of the workspace, in API order.
func (c *Client) FetchMembers(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := c.do(ctx, http.MethodGet, "/members", nil, &members); err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	slog.Debug("Shortcut members fetched", "count", len(members))
	return members, nil
}

// FetchCurrentIdentity returns the member that owns the API token.
func (c *Client) FetchCurrentIdentity(ctx context.Context) (Member, error) {
	var cm currentMember
	if err := c.do(ctx, http.MethodGet, "/member", nil, &cm); err != nil {
		return Member{}, fmt.Errorf("failed to fetch current member: %w", err)
	}
	if cm.ID == "" {
		return Member{}, fmt.Errorf("failed to fetch current member: response has no id")
	}
	return Member{ID: cm.ID, Profile: Profile{Name: cm.Name, MentionName: cm.MentionName}}, nil
}
