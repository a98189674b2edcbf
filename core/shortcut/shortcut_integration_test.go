package shortcut

import (
	"context"
	"testing"

	"github.com/opensdd/osdd-shortcut/core/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integClientOrSkip(t *testing.T) *Client {
	t.Helper()
	if testing.Short() {
		t.Skip()
	}
	token := testutil.IntegEnv("OSDD_TEST_SHORTCUT_TOKEN")
	if token == "" {
		t.Skip("OSDD_TEST_SHORTCUT_TOKEN required (env var or ~/.config/osdd-shortcut/.env.integ-test)")
	}
	c, err := NewClient(token)
	require.NoError(t, err)
	return c
}

func TestReferenceData_Integration(t *testing.T) {
	c := integClientOrSkip(t)
	ctx := context.Background()

	wfs, err := c.FetchWorkflows(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, wfs)

	members, err := c.FetchMembers(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, members)

	me, err := c.FetchCurrentIdentity(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, me.ID)
}

func TestGetStory_Integration(t *testing.T) {
	c := integClientOrSkip(t)
	raw := testutil.IntegEnv("OSDD_TEST_SHORTCUT_STORY")
	if raw == "" {
		t.Skip("OSDD_TEST_SHORTCUT_STORY not set")
	}
	stories, err := c.SearchStories(context.Background(), "id:"+raw, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, stories)
}
