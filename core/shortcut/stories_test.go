package shortcut

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStory(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stories/704", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 704, "name": "Fix login", "story_type": "bug", "workflow_state_id": 502,
			"owner_ids": ["u1"], "estimate": 3, "labels": [{"id": 9, "name": "auth"}],
			"app_url": "https://app.shortcut.com/org/story/704"}`))
	}))

	s, err := c.GetStory(context.Background(), 704)
	require.NoError(t, err)
	assert.Equal(t, int64(704), s.ID)
	assert.Equal(t, "bug", s.StoryType)
	require.NotNil(t, s.Estimate)
	assert.Equal(t, int64(3), *s.Estimate)
	assert.Equal(t, []string{"u1"}, s.OwnerIDs)
	require.Len(t, s.Labels, 1)
	assert.Equal(t, "auth", s.Labels[0].Name)
}

func TestGetStory_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	_, err := c.GetStory(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get story 1")
}

func TestCreateStory(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/stories", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 900, "name": "New", "story_type": "feature", "workflow_state_id": 501}`))
	}))

	s, err := c.CreateStory(context.Background(), StoryCreate{Name: "New", StoryType: "feature", WorkflowStateID: 501, OwnerIDs: []string{"u1"}})
	require.NoError(t, err)
	assert.Equal(t, int64(900), s.ID)
	assert.Equal(t, "New", got["name"])
	assert.Equal(t, float64(501), got["workflow_state_id"])
	assert.Equal(t, []any{"u1"}, got["owner_ids"])
	assert.NotContains(t, got, "estimate")
}

func TestCreateStory_EmptyName(t *testing.T) {
	t.Parallel()
	c, err := NewClient("tok")
	require.NoError(t, err)
	_, err = c.CreateStory(context.Background(), StoryCreate{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "story name cannot be empty")
}

func TestUpdateStory_OnlySetFields(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/stories/12", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"id": 12, "name": "Same", "workflow_state_id": 503}`))
	}))

	state := int64(503)
	s, err := c.UpdateStory(context.Background(), 12, StoryUpdate{WorkflowStateID: &state})
	require.NoError(t, err)
	assert.Equal(t, int64(503), s.WorkflowStateID)
	assert.Equal(t, map[string]any{"workflow_state_id": float64(503)}, got)
}

func TestCreateComment(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stories/5/comments", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"id": 77, "text": "LGTM"}`))
	}))

	cm, err := c.CreateComment(context.Background(), 5, "LGTM")
	require.NoError(t, err)
	assert.Equal(t, int64(77), cm.ID)
	assert.Equal(t, "LGTM", got["text"])
}

func TestCreateTask(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stories/5/tasks", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 3, "description": "write tests", "complete": false}`))
	}))

	task, err := c.CreateTask(context.Background(), 5, "write tests")
	require.NoError(t, err)
	assert.Equal(t, "write tests", task.Description)
}

func TestGetEpic(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/epics/450", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 450, "name": "Q3", "state": "in progress", "stats": {"num_stories_total": 4, "num_stories_done": 1}}`))
	}))

	e, err := c.GetEpic(context.Background(), 450)
	require.NoError(t, err)
	assert.Equal(t, "Q3", e.Name)
	assert.Equal(t, 4, e.Stats.NumStoriesTotal)
	assert.Equal(t, 1, e.Stats.NumStoriesDone)
}

func TestSearchStories(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		limit   int
		wantIDs []int64
	}{
		{
			name:    "wrapped data",
			body:    `{"data": [{"id": 1, "name": "A"}, {"id": 2, "name": "B"}], "next": null, "total": 2}`,
			wantIDs: []int64{1, 2},
		},
		{
			name:    "bare array",
			body:    `[{"id": 3, "name": "C"}]`,
			wantIDs: []int64{3},
		},
		{
			name:    "unknown shape",
			body:    `{"results": [{"id": 3}]}`,
			wantIDs: []int64{},
		},
		{
			name:    "limit applied",
			body:    `[{"id": 1}, {"id": 2}, {"id": 3}]`,
			limit:   2,
			wantIDs: []int64{1, 2},
		},
		{
			name:    "non story records skipped",
			body:    `[{"id": "not-a-number"}, {"id": 4, "name": "D"}]`,
			wantIDs: []int64{4},
		},
		{
			name:    "large id survives round trip",
			body:    `{"data": [{"id": 1234567, "name": "Big"}]}`,
			wantIDs: []int64{1234567},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery, gotPageSize string
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search/stories", r.URL.Path)
				gotQuery = r.URL.Query().Get("query")
				gotPageSize = r.URL.Query().Get("page_size")
				_, _ = w.Write([]byte(tt.body))
			}))

			stories, err := c.SearchStories(context.Background(), "owner:alice state:done", tt.limit)
			require.NoError(t, err)
			ids := make([]int64, 0, len(stories))
			for _, s := range stories {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, "owner:alice state:done", gotQuery)
			assert.NotEmpty(t, gotPageSize)
		})
	}
}

func TestSearchStories_EmptyQuery(t *testing.T) {
	t.Parallel()
	c, err := NewClient("tok")
	require.NoError(t, err)
	_, err = c.SearchStories(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search query cannot be empty")
}
