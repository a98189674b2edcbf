package render

import (
	"testing"

	"github.com/opensdd/osdd-shortcut/core/shortcut"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func fixtureWorkflows() []shortcut.Workflow {
	return []shortcut.Workflow{
		{ID: 1, Name: "Engineering", DefaultStateID: 101, States: []shortcut.WorkflowState{
			{ID: 101, Name: "Backlog", Type: shortcut.StateUnstarted},
			{ID: 102, Name: "In Progress", Type: shortcut.StateStarted},
			{ID: 103, Name: "Done", Type: shortcut.StateDone},
		}},
		{ID: 2, Name: "Design", DefaultStateID: 201, States: []shortcut.WorkflowState{
			{ID: 201, Name: "Ideas", Type: shortcut.StateUnstarted},
			{ID: 202, Name: "Shipped", Type: shortcut.StateDone},
		}},
	}
}

func fixtureMembers() []shortcut.Member {
	return []shortcut.Member{
		{ID: "u-alice", Profile: shortcut.Profile{Name: "Alice Smith", MentionName: "alice"}},
		{ID: "u-bob", Disabled: true, Profile: shortcut.Profile{Name: "Bob Jones", MentionName: "bjones"}},
	}
}

func int64p(v int64) *int64 { return &v }

func TestStory(t *testing.T) {
	ix := NewIndex(fixtureWorkflows(), fixtureMembers())

	full := shortcut.Story{
		ID:              123,
		Name:            "Fix login redirect",
		Description:     "  Users land on /home after login.\n\nExpected: return to the original page.\n",
		StoryType:       "bug",
		WorkflowStateID: 102,
		OwnerIDs:        []string{"u-alice", "u-ghost"},
		Estimate:        int64p(3),
		EpicID:          int64p(7),
		Labels:          []shortcut.Label{{Name: "backend"}, {Name: "auth"}},
		Tasks: []shortcut.Task{
			{ID: 1, Description: "Write regression test", Complete: true},
			{ID: 2, Description: "Fix redirect"},
		},
		AppURL: "https://app.shortcut.com/acme/story/123",
	}
	out, err := Story(full, ix)
	require.NoError(t, err)
	newGolden(t).Assert(t, "story_full", []byte(out))

	out, err = Story(shortcut.Story{ID: 5, Name: "Tiny", StoryType: "chore", WorkflowStateID: 999}, nil)
	require.NoError(t, err)
	newGolden(t).Assert(t, "story_minimal", []byte(out))
}

func TestStories(t *testing.T) {
	ix := NewIndex(fixtureWorkflows(), nil)
	out, err := Stories([]shortcut.Story{
		{ID: 1, Name: "Fix login", StoryType: "bug", WorkflowStateID: 102},
		{ID: 2, Name: "Ship design", StoryType: "feature", WorkflowStateID: 202},
	}, ix)
	require.NoError(t, err)
	newGolden(t).Assert(t, "stories", []byte(out))
}

func TestStories_Counts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		stories []shortcut.Story
		want    string
	}{
		{name: "empty", want: "No stories found.\n"},
		{
			name:    "single",
			stories: []shortcut.Story{{ID: 9, Name: "Only", StoryType: "chore", WorkflowStateID: 103}},
			want:    "Found 1 story:\n\n- sc-9 [Done] Only (chore)\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := Stories(tt.stories, NewIndex(fixtureWorkflows(), nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEpic(t *testing.T) {
	e := shortcut.Epic{
		ID:          7,
		Name:        "Auth revamp",
		Description: "Rework the login flow.",
		State:       "in progress",
		AppURL:      "https://app.shortcut.com/acme/epic/7",
	}
	e.Stats.NumStoriesTotal = 10
	e.Stats.NumStoriesDone = 4
	e.Stats.NumStoriesStarted = 3
	e.Stats.NumStoriesUnstarted = 3

	out, err := Epic(e)
	require.NoError(t, err)
	newGolden(t).Assert(t, "epic", []byte(out))
}

func TestWorkflows(t *testing.T) {
	out, err := Workflows(fixtureWorkflows())
	require.NoError(t, err)
	newGolden(t).Assert(t, "workflows", []byte(out))

	out, err = Workflows(nil)
	require.NoError(t, err)
	assert.Equal(t, "No workflows configured.\n", out)
}

func TestMembers(t *testing.T) {
	out, err := Members(fixtureMembers())
	require.NoError(t, err)
	newGolden(t).Assert(t, "members", []byte(out))

	out, err = Members(nil)
	require.NoError(t, err)
	assert.Equal(t, "No members found.\n", out)
}

func TestShortMessages(t *testing.T) {
	t.Parallel()
	me := fixtureMembers()[0]
	assert.Equal(t, "Authenticated as Alice Smith (@alice), id u-alice\n", Identity(me))
	assert.Equal(t, "Comment 55 added to sc-123.\n", Comment(123, shortcut.Comment{ID: 55, Text: "hi"}))
	assert.Equal(t, "Task 9 added to sc-123: write docs\n", Task(123, shortcut.Task{ID: 9, Description: "write docs"}))
}

func TestIndex(t *testing.T) {
	t.Parallel()
	wfs := fixtureWorkflows()
	// same state id in a later workflow does not override the first
	wfs = append(wfs, shortcut.Workflow{ID: 3, Name: "Ops", States: []shortcut.WorkflowState{{ID: 101, Name: "Queued"}}})
	ix := NewIndex(wfs, []shortcut.Member{{ID: "u-x"}})

	assert.Equal(t, "Backlog", ix.StateName(101))
	assert.Equal(t, "state 4", ix.StateName(4))
	assert.Equal(t, "u-x", ix.MemberName("u-x"))
	assert.Equal(t, "nobody", ix.MemberName("nobody"))

	var nilIx *Index
	assert.Equal(t, "state 1", nilIx.StateName(1))
	assert.Equal(t, "u-1", nilIx.MemberName("u-1"))
}
