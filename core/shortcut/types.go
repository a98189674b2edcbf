package shortcut

// Workflow state types as encoded by the API.
const (
	StateUnstarted = "unstarted"
	StateStarted   = "started"
	StateDone      = "done"
)

// WorkflowState is a single state of a workflow. IDs are unique within their
// workflow only.
type WorkflowState struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Position int64  `json:"position"`
}

// Category maps the API state type onto not-started, in-progress or done.
func (s WorkflowState) Category() string {
	switch s.Type {
	case StateUnstarted:
		return "not-started"
	case StateStarted:
		return "in-progress"
	case StateDone:
		return "done"
	default:
		return s.Type
	}
}

type Workflow struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	DefaultStateID int64           `json:"default_state_id"`
	States         []WorkflowState `json:"states"`
}

type Profile struct {
	Name         string `json:"name"`
	MentionName  string `json:"mention_name"`
	EmailAddress string `json:"email_address,omitempty"`
}

// Member is a user of the workspace. The ID is opaque (a UUID on the wire).
type Member struct {
	ID       string  `json:"id"`
	Disabled bool    `json:"disabled,omitempty"`
	Profile  Profile `json:"profile"`
}

func (m Member) DisplayName() string   { return m.Profile.Name }
func (m Member) MentionHandle() string { return m.Profile.MentionName }

// currentMember is the flat shape returned by GET /member.
type currentMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MentionName string `json:"mention_name"`
}

type Label struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}

type Comment struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	AuthorID string `json:"author_id,omitempty"`
}

// Story is the subset of story fields this tool reads and renders.
type Story struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	StoryType       string   `json:"story_type"`
	WorkflowStateID int64    `json:"workflow_state_id"`
	OwnerIDs        []string `json:"owner_ids,omitempty"`
	Estimate        *int64   `json:"estimate,omitempty"`
	EpicID          *int64   `json:"epic_id,omitempty"`
	Labels          []Label  `json:"labels,omitempty"`
	Tasks           []Task   `json:"tasks,omitempty"`
	AppURL          string   `json:"app_url,omitempty"`
	Completed       bool     `json:"completed,omitempty"`
	Archived        bool     `json:"archived,omitempty"`
}

type Epic struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	State       string `json:"state"`
	AppURL      string `json:"app_url,omitempty"`
	Stats       struct {
		NumStoriesTotal     int `json:"num_stories_total"`
		NumStoriesDone      int `json:"num_stories_done"`
		NumStoriesStarted   int `json:"num_stories_started"`
		NumStoriesUnstarted int `json:"num_stories_unstarted"`
	} `json:"stats"`
}

// StoryCreate is the POST /stories body.
type StoryCreate struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	StoryType       string   `json:"story_type,omitempty"`
	WorkflowStateID int64    `json:"workflow_state_id,omitempty"`
	OwnerIDs        []string `json:"owner_ids,omitempty"`
	Estimate        *int64   `json:"estimate,omitempty"`
}

// StoryUpdate is the PUT /stories/{id} body. Nil fields are left untouched.
type StoryUpdate struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	StoryType       *string  `json:"story_type,omitempty"`
	WorkflowStateID *int64   `json:"workflow_state_id,omitempty"`
	OwnerIDs        []string `json:"owner_ids,omitempty"`
	Estimate        *int64   `json:"estimate,omitempty"`
}
