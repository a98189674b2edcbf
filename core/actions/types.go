// Package actions implements the single "shortcut" tool: one loosely typed
// parameter bag dispatched by action name.
package actions

// Action names one operation of the tool.
type Action string

const (
	ActionGetStory      Action = "get_story"
	ActionSearchStories Action = "search_stories"
	ActionCreateStory   Action = "create_story"
	ActionUpdateStory   Action = "update_story"
	ActionMoveStory     Action = "move_story"
	ActionAssignStory   Action = "assign_story"
	ActionAddComment    Action = "add_comment"
	ActionAddTask       Action = "add_task"
	ActionGetEpic       Action = "get_epic"
	ActionListWorkflows Action = "list_workflows"
	ActionListMembers   Action = "list_members"
	ActionWhoami        Action = "whoami"
)

// ValidActions returns all valid actions in the order they are documented.
func ValidActions() []Action {
	return []Action{
		ActionGetStory, ActionSearchStories, ActionCreateStory, ActionUpdateStory,
		ActionMoveStory, ActionAssignStory, ActionAddComment, ActionAddTask,
		ActionGetEpic, ActionListWorkflows, ActionListMembers, ActionWhoami,
	}
}

// IsValid checks if the action is known.
func (a Action) IsValid() bool {
	switch a {
	case ActionGetStory, ActionSearchStories, ActionCreateStory, ActionUpdateStory,
		ActionMoveStory, ActionAssignStory, ActionAddComment, ActionAddTask,
		ActionGetEpic, ActionListWorkflows, ActionListMembers, ActionWhoami:
		return true
	}
	return false
}

// Story types accepted by the API.
const (
	StoryTypeFeature = "feature"
	StoryTypeBug     = "bug"
	StoryTypeChore   = "chore"
)

// DefaultSearchLimit is used when search_stories has no limit. It is also the
// largest page the search endpoint returns.
const DefaultSearchLimit = 25

// Params is the argument bag of the tool. Which fields matter depends on Action.
type Params struct {
	// Action selects the operation. Required.
	Action Action `json:"action"`

	// Story is a story reference: a number, "sc-123" or a story URL.
	// Required for: get_story, update_story, move_story, assign_story, add_comment, add_task
	Story string `json:"story,omitempty"`

	// Epic is an epic reference: a number or an epic URL.
	// Required for: get_epic
	Epic string `json:"epic,omitempty"`

	// Query uses the Shortcut search syntax.
	// Required for: search_stories
	Query string `json:"query,omitempty"`

	// Name is the story title.
	// Required for: create_story. Optional for: update_story
	Name string `json:"name,omitempty" validate:"omitempty,max=512"`

	Description string `json:"description,omitempty"`

	// StoryType is one of feature, bug, chore (default: feature on create).
	StoryType string `json:"story_type,omitempty" validate:"omitempty,oneof=feature bug chore"`

	// State is a workflow state name, matched loosely ("wip", "done").
	// Required for: move_story. Optional for: create_story, update_story
	State string `json:"state,omitempty"`

	// Owner is a display name, mention name or "me".
	// Required for: assign_story. Optional for: create_story, update_story
	Owner string `json:"owner,omitempty"`

	// Text is the comment body or the task description.
	// Required for: add_comment, add_task
	Text string `json:"text,omitempty"`

	Estimate *int64 `json:"estimate,omitempty" validate:"omitempty,gte=0,lte=100"`

	// Limit caps search results (default and maximum: 25).
	Limit int `json:"limit,omitempty" validate:"omitempty,gte=1,lte=25"`
}
