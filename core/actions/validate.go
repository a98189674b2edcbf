package actions

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidationError rejects an action before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// requiredFields lists, per action, the parameters that must be non-blank.
var requiredFields = map[Action][]string{
	ActionGetStory:      {"story"},
	ActionSearchStories: {"query"},
	ActionCreateStory:   {"name"},
	ActionUpdateStory:   {"story"},
	ActionMoveStory:     {"story", "state"},
	ActionAssignStory:   {"story", "owner"},
	ActionAddComment:    {"story", "text"},
	ActionAddTask:       {"story", "text"},
	ActionGetEpic:       {"epic"},
}

func (p Params) field(name string) string {
	switch name {
	case "story":
		return p.Story
	case "epic":
		return p.Epic
	case "query":
		return p.Query
	case "name":
		return p.Name
	case "state":
		return p.State
	case "owner":
		return p.Owner
	case "text":
		return p.Text
	}
	return ""
}

// Validate checks the action name, the shape of every field and the fields the
// action requires.
func (p Params) Validate() error {
	if !p.Action.IsValid() {
		names := make([]string, 0, len(ValidActions()))
		for _, a := range ValidActions() {
			names = append(names, string(a))
		}
		return &ValidationError{
			Field:   "action",
			Message: fmt.Sprintf("unknown action %q, expected one of: %s", p.Action, strings.Join(names, ", ")),
		}
	}

	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &ValidationError{Field: fieldErrs[0].Field(), Message: formatFieldError(fieldErrs[0])}
		}
		return fmt.Errorf("failed to validate parameters: %w", err)
	}

	for _, name := range requiredFields[p.Action] {
		if err := validate.Var(strings.TrimSpace(p.field(name)), "required"); err != nil {
			return &ValidationError{Field: name, Message: fmt.Sprintf("required for %s", p.Action)}
		}
	}

	if p.Action == ActionUpdateStory && !p.hasChanges() {
		return &ValidationError{
			Field:   "story",
			Message: "update_story needs at least one of name, description, story_type, state, owner, estimate",
		}
	}
	return nil
}

func (p Params) hasChanges() bool {
	return p.Name != "" || p.Description != "" || p.StoryType != "" ||
		p.State != "" || p.Owner != "" || p.Estimate != nil
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
