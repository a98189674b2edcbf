// Package resolve turns human-readable workflow state and member names into the
// IDs the Shortcut API expects.
package resolve

import (
	"fmt"
	"strings"

	"github.com/opensdd/osdd-shortcut/core/shortcut"
)

// stateMatcher looks for a state matching an already lower-cased name.
type stateMatcher func(name string, workflows []shortcut.Workflow) (shortcut.WorkflowState, bool)

// stateTiers are tried in order; each one scans every workflow before the next
// tier gets a chance.
var stateTiers = []stateMatcher{
	exactState,
	containingState,
	aliasState,
}

// State resolves name against the workflows. Workflows are scanned in order and
// states in their listed order, so a name shared by several workflows resolves to
// the first one. The boolean is false when no tier finds a state.
func State(name string, workflows []shortcut.Workflow) (shortcut.WorkflowState, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return shortcut.WorkflowState{}, false
	}
	for _, match := range stateTiers {
		if s, ok := match(name, workflows); ok {
			return s, true
		}
	}
	return shortcut.WorkflowState{}, false
}

// StateNames lists every state name across the workflows, first occurrence first.
func StateNames(workflows []shortcut.Workflow) []string {
	seen := map[string]bool{}
	var names []string
	for _, wf := range workflows {
		for _, s := range wf.States {
			if seen[s.Name] {
				continue
			}
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}
	return names
}

func findState(workflows []shortcut.Workflow, pred func(stateName string) bool) (shortcut.WorkflowState, bool) {
	for _, wf := range workflows {
		for _, s := range wf.States {
			if pred(strings.ToLower(s.Name)) {
				return s, true
			}
		}
	}
	return shortcut.WorkflowState{}, false
}

func exactState(name string, workflows []shortcut.Workflow) (shortcut.WorkflowState, bool) {
	return findState(workflows, func(s string) bool { return s == name })
}

func containingState(name string, workflows []shortcut.Workflow) (shortcut.WorkflowState, bool) {
	return findState(workflows, func(s string) bool { return strings.Contains(s, name) })
}

func aliasState(name string, workflows []shortcut.Workflow) (shortcut.WorkflowState, bool) {
	for _, a := range aliases {
		if !a.matches(name) {
			continue
		}
		if s, ok := findState(workflows, func(s string) bool { return strings.Contains(s, a.Label) }); ok {
			return s, true
		}
	}
	return shortcut.WorkflowState{}, false
}

// StateNotFoundError is returned by callers that cannot proceed without a state.
// It lists every valid name so the user can pick one.
type StateNotFoundError struct {
	Name       string
	ValidNames []string
}

func (e *StateNotFoundError) Error() string {
	if len(e.ValidNames) == 0 {
		return fmt.Sprintf("workflow state %q not found: no workflow states are configured", e.Name)
	}
	return fmt.Sprintf("workflow state %q not found. Valid states: %s", e.Name, strings.Join(e.ValidNames, ", "))
}
