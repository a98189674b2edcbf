package render

import (
	"fmt"

	"github.com/opensdd/osdd-shortcut/core/shortcut"
)

// Index labels raw IDs found in stories with human readable names. A nil *Index
// is valid and labels nothing.
type Index struct {
	states  map[int64]shortcut.WorkflowState
	members map[string]shortcut.Member
}

// NewIndex builds an Index from reference data. State IDs are unique within a
// workflow only, so on collision the first listed workflow wins, the same order
// the state resolver uses.
func NewIndex(workflows []shortcut.Workflow, members []shortcut.Member) *Index {
	ix := &Index{
		states:  map[int64]shortcut.WorkflowState{},
		members: map[string]shortcut.Member{},
	}
	for _, wf := range workflows {
		for _, st := range wf.States {
			if _, ok := ix.states[st.ID]; !ok {
				ix.states[st.ID] = st
			}
		}
	}
	for _, m := range members {
		ix.members[m.ID] = m
	}
	return ix
}

func (ix *Index) StateName(id int64) string {
	if ix != nil {
		if st, ok := ix.states[id]; ok {
			return st.Name
		}
	}
	return fmt.Sprintf("state %d", id)
}

func (ix *Index) MemberName(id string) string {
	if ix != nil {
		if m, ok := ix.members[id]; ok {
			return memberLabel(m)
		}
	}
	return id
}

func memberLabel(m shortcut.Member) string {
	name := m.DisplayName()
	if name == "" {
		name = m.ID
	}
	if h := m.MentionHandle(); h != "" {
		return fmt.Sprintf("%s (@%s)", name, h)
	}
	return name
}
