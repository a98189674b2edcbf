package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/opensdd/osdd-shortcut/core"
	"github.com/opensdd/osdd-shortcut/core/ident"
	"github.com/opensdd/osdd-shortcut/core/prefetch"
	"github.com/opensdd/osdd-shortcut/core/render"
	"github.com/opensdd/osdd-shortcut/core/resolve"
	"github.com/opensdd/osdd-shortcut/core/shortcut"
)

// Backend is the remote side of every action. *shortcut.Client satisfies it.
type Backend interface {
	prefetch.Source
	GetStory(ctx context.Context, id int64) (*shortcut.Story, error)
	CreateStory(ctx context.Context, in shortcut.StoryCreate) (*shortcut.Story, error)
	UpdateStory(ctx context.Context, id int64, in shortcut.StoryUpdate) (*shortcut.Story, error)
	SearchStories(ctx context.Context, query string, limit int) ([]shortcut.Story, error)
	CreateComment(ctx context.Context, storyID int64, text string) (*shortcut.Comment, error)
	CreateTask(ctx context.Context, storyID int64, description string) (*shortcut.Task, error)
	GetEpic(ctx context.Context, id int64) (*shortcut.Epic, error)
}

type Dispatcher struct {
	backend Backend
}

func NewDispatcher(b Backend) *Dispatcher {
	return &Dispatcher{backend: b}
}

// Dispatch validates p, runs the action and renders its result. Each call gets
// its own Invocation, so reference data is fetched at most once per call and never
// reused across calls.
func (d *Dispatcher) Dispatch(ctx context.Context, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	inv := core.NewInvocation(string(p.Action), d.backend)
	log := inv.Logger()
	log.Debug("Dispatching action")

	var (
		out string
		err error
	)
	switch p.Action {
	case ActionGetStory:
		out, err = d.getStory(ctx, inv, p)
	case ActionSearchStories:
		out, err = d.searchStories(ctx, inv, p)
	case ActionCreateStory:
		out, err = d.createStory(ctx, inv, p)
	case ActionUpdateStory:
		out, err = d.updateStory(ctx, inv, p)
	case ActionMoveStory:
		out, err = d.moveStory(ctx, inv, p)
	case ActionAssignStory:
		out, err = d.assignStory(ctx, inv, p)
	case ActionAddComment:
		out, err = d.addComment(ctx, p)
	case ActionAddTask:
		out, err = d.addTask(ctx, p)
	case ActionGetEpic:
		out, err = d.getEpic(ctx, p)
	case ActionListWorkflows:
		out, err = d.listWorkflows(ctx, inv)
	case ActionListMembers:
		out, err = d.listMembers(ctx, inv)
	case ActionWhoami:
		out, err = d.whoami(ctx, inv)
	default:
		err = fmt.Errorf("action %q is not implemented", p.Action)
	}
	if err != nil {
		log.Debug("Action failed", "error", err)
		return "", err
	}
	log.Debug("Action finished", "bytes", len(out))
	return out, nil
}

func parseStory(input string) (int64, error) {
	id, err := ident.Parse(input)
	if err != nil {
		return 0, fmt.Errorf("invalid story reference: %w", err)
	}
	return id, nil
}

// resolveState fails when the name matches nothing, listing the valid names.
func resolveState(ctx context.Context, inv *core.Invocation, name string) (shortcut.WorkflowState, error) {
	wfs, err := inv.GetReference().FetchWorkflows(ctx)
	if err != nil {
		return shortcut.WorkflowState{}, err
	}
	st, ok := resolve.State(name, wfs)
	if !ok {
		return shortcut.WorkflowState{}, &resolve.StateNotFoundError{Name: name, ValidNames: resolve.StateNames(wfs)}
	}
	inv.Logger().Debug("State resolved", "input", name, "state", st.Name, "state_id", st.ID)
	return st, nil
}

func resolveOwner(ctx context.Context, inv *core.Invocation, input string) (string, bool, error) {
	ref := inv.GetReference()
	id, ok, err := resolve.Member(ctx, input, ref, ref)
	if err != nil {
		return "", false, err
	}
	inv.Logger().Debug("Owner resolved", "input", input, "found", ok)
	return id, ok, nil
}

func ownerNote(input string) string {
	return fmt.Sprintf("Note: no member matched %q, so the owner was not changed.\n", input)
}

// storyView renders s, labelling its state and owners from reference data.
func storyView(ctx context.Context, inv *core.Invocation, s *shortcut.Story) (string, error) {
	ref := inv.GetReference()
	kinds := []prefetch.Kind{prefetch.Workflows}
	if len(s.OwnerIDs) > 0 {
		kinds = append(kinds, prefetch.Members)
	}
	if err := ref.Process(ctx, kinds...); err != nil {
		return "", err
	}
	wfs, err := ref.FetchWorkflows(ctx)
	if err != nil {
		return "", err
	}
	var members []shortcut.Member
	if len(s.OwnerIDs) > 0 {
		if members, err = ref.FetchMembers(ctx); err != nil {
			return "", err
		}
	}
	return render.Story(*s, render.NewIndex(wfs, members))
}

// warmReference loads the reference data that resolving p's state and owner
// will read. Identifiers must be parsed before this is called.
func warmReference(ctx context.Context, inv *core.Invocation, p Params) error {
	var kinds []prefetch.Kind
	if p.State != "" || p.Action == ActionCreateStory {
		kinds = append(kinds, prefetch.Workflows)
	}
	switch owner := strings.TrimSpace(p.Owner); {
	case owner == "":
	case strings.EqualFold(owner, resolve.Me):
		kinds = append(kinds, prefetch.Identity)
	default:
		kinds = append(kinds, prefetch.Members)
	}
	return inv.GetReference().Process(ctx, kinds...)
}

func withNotes(out string, notes []string) string {
	if len(notes) == 0 {
		return out
	}
	return out + "\n" + strings.Join(notes, "")
}

func (d *Dispatcher) getStory(ctx context.Context, inv *core.Invocation, p Params) (string, error) {
	id, err := parseStory(p.Story)
	if err != nil {
		return "", err
	}
	s, err := d.backend.GetStory(ctx, id)
	if err != nil {
		return "", err
	}
	return storyView(ctx, inv, s)
}

func (d *Dispatcher) searchStories(ctx context.Context, inv *core.Invocation, p Params) (string, error) {
	limit := p.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}
	stories, err := d.backend.SearchStories(ctx, strings.TrimSpace(p.Query), limit)
	if err != nil {
		return "", err
	}
	var wfs []shortcut.Workflow
	if len(stories) > 0 {
		if wfs, err = inv.GetReference().FetchWorkflows(ctx); err != nil {
			return "", err
		}
	}
	return render.Stories(stories, render.NewIndex(wfs, nil))
}

func (d *Dispatcher) createStory(ctx context.Context, inv *core.Invocation, p Params) (string, error) {
	if err := warmReference(ctx, inv, p); err != nil {
		return "", err
	}
	in := shortcut.StoryCreate{
		Name:        strings.TrimSpace(p.Name),
		Description: p.Description,
		StoryType:   p.StoryType,
		Estimate:    p.Estimate,
	}
	if in.StoryType == "" {
		in.StoryType = StoryTypeFeature
	}

	if p.State != "" {
		st, err := resolveState(ctx, inv, p.State)
		if err != nil {
			return "", err
		}
		in.WorkflowStateID = st.ID
	} else {
		wfs, err := inv.GetReference().FetchWorkflows(ctx)
		if err != nil {
			return "", err
		}
		if len(wfs) == 0 {
			return "", fmt.Errorf("cannot create a story: no workflows are configured")
		}
		in.WorkflowStateID = wfs[0].DefaultStateID
	}

	var notes []string
	if p.Owner != "" {
		ownerID, ok, err := resolveOwner(ctx, inv, p.Owner)
		if err != nil {
			return "", err
		}
		if ok {
			in.OwnerIDs = []string{ownerID}
		} else {
			notes = append(notes, ownerNote(p.Owner))
		}
	}

	s, err := d.backend.CreateStory(ctx, in)
	if err != nil {
		return "", err
	}
	out, err := storyView(ctx, inv, s)
	if err != nil {
		return "", err
	}
	return withNotes(fmt.Sprintf("Created sc-%d.\n\n", s.ID)+out, notes), nil
}

func (d *Dispatcher) updateStory(ctx context.Context, inv *core.Invocation, p Params) (string, error) {
	id, err := parseStory(p.Story)
	if err != nil {
		return "", err
	}
	if err := warmReference(ctx, inv, p); err != nil {
		return "", err
	}
	var in shortcut.StoryUpdate
	if name := strings.TrimSpace(p.Name); name != "" {
		in.Name = &name
	}
	if p.Description != "" {
		in.Description = &p.Description
	}
	if p.StoryType != "" {
		in.StoryType = &p.StoryType
	}
	in.Estimate = p.Estimate
	if p.State != "" {
		st, err := resolveState(ctx, inv, p.State)
		if err != nil {
			return "", err
		}
		in.WorkflowStateID = &st.ID
	}

	var notes []string
	if p.Owner != "" {
		ownerID, ok, err := resolveOwner(ctx, inv, p.Owner)
		if err != nil {
			return "", err
		}
		if ok {
			in.OwnerIDs = []string{ownerID}
		} else {
			notes = append(notes, ownerNote(p.Owner))
		}
	}

	s, err := d.backend.UpdateStory(ctx, id, in)
	if err != nil {
		return "", err
	}
	out, err := storyView(ctx, inv, s)
	if err != nil {
		return "", err
	}
	return withNotes(fmt.Sprintf("Updated sc-%d.\n\n", s.ID)+out, notes), nil
}

func (d *Dispatcher) moveStory(ctx context.Context, inv *core.Invocation, p Params) (string, error) {
	id, err := parseStory(p.Story)
	if err != nil {
		return "", err
	}
	if err := warmReference(ctx, inv, p); err != nil {
		return "", err
	}
	st, err := resolveState(ctx, inv, p.State)
	if err != nil {
		return "", err
	}
	s, err := d.backend.UpdateStory(ctx, id, shortcut.StoryUpdate{WorkflowStateID: &st.ID})
	if err != nil {
		return "", err
	}
	out, err := storyView(ctx, inv, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved sc-%d to %s.\n\n", s.ID, st.Name) + out, nil
}

// assignStory replaces the owners of a story. Unlike create and update, an owner
// that matches nobody is an error here since assigning is the whole point.
func (d *Dispatcher) assignStory(ctx context.Context, inv *core.Invocation, p Params) (string, error) {
	id, err := parseStory(p.Story)
	if err != nil {
		return "", err
	}
	if err := warmReference(ctx, inv, p); err != nil {
		return "", err
	}
	ownerID, ok, err := resolveOwner(ctx, inv, p.Owner)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &resolve.MemberNotFoundError{Input: p.Owner}
	}
	s, err := d.backend.UpdateStory(ctx, id, shortcut.StoryUpdate{OwnerIDs: []string{ownerID}})
	if err != nil {
		return "", err
	}
	out, err := storyView(ctx, inv, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Assigned sc-%d.\n\n", s.ID) + out, nil
}

func (d *Dispatcher) addComment(ctx context.Context, p Params) (string, error) {
	id, err := parseStory(p.Story)
	if err != nil {
		return "", err
	}
	c, err := d.backend.CreateComment(ctx, id, p.Text)
	if err != nil {
		return "", err
	}
	return render.Comment(id, *c), nil
}

func (d *Dispatcher) addTask(ctx context.Context, p Params) (string, error) {
	id, err := parseStory(p.Story)
	if err != nil {
		return "", err
	}
	t, err := d.backend.CreateTask(ctx, id, strings.TrimSpace(p.Text))
	if err != nil {
		return "", err
	}
	return render.Task(id, *t), nil
}

func (d *Dispatcher) getEpic(ctx context.Context, p Params) (string, error) {
	id, err := ident.Parse(p.Epic)
	if err != nil {
		return "", fmt.Errorf("invalid epic reference: %w", err)
	}
	e, err := d.backend.GetEpic(ctx, id)
	if err != nil {
		return "", err
	}
	return render.Epic(*e)
}

func (d *Dispatcher) listWorkflows(ctx context.Context, inv *core.Invocation) (string, error) {
	wfs, err := inv.GetReference().FetchWorkflows(ctx)
	if err != nil {
		return "", err
	}
	return render.Workflows(wfs)
}

func (d *Dispatcher) listMembers(ctx context.Context, inv *core.Invocation) (string, error) {
	members, err := inv.GetReference().FetchMembers(ctx)
	if err != nil {
		return "", err
	}
	return render.Members(members)
}

func (d *Dispatcher) whoami(ctx context.Context, inv *core.Invocation) (string, error) {
	me, err := inv.GetReference().FetchCurrentIdentity(ctx)
	if err != nil {
		return "", err
	}
	return render.Identity(me), nil
}
