// Package prefetch memoizes reference data (workflows, members, the current
// identity) for the lifetime of a single action. A Reference must not outlive the
// action that created it; nothing here is shared across invocations.
package prefetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opensdd/osdd-shortcut/core/shortcut"
)

// Source is the collaborator that actually fetches reference data.
type Source interface {
	FetchWorkflows(ctx context.Context) ([]shortcut.Workflow, error)
	FetchMembers(ctx context.Context) ([]shortcut.Member, error)
	FetchCurrentIdentity(ctx context.Context) (shortcut.Member, error)
}

// Kind names a reference collection that can be warmed up front.
type Kind string

const (
	Workflows Kind = "workflows"
	Members   Kind = "members"
	Identity  Kind = "identity"
)

// Reference wraps a Source and remembers successful results. Failed fetches are
// not remembered, so a later call within the same action tries again.
type Reference struct {
	src Source

	workflows     []shortcut.Workflow
	haveWorkflows bool
	members       []shortcut.Member
	haveMembers   bool
	identity      shortcut.Member
	haveIdentity  bool
}

func New(src Source) *Reference {
	return &Reference{src: src}
}

func (r *Reference) FetchWorkflows(ctx context.Context) ([]shortcut.Workflow, error) {
	if r.haveWorkflows {
		return r.workflows, nil
	}
	wfs, err := r.src.FetchWorkflows(ctx)
	if err != nil {
		return nil, err
	}
	r.workflows, r.haveWorkflows = wfs, true
	return wfs, nil
}

func (r *Reference) FetchMembers(ctx context.Context) ([]shortcut.Member, error) {
	if r.haveMembers {
		return r.members, nil
	}
	ms, err := r.src.FetchMembers(ctx)
	if err != nil {
		return nil, err
	}
	r.members, r.haveMembers = ms, true
	return ms, nil
}

func (r *Reference) FetchCurrentIdentity(ctx context.Context) (shortcut.Member, error) {
	if r.haveIdentity {
		return r.identity, nil
	}
	m, err := r.src.FetchCurrentIdentity(ctx)
	if err != nil {
		return shortcut.Member{}, err
	}
	r.identity, r.haveIdentity = m, true
	return m, nil
}

// Process fetches the requested collections in order, stopping at the first failure.
func (r *Reference) Process(ctx context.Context, kinds ...Kind) error {
	for i, k := range kinds {
		var err error
		switch k {
		case Workflows:
			_, err = r.FetchWorkflows(ctx)
		case Members:
			_, err = r.FetchMembers(ctx)
		case Identity:
			_, err = r.FetchCurrentIdentity(ctx)
		default:
			return fmt.Errorf("unknown reference kind [%v] at index %d", k, i)
		}
		if err != nil {
			return fmt.Errorf("failed to prefetch %s: %w", k, err)
		}
		slog.Debug("Reference data prefetched", "kind", k)
	}
	return nil
}
