package core

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/opensdd/osdd-shortcut/core/prefetch"
)

// Invocation carries what one dispatched action needs and is discarded when the
// action returns.
type Invocation struct {
	// RequestID correlates log lines of one action.
	RequestID string
	Action    string
	Reference *prefetch.Reference
	Log       *slog.Logger
}

// NewInvocation starts a fresh invocation with its own reference-data memo.
func NewInvocation(action string, src prefetch.Source) *Invocation {
	id := uuid.NewString()
	return &Invocation{
		RequestID: id,
		Action:    action,
		Reference: prefetch.New(src),
		Log:       slog.With("op", action, "request_id", id),
	}
}

func (i *Invocation) GetReference() *prefetch.Reference {
	if i == nil {
		return nil
	}
	return i.Reference
}

func (i *Invocation) Logger() *slog.Logger {
	if i == nil || i.Log == nil {
		return slog.Default()
	}
	return i.Log
}
