// Package audit records authentication events to a persistent trail. Writes
// are best-effort: a failed audit insert is logged and swallowed, never
// surfaced to the requester, because the login outcome must not depend on
// the trail.
package audit

import (
	"context"
	"log/slog"

	"github.com/foliohq/folio/internal/model"
)

// Auth event kinds, stored in the event column.
const (
	EventLoginSucceeded = "login_succeeded"
	EventLoginFailed    = "login_failed"
	EventLoginLocked    = "login_locked"
	EventLoginInactive  = "login_inactive"
)

// EventStore is the slice of the store the recorder needs.
type EventStore interface {
	InsertAuthEvent(ctx context.Context, e *model.AuthEvent) error
	ListAuthEvents(ctx context.Context, limit int) ([]model.AuthEvent, error)
}

// Recorder appends auth events to the trail and serves recent history to the
// admin dashboard.
type Recorder struct {
	store  EventStore
	logger *slog.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(store EventStore, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Record appends one event. The email is the attempted login identity (which
// may not correspond to any account) and sourceIP the resolved caller
// address; either may be empty.
func (r *Recorder) Record(ctx context.Context, event, email, sourceIP string) {
	e := &model.AuthEvent{Event: event, Email: email, SourceIP: sourceIP}
	if err := r.store.InsertAuthEvent(ctx, e); err != nil {
		r.logger.Error("failed to record auth event", "event", event, "error", err)
	}
}

// Recent returns the newest events, up to limit.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]model.AuthEvent, error) {
	return r.store.ListAuthEvents(ctx, limit)
}
