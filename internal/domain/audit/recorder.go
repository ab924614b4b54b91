// Package audit defines the best-effort mutation trail.
// Document mutations (intakes, sales, payments) are recorded with their
// payload for later review. Recording never fails the business operation.
package audit

import (
	"context"

	"gyh/internal/core/id"
)

// Action is the recorded mutation kind.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is one audit record.
type Entry struct {
	EntityType string
	EntityID   id.ID
	Action     Action
	UserID     id.ID

	// Payload is serialized to JSON for storage; may be nil for deletes.
	Payload any
}

// Recorder persists audit entries. Implementations must be best-effort:
// log failures, never return them into the business flow.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Noop discards all entries.
type Noop struct{}

func (Noop) Record(ctx context.Context, e Entry) {}
