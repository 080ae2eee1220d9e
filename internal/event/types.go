// Package event defines the notification contract between the taskbin core
// and its UI collaborators (the CLI and the board TUI). The core publishes
// collection, permission, and failure events; collaborators subscribe
// without the core depending on them.
package event

import (
	"time"

	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/task"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "collection.changed")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// Event type identifiers.
const (
	TypeCollectionChanged = "collection.changed"
	TypePermissionChanged = "permission.changed"
	TypeOperationFailed   = "operation.failed"
)

// CollectionChangedEvent is emitted after every successful fetch, so
// subscribers always see the collection as the bin last confirmed it.
type CollectionChangedEvent struct {
	baseEvent
	Tasks []task.Task // Snapshot of the collection; safe to retain
}

// NewCollectionChangedEvent creates a CollectionChangedEvent.
func NewCollectionChangedEvent(tasks []task.Task) CollectionChangedEvent {
	return CollectionChangedEvent{
		baseEvent: newBaseEvent(TypeCollectionChanged),
		Tasks:     tasks,
	}
}

// PermissionChangedEvent is emitted when the gate moves between read-only
// and read-write.
type PermissionChangedEvent struct {
	baseEvent
	CanWrite bool
}

// NewPermissionChangedEvent creates a PermissionChangedEvent.
func NewPermissionChangedEvent(canWrite bool) PermissionChangedEvent {
	return PermissionChangedEvent{
		baseEvent: newBaseEvent(TypePermissionChanged),
		CanWrite:  canWrite,
	}
}

// OperationFailedEvent is emitted when a core operation fails. Kind tells
// the subscriber which recovery affordance applies.
type OperationFailedEvent struct {
	baseEvent
	Operation string      // "create", "update", "delete", "fetch", "grant"
	Kind      errors.Kind // Classified failure category
	Message   string      // Human-readable description
}

// NewOperationFailedEvent creates an OperationFailedEvent from an error.
func NewOperationFailedEvent(operation string, err error) OperationFailedEvent {
	return OperationFailedEvent{
		baseEvent: newBaseEvent(TypeOperationFailed),
		Operation: operation,
		Kind:      errors.KindOf(err),
		Message:   err.Error(),
	}
}
