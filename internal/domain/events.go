package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventMethodCreated       EventType = "method.created"
	EventMethodUpdated       EventType = "method.updated"
	EventMethodStatusToggled EventType = "method.status_toggled"
	EventMethodDeleted       EventType = "method.deleted"
)

// MethodEvent is the notification emitted after a zone method changes.
// Enabled is set on status toggles; Snapshot holds the final state on deletion.
type MethodEvent struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	InstanceID int64           `json:"instance_id"`
	MethodID   string          `json:"method_id"`
	ZoneID     int64           `json:"zone_id"`
	Enabled    *bool           `json:"enabled,omitempty"`
	Snapshot   *MethodInstance `json:"snapshot,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher delivers events synchronously to whatever is registered behind it.
type EventPublisher interface {
	Publish(ctx context.Context, event MethodEvent)
}
