// Package queue defines the activity messages exchanged over RabbitMQ, the
// publisher the web server uses to emit them and the consumer that writes
// them to the activity log.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Action names what happened to an entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ActivityEvent is published after a venue, artist or show mutation has
// committed.  It carries enough to log the change without querying the
// database.
type ActivityEvent struct {
	EventID    string `json:"event_id"`
	Action     Action `json:"action"`
	Entity     string `json:"entity"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewActivityEvent stamps a new event with a random id.
func NewActivityEvent(action Action, entity string, id uint64, name string, at time.Time) ActivityEvent {
	return ActivityEvent{
		EventID:    uuid.NewString(),
		Action:     action,
		Entity:     entity,
		EntityID:   id,
		Name:       name,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
