package models

import "time"

// Event types published after successful mutations.
const (
	EventHousingCreated = "housing.created"
	EventHousingDeleted = "housing.deleted"
	EventReviewCreated  = "review.created"
)

// Event is a domain event, keyed by the affected entity.
type Event struct {
	ID         string    `json:"id"`          // Unique event id
	Type       string    `json:"type"`        // One of the Event* constants
	Key        string    `json:"key"`         // Entity id used as the message key
	OccurredAt time.Time `json:"occurred_at"` // When the mutation was persisted
	Payload    any       `json:"payload"`     // Entity snapshot
}
