// Package events defines the catalog change notifications published to the
// message broker and the publisher/consumer plumbing around them.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types, also used as routing keys on the topic exchange.
const (
	AppearanceCreated = "appearance.created"
	EpisodeDeleted    = "episode.deleted"
	GuestDeleted      = "guest.deleted"
)

// Event is published after a write commits.  It carries ids only;
// consumers that need more read it from the API.
type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	OccurredAt   time.Time `json:"occurred_at"`
	AppearanceID uint64    `json:"appearance_id,omitempty"`
	EpisodeID    uint64    `json:"episode_id,omitempty"`
	GuestID      uint64    `json:"guest_id,omitempty"`
	Rating       int       `json:"rating,omitempty"`
}

// New stamps an event of the given type with a fresh id and the current time.
func New(typ string) Event {
	return Event{ID: uuid.NewString(), Type: typ, OccurredAt: time.Now().UTC()}
}

// Publisher delivers events.  Implementations must not block the request
// for long and callers treat a failed publish as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop discards every event.  It is used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }
