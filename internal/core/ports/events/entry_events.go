package events

import (
	"context"
	"time"
)

// Journal entry lifecycle event types.
const (
	EntryCreated = "journal_entry.created"
	EntryUpdated = "journal_entry.updated"
	EntryDeleted = "journal_entry.deleted"
)

// EntryEvent describes a change to a journal entry.
type EntryEvent struct {
	EventType  string    `json:"event_type"`
	EntryID    string    `json:"entry_id"`
	OwnerID    string    `json:"owner_id"`
	Symbol     string    `json:"symbol,omitempty"`
	ImageCount int       `json:"image_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// EntryEventPublisher publishes entry lifecycle events.
type EntryEventPublisher interface {
	PublishEntryEvent(ctx context.Context, event EntryEvent) error
}
