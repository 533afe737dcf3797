package repositories

import (
	"context"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
)

// JournalEntryReader defines owner-scoped read operations for journal entries.
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry by ID only if it belongs to ownerID.
	// Returns apperrors.ErrNotFound otherwise.
	FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByOwner returns the owner's entries, most recent trade first.
	ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries.
type JournalEntryWriter interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntry replaces the mutable fields of the entry matching (EntryID, OwnerID).
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes the entry matching (entryID, ownerID). Image rows cascade.
	DeleteEntry(ctx context.Context, ownerID, entryID string) error
}

// JournalEntryImageRepository defines operations on the images attached to an entry.
type JournalEntryImageRepository interface {
	SaveImage(ctx context.Context, image domain.JournalEntryImage) error

	// FindImagesByEntryID returns the images of an entry in creation order.
	FindImagesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryImage, error)

	// FindImageByID returns the image only if it is attached to entryID.
	FindImageByID(ctx context.Context, entryID, imageID string) (*domain.JournalEntryImage, error)

	DeleteImage(ctx context.Context, entryID, imageID string) error
}

// JournalEntryRepositoryFacade combines all journal entry repository interfaces.
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
	JournalEntryImageRepository
}
