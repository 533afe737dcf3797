package services

import (
	"context"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/SscSPs/trade_journal_app/internal/dto"
)

// JournalEntryReaderSvc defines owner-scoped read operations for journal entries.
type JournalEntryReaderSvc interface {
	// GetEntry returns the entry and its images. An entry that does not exist and an
	// entry owned by someone else both yield apperrors.ErrNotFound.
	GetEntry(ctx context.Context, ownerID, entryID string) (*domain.EntryWithImages, error)

	// ListEntries returns the owner's entries ordered by trade date, newest first.
	ListEntries(ctx context.Context, ownerID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriterSvc defines write operations for journal entries.
type JournalEntryWriterSvc interface {
	// CreateEntry persists a new entry and then attaches each upload independently.
	// Uploads that could not be stored are reported in FailedUploads.
	CreateEntry(ctx context.Context, ownerID string, req dto.CreateEntryRequest, uploads []domain.ImageUpload) (*domain.EntryWithImages, error)

	// UpdateEntry overwrites the entry fields, removes the listed images and appends uploads.
	UpdateEntry(ctx context.Context, ownerID, entryID string, req dto.UpdateEntryRequest, deleteImageIDs []string, uploads []domain.ImageUpload) (*domain.EntryWithImages, error)

	// DeleteEntry removes the entry together with every attached image and its file.
	DeleteEntry(ctx context.Context, ownerID, entryID string) error
}

// JournalEntrySvcFacade combines all journal entry service interfaces.
type JournalEntrySvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
}
