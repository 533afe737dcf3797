package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/events"
	portsrepo "github.com/SscSPs/trade_journal_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// journalEntryService implements JournalEntrySvcFacade.
type journalEntryService struct {
	BaseService
	entryRepo  portsrepo.JournalEntryRepositoryFacade
	imageStore storage.ImageStore
	publisher  events.EntryEventPublisher
	now        func() time.Time
}

// JournalEntryServiceOption is a function that configures a journalEntryService
type JournalEntryServiceOption func(*journalEntryService)

// WithEntryEventPublisher sets the publisher notified after every successful mutation.
func WithEntryEventPublisher(p events.EntryEventPublisher) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) JournalEntryServiceOption {
	return func(s *journalEntryService) {
		s.now = now
	}
}

// NewJournalEntryService creates a new journal entry service.
func NewJournalEntryService(entryRepo portsrepo.JournalEntryRepositoryFacade, imageStore storage.ImageStore, opts ...JournalEntryServiceOption) portssvc.JournalEntrySvcFacade {
	s := &journalEntryService{
		entryRepo:  entryRepo,
		imageStore: imageStore,
		publisher:  noopPublisher{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure journalEntryService implements the JournalEntrySvcFacade interface
var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// timestamp returns the current time at the resolution the record store keeps.
func (s *journalEntryService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// CreateEntry implements portssvc.JournalEntryWriterSvc
func (s *journalEntryService) CreateEntry(ctx context.Context, ownerID string, req dto.CreateEntryRequest, uploads []domain.ImageUpload) (*domain.EntryWithImages, error) {
	fields, err := parseEntryFields(req.TradeDate, req.JournalText, req.Profit, req.Symbol, req.Size, true)
	if err != nil {
		s.LogDebug(ctx, "Rejected journal entry input", slog.String("reason", err.Error()))
		return nil, err
	}
	if !fields.profit.Valid {
		fields.profit = decimal.NewNullDecimal(decimal.New(0, -domain.ProfitPlaces))
	}
	if !fields.size.Valid {
		fields.size = decimal.NewNullDecimal(decimal.New(0, -domain.SizePlaces))
	}

	now := s.timestamp()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		OwnerID:     ownerID,
		TradeDate:   fields.tradeDate,
		JournalText: fields.journalText,
		Profit:      fields.profit,
		Symbol:      fields.symbol,
		Size:        fields.size,
		Timestamps:  domain.Timestamps{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	images, failed := s.attachImages(ctx, entry.EntryID, uploads)
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int("images", len(images)),
		slog.Int("failed_uploads", len(failed)))
	s.publish(ctx, events.EntryCreated, &entry, len(images))

	return &domain.EntryWithImages{Entry: entry, Images: images, FailedUploads: failed}, nil
}

// attachImages stores each upload independently. A failure is logged, its stored
// file is removed and its name is returned in failed; the remaining uploads proceed.
func (s *journalEntryService) attachImages(ctx context.Context, entryID string, uploads []domain.ImageUpload) (attached []domain.JournalEntryImage, failed []string) {
	attached = make([]domain.JournalEntryImage, 0, len(uploads))
	for _, upload := range uploads {
		ref, err := s.imageStore.Store(ctx, upload.FileName, upload.ContentType, upload.Data)
		if err != nil {
			s.LogError(ctx, err, "Failed to store image file", slog.String("entry_id", entryID), slog.String("file_name", upload.FileName))
			failed = append(failed, upload.FileName)
			continue
		}

		image := domain.JournalEntryImage{
			ImageID:     uuid.NewString(),
			EntryID:     entryID,
			ImageRef:    ref,
			FileName:    upload.FileName,
			ContentType: upload.ContentType,
			SizeBytes:   int64(len(upload.Data)),
			CreatedAt:   s.timestamp(),
		}
		if err := s.entryRepo.SaveImage(ctx, image); err != nil {
			s.LogError(ctx, err, "Failed to save image record", slog.String("entry_id", entryID), slog.String("file_name", upload.FileName))
			s.removeFile(ctx, ref)
			failed = append(failed, upload.FileName)
			continue
		}
		attached = append(attached, image)
	}
	return attached, failed
}

// removeFile deletes a stored file. Failures are logged and otherwise ignored.
func (s *journalEntryService) removeFile(ctx context.Context, ref string) {
	if err := s.imageStore.Delete(ctx, ref); err != nil {
		s.LogWarn(ctx, err, "Failed to delete image file", slog.String("image_ref", ref))
	}
}

// findOwnedEntry loads an entry only if ownerID owns it.
func (s *journalEntryService) findOwnedEntry(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, apperrors.ErrNotFound
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, ownerID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Journal entry not found for owner", slog.String("entry_id", entryID))
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to load journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

func (s *journalEntryService) loadImages(ctx context.Context, entryID string) ([]domain.JournalEntryImage, error) {
	images, err := s.entryRepo.FindImagesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry images", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load images of entry %s: %w", entryID, err)
	}
	if images == nil {
		images = []domain.JournalEntryImage{}
	}
	return images, nil
}

// GetEntry implements portssvc.JournalEntryReaderSvc
func (s *journalEntryService) GetEntry(ctx context.Context, ownerID, entryID string) (*domain.EntryWithImages, error) {
	entry, err := s.findOwnedEntry(ctx, ownerID, entryID)
	if err != nil {
		return nil, err
	}
	images, err := s.loadImages(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return &domain.EntryWithImages{Entry: *entry, Images: images}, nil
}

// ListEntries implements portssvc.JournalEntryReaderSvc
func (s *journalEntryService) ListEntries(ctx context.Context, ownerID string) ([]domain.JournalEntry, error) {
	entries, err := s.entryRepo.ListEntriesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// UpdateEntry implements portssvc.JournalEntryWriterSvc.
// An empty trade date keeps the stored one, while empty text, profit, symbol and
// size overwrite the stored values (profit and size become null).
// Concurrent updates of the same entry are last-writer-wins.
func (s *journalEntryService) UpdateEntry(ctx context.Context, ownerID, entryID string, req dto.UpdateEntryRequest, deleteImageIDs []string, uploads []domain.ImageUpload) (*domain.EntryWithImages, error) {
	existing, err := s.findOwnedEntry(ctx, ownerID, entryID)
	if err != nil {
		return nil, err
	}

	fields, err := parseEntryFields(req.TradeDate, req.JournalText, req.Profit, req.Symbol, req.Size, false)
	if err != nil {
		s.LogDebug(ctx, "Rejected journal entry update", slog.String("entry_id", entryID), slog.String("reason", err.Error()))
		return nil, err
	}

	updated := *existing
	if fields.hasTradeDate {
		updated.TradeDate = fields.tradeDate
	}
	updated.JournalText = fields.journalText
	updated.Profit = fields.profit
	updated.Symbol = fields.symbol
	updated.Size = fields.size
	updated.LastUpdatedAt = s.timestamp()

	if err := s.entryRepo.UpdateEntry(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", entryID, err)
	}

	if err := s.deleteImages(ctx, entryID, deleteImageIDs); err != nil {
		return nil, err
	}

	_, failed := s.attachImages(ctx, entryID, uploads)

	images, err := s.loadImages(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated",
		slog.String("entry_id", entryID),
		slog.Int("images", len(images)),
		slog.Int("failed_uploads", len(failed)))
	s.publish(ctx, events.EntryUpdated, &updated, len(images))

	return &domain.EntryWithImages{Entry: updated, Images: images, FailedUploads: failed}, nil
}

// deleteImages removes the listed images of entryID, file first and then record.
// Ids that are malformed, unknown or attached to another entry are skipped.
func (s *journalEntryService) deleteImages(ctx context.Context, entryID string, imageIDs []string) error {
	seen := make(map[string]struct{}, len(imageIDs))
	for _, imageID := range imageIDs {
		if _, dup := seen[imageID]; dup {
			continue
		}
		seen[imageID] = struct{}{}

		if _, err := uuid.Parse(imageID); err != nil {
			s.LogDebug(ctx, "Skipping malformed image id", slog.String("image_id", imageID))
			continue
		}
		image, err := s.entryRepo.FindImageByID(ctx, entryID, imageID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				s.LogDebug(ctx, "Skipping image not attached to entry", slog.String("entry_id", entryID), slog.String("image_id", imageID))
				continue
			}
			s.LogError(ctx, err, "Failed to load image", slog.String("image_id", imageID))
			return fmt.Errorf("failed to load image %s: %w", imageID, err)
		}

		s.removeFile(ctx, image.ImageRef)
		if err := s.entryRepo.DeleteImage(ctx, entryID, imageID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete image record", slog.String("image_id", imageID))
			return fmt.Errorf("failed to delete image %s: %w", imageID, err)
		}
	}
	return nil
}

// DeleteEntry implements portssvc.JournalEntryWriterSvc
func (s *journalEntryService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	entry, err := s.findOwnedEntry(ctx, ownerID, entryID)
	if err != nil {
		return err
	}

	images, err := s.loadImages(ctx, entryID)
	if err != nil {
		return err
	}
	for _, image := range images {
		s.removeFile(ctx, image.ImageRef)
		if err := s.entryRepo.DeleteImage(ctx, entryID, image.ImageID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete image record", slog.String("image_id", image.ImageID))
			return fmt.Errorf("failed to delete image %s: %w", image.ImageID, err)
		}
	}

	if err := s.entryRepo.DeleteEntry(ctx, ownerID, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.Int("images", len(images)))
	s.publish(ctx, events.EntryDeleted, entry, 0)
	return nil
}

// publish emits a lifecycle event. A publishing failure never fails the mutation.
func (s *journalEntryService) publish(ctx context.Context, eventType string, entry *domain.JournalEntry, imageCount int) {
	event := events.EntryEvent{
		EventType:  eventType,
		EntryID:    entry.EntryID,
		OwnerID:    entry.OwnerID,
		Symbol:     entry.Symbol,
		ImageCount: imageCount,
		Timestamp:  s.timestamp(),
	}
	if err := s.publisher.PublishEntryEvent(ctx, event); err != nil {
		s.LogWarn(ctx, err, "Failed to publish entry event", slog.String("event_type", eventType), slog.String("entry_id", entry.EntryID))
	}
}

type noopPublisher struct{}

func (noopPublisher) PublishEntryEvent(context.Context, events.EntryEvent) error { return nil }
