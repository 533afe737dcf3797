package pgsql

import (
	"context"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trade_journal_app/internal/core/ports/repositories"
	"github.com/SscSPs/trade_journal_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalEntryRepository struct {
	BaseRepository
}

func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

const (
	entryColumns = `entry_id, owner_id, trade_date, journal_text, profit, symbol, size, created_at, last_updated_at`
	imageColumns = `image_id, entry_id, image_ref, file_name, content_type, size_bytes, created_at`
)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		OwnerID:       d.OwnerID,
		TradeDate:     d.TradeDate,
		JournalText:   d.JournalText,
		Profit:        d.Profit,
		Symbol:        d.Symbol,
		Size:          d.Size,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		OwnerID:     m.OwnerID,
		TradeDate:   m.TradeDate.UTC(),
		JournalText: m.JournalText,
		Profit:      m.Profit,
		Symbol:      m.Symbol,
		Size:        m.Size,
		Timestamps: domain.Timestamps{
			CreatedAt:     m.CreatedAt.UTC(),
			LastUpdatedAt: m.LastUpdatedAt.UTC(),
		},
	}
}

func toModelImage(d domain.JournalEntryImage) models.JournalEntryImage {
	return models.JournalEntryImage{
		ImageID:     d.ImageID,
		EntryID:     d.EntryID,
		ImageRef:    d.ImageRef,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		CreatedAt:   d.CreatedAt,
	}
}

func toDomainImage(m models.JournalEntryImage) domain.JournalEntryImage {
	return domain.JournalEntryImage{
		ImageID:     m.ImageID,
		EntryID:     m.EntryID,
		ImageRef:    m.ImageRef,
		FileName:    m.FileName,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := toModelEntry(entry)
	query := `
        INSERT INTO journal_entries (` + entryColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.OwnerID,
		m.TradeDate,
		m.JournalText,
		m.Profit,
		m.Symbol,
		m.Size,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	return r.mapError(err, "failed to save journal entry")
}

// FindEntryByID returns apperrors.ErrNotFound when the entry is missing or owned by someone else.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND owner_id = $2;`
	rows, err := r.Pool.Query(ctx, query, entryID, ownerID)
	if err != nil {
		return nil, r.mapError(err, "failed to query journal entry")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, r.mapError(err, "failed to scan journal entry")
	}
	entry := toDomainEntry(m)
	return &entry, nil
}

// ListEntriesByOwner returns the owner's entries, newest trade first, ties by creation order.
func (r *PgxJournalEntryRepository) ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.JournalEntry, error) {
	query := `
        SELECT ` + entryColumns + `
        FROM journal_entries
        WHERE owner_id = $1
        ORDER BY trade_date DESC, created_at ASC, entry_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, r.mapError(err, "failed to list journal entries")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, r.mapError(err, "failed to scan journal entries")
	}

	entries := make([]domain.JournalEntry, 0, len(ms))
	for _, m := range ms {
		entries = append(entries, toDomainEntry(m))
	}
	return entries, nil
}

func (r *PgxJournalEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := toModelEntry(entry)
	query := `
        UPDATE journal_entries
        SET trade_date = $3, journal_text = $4, profit = $5, symbol = $6, size = $7, last_updated_at = $8
        WHERE entry_id = $1 AND owner_id = $2;
    `
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.OwnerID,
		m.TradeDate,
		m.JournalText,
		m.Profit,
		m.Symbol,
		m.Size,
		m.LastUpdatedAt,
	)
	if err != nil {
		return r.mapError(err, "failed to update journal entry")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes the entry; its image rows go with it through the foreign key cascade.
func (r *PgxJournalEntryRepository) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND owner_id = $2;`, entryID, ownerID)
	if err != nil {
		return r.mapError(err, "failed to delete journal entry")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalEntryRepository) SaveImage(ctx context.Context, image domain.JournalEntryImage) error {
	m := toModelImage(image)
	query := `
        INSERT INTO journal_entry_images (` + imageColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.ImageID,
		m.EntryID,
		m.ImageRef,
		m.FileName,
		m.ContentType,
		m.SizeBytes,
		m.CreatedAt,
	)
	return r.mapError(err, "failed to save journal entry image")
}

func (r *PgxJournalEntryRepository) FindImagesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryImage, error) {
	query := `
        SELECT ` + imageColumns + `
        FROM journal_entry_images
        WHERE entry_id = $1
        ORDER BY created_at ASC, image_id ASC;
    `
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, r.mapError(err, "failed to list journal entry images")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntryImage])
	if err != nil {
		return nil, r.mapError(err, "failed to scan journal entry images")
	}

	images := make([]domain.JournalEntryImage, 0, len(ms))
	for _, m := range ms {
		images = append(images, toDomainImage(m))
	}
	return images, nil
}

func (r *PgxJournalEntryRepository) FindImageByID(ctx context.Context, entryID, imageID string) (*domain.JournalEntryImage, error) {
	query := `SELECT ` + imageColumns + ` FROM journal_entry_images WHERE image_id = $1 AND entry_id = $2;`
	rows, err := r.Pool.Query(ctx, query, imageID, entryID)
	if err != nil {
		return nil, r.mapError(err, "failed to query journal entry image")
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntryImage])
	if err != nil {
		return nil, r.mapError(err, "failed to scan journal entry image")
	}
	image := toDomainImage(m)
	return &image, nil
}

func (r *PgxJournalEntryRepository) DeleteImage(ctx context.Context, entryID, imageID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entry_images WHERE image_id = $1 AND entry_id = $2;`, imageID, entryID)
	if err != nil {
		return r.mapError(err, "failed to delete journal entry image")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
