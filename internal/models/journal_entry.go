package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
// Profit and Size map to nullable NUMERIC columns.
type JournalEntry struct {
	EntryID       string              `db:"entry_id"`
	OwnerID       string              `db:"owner_id"`
	TradeDate     time.Time           `db:"trade_date"`
	JournalText   string              `db:"journal_text"`
	Profit        decimal.NullDecimal `db:"profit"`
	Symbol        string              `db:"symbol"`
	Size          decimal.NullDecimal `db:"size"`
	CreatedAt     time.Time           `db:"created_at"`
	LastUpdatedAt time.Time           `db:"last_updated_at"`
}

// JournalEntryImage is the journal_entry_images table row.
type JournalEntryImage struct {
	ImageID     string    `db:"image_id"`
	EntryID     string    `db:"entry_id"`
	ImageRef    string    `db:"image_ref"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	CreatedAt   time.Time `db:"created_at"`
}
