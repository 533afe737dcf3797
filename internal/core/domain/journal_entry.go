package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Precision limits of the persisted decimal columns.
const (
	ProfitMaxDigits = 10
	ProfitPlaces    = 2
	SizeMaxDigits   = 5
	SizePlaces      = 2
	SymbolMaxLength = 10
)

// JournalEntry is one journaled trade, owned by exactly one user.
type JournalEntry struct {
	EntryID     string              `json:"entryID"`
	OwnerID     string              `json:"ownerID"` // FK -> users.user_id, never transferred
	TradeDate   time.Time           `json:"tradeDate"`
	JournalText string              `json:"journalText"`
	Profit      decimal.NullDecimal `json:"profit"` // NUMERIC(10,2), nullable
	Symbol      string              `json:"symbol"`
	Size        decimal.NullDecimal `json:"size"` // NUMERIC(5,2), nullable
	Timestamps
}

// EntryWithImages is an entry together with its attached images.
// FailedUploads lists the file names of uploads that could not be attached
// during the mutation that produced it.
type EntryWithImages struct {
	Entry         JournalEntry        `json:"entry"`
	Images        []JournalEntryImage `json:"images"`
	FailedUploads []string            `json:"failedUploads,omitempty"`
}
