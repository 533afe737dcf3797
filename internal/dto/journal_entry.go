package dto

import (
	"time"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest carries the raw form fields of a new journal entry.
// Numeric and date fields stay strings so the service can apply its own
// precision and format rules.
type CreateEntryRequest struct {
	TradeDate   string `form:"trade_date" json:"trade_date" binding:"required"`
	JournalText string `form:"journal_text" json:"journal_text"`
	Profit      string `form:"profit" json:"profit"`
	Symbol      string `form:"symbol" json:"symbol"`
	Size        string `form:"size" json:"size"`
}

// UpdateEntryRequest carries the raw form fields of a full entry update.
// An empty TradeDate keeps the stored date; every other field is overwritten.
type UpdateEntryRequest struct {
	TradeDate    string   `form:"trade_date" json:"trade_date"`
	JournalText  string   `form:"journal_text" json:"journal_text"`
	Profit       string   `form:"profit" json:"profit"`
	Symbol       string   `form:"symbol" json:"symbol"`
	Size         string   `form:"size" json:"size"`
	DeleteImages []string `form:"delete_images" json:"delete_images"`
}

// EntryActionRequest is the multiplexed list form. Exactly one intent flag is expected.
type EntryActionRequest struct {
	Create  string `form:"create"`
	Edit    string `form:"edit"`
	Delete  string `form:"delete"`
	EntryID string `form:"entry_id"`
	UpdateEntryRequest
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID       string              `json:"entryID"`
	TradeDate     time.Time           `json:"tradeDate"`
	JournalText   string              `json:"journalText"`
	Profit        decimal.NullDecimal `json:"profit" swaggertype:"string"`
	Symbol        string              `json:"symbol"`
	Size          decimal.NullDecimal `json:"size" swaggertype:"string"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ImageResponse defines the data returned for an attached image.
type ImageResponse struct {
	ImageID     string    `json:"imageID"`
	ImageRef    string    `json:"imageRef"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EntryWithImagesResponse is an entry together with its images.
type EntryWithImagesResponse struct {
	Entry         EntryResponse   `json:"entry"`
	Images        []ImageResponse `json:"images"`
	FailedUploads []string        `json:"failedUploads,omitempty"`
}

// ListEntriesResponse wraps the list of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// EntryListFragmentResponse is returned to XMLHttpRequest callers of the list action endpoint.
type EntryListFragmentResponse struct {
	Fragment ListEntriesResponse `json:"fragment"`
}

// UpdateStatusResponse is the body of the update endpoint.
type UpdateStatusResponse struct {
	Status        string   `json:"status"`
	Error         string   `json:"error,omitempty"`
	FailedUploads []string `json:"failedUploads,omitempty"`
}

func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		EntryID:       e.EntryID,
		TradeDate:     e.TradeDate,
		JournalText:   e.JournalText,
		Profit:        e.Profit,
		Symbol:        e.Symbol,
		Size:          e.Size,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

func ToImageResponse(img *domain.JournalEntryImage) ImageResponse {
	return ImageResponse{
		ImageID:     img.ImageID,
		ImageRef:    img.ImageRef,
		FileName:    img.FileName,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		CreatedAt:   img.CreatedAt,
	}
}

func ToEntryWithImagesResponse(e *domain.EntryWithImages) EntryWithImagesResponse {
	images := make([]ImageResponse, len(e.Images))
	for i := range e.Images {
		images[i] = ToImageResponse(&e.Images[i])
	}
	return EntryWithImagesResponse{
		Entry:         ToEntryResponse(&e.Entry),
		Images:        images,
		FailedUploads: e.FailedUploads,
	}
}

// ToListEntriesResponse converts a slice of domain.JournalEntry to ListEntriesResponse DTO
func ToListEntriesResponse(entries []domain.JournalEntry) ListEntriesResponse {
	resp := ListEntriesResponse{Entries: make([]EntryResponse, len(entries))}
	for i := range entries {
		resp.Entries[i] = ToEntryResponse(&entries[i])
	}
	return resp
}
