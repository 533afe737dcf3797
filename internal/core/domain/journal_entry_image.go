package domain

import "time"

// ImageFolder is the logical folder every journal image is stored under.
const ImageFolder = "journal_images"

// JournalEntryImage is an image file attached to a journal entry.
type JournalEntryImage struct {
	ImageID     string    `json:"imageID"`
	EntryID     string    `json:"entryID"`  // FK -> journal_entries.entry_id (cascade)
	ImageRef    string    `json:"imageRef"` // reference returned by the image store
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ImageUpload is an image received from a caller, not yet stored.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}
