package storage

import "context"

// ImageStore persists image bytes outside the record store.
type ImageStore interface {
	// Store writes data under the journal images folder and returns a reference
	// that can later be passed to Delete.
	Store(ctx context.Context, fileName string, contentType string, data []byte) (string, error)

	// Delete removes the object behind ref. Deleting a missing object is not an error.
	Delete(ctx context.Context, ref string) error
}
