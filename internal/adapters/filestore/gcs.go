package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storagev1 "google.golang.org/api/storage/v1"
)

// GCSStore keeps images in a Google Cloud Storage bucket.
type GCSStore struct {
	svc    *storagev1.Service
	bucket string
}

var _ storage.ImageStore = (*GCSStore)(nil)

// NewGCSStore creates a store for bucket. Without a credentials file the
// application default credentials are used.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string, opts ...option.ClientOption) (*GCSStore, error) {
	if bucket == "" {
		return nil, errors.New("gcs bucket cannot be empty")
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := storagev1.NewService(ctx, append(opts, option.WithScopes(storagev1.DevstorageReadWriteScope))...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	return &GCSStore{svc: svc, bucket: bucket}, nil
}

func (s *GCSStore) Store(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	ref := objectName(fileName)
	obj := &storagev1.Object{
		Name:        ref,
		ContentType: contentType,
		Metadata:    map[string]string{"original-name": fileName},
	}
	_, err := s.svc.Objects.Insert(s.bucket, obj).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload image to gcs: %w", err)
	}
	return ref, nil
}

// Delete removes the object behind ref. A missing object is not an error.
func (s *GCSStore) Delete(ctx context.Context, ref string) error {
	if !validRef(ref) {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := s.svc.Objects.Delete(s.bucket, ref).Context(ctx).Do()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete image from gcs: %w", err)
	}
	return nil
}
