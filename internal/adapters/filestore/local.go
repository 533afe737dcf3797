package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
)

// LocalStore keeps images on the local filesystem below root.
type LocalStore struct {
	root string
}

var _ storage.ImageStore = (*LocalStore)(nil)

// NewLocalStore creates the journal images folder below root if needed.
func NewLocalStore(root string) (*LocalStore, error) {
	if root == "" {
		return nil, errors.New("local image store root cannot be empty")
	}
	if err := os.MkdirAll(filepath.Join(root, domain.ImageFolder), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image folder: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Store(ctx context.Context, fileName, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := objectName(fileName)
	target := filepath.Join(s.root, filepath.FromSlash(ref))

	// Write to a temp file first so a partial write never becomes visible under ref.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to move image into place: %w", err)
	}
	return ref, nil
}

// Delete removes the file behind ref. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validRef(ref) {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Path returns the filesystem path of ref.
func (s *LocalStore) Path(ref string) string {
	return filepath.Join(s.root, filepath.FromSlash(ref))
}
