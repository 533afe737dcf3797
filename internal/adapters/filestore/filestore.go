// Package filestore holds the image store backends.
package filestore

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
	"github.com/SscSPs/trade_journal_app/internal/platform/config"
	"github.com/google/uuid"
)

const maxExtLength = 10

// New returns the image store selected by cfg.ImageStore.
func New(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	switch cfg.ImageStore {
	case config.ImageStoreLocal:
		return NewLocalStore(cfg.ImageStoreDir)
	case config.ImageStoreGCS:
		return NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
	case config.ImageStoreMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported image store %q", cfg.ImageStore)
	}
}

// objectName builds a collision free name under the journal images folder,
// keeping the extension of the uploaded file.
func objectName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(fileName)))
	if len(ext) > maxExtLength || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return path.Join(domain.ImageFolder, uuid.NewString()+ext)
}

// validRef reports whether ref names an object inside the journal images folder.
func validRef(ref string) bool {
	if ref == "" || strings.Contains(ref, "..") || strings.Contains(ref, `\`) {
		return false
	}
	return strings.HasPrefix(path.Clean(ref), domain.ImageFolder+"/")
}
