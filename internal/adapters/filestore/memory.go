package filestore

import (
	"context"
	"sync"

	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
)

// MemoryStore keeps images in process memory. It is used by tests and
// when IMAGE_STORE=memory.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ storage.ImageStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Store(ctx context.Context, fileName, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := objectName(fileName)
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[ref] = buf
	s.mu.Unlock()
	return ref, nil
}

func (s *MemoryStore) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.objects, ref)
	s.mu.Unlock()
	return nil
}

// Get returns the stored bytes of ref.
func (s *MemoryStore) Get(ref string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[ref]
	return data, ok
}

// Len returns the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
