package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/SscSPs/trade_journal_app/internal/adapters/filestore"
	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/events"
	portsrepo "github.com/SscSPs/trade_journal_app/internal/core/ports/repositories"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/storage"
)

// fakeEntryRepo is an in-memory JournalEntryRepositoryFacade. The Fn hooks
// override a method when set, mirroring the mock repositories.
type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[string]domain.JournalEntry
	images  map[string]domain.JournalEntryImage
	order   []string // image ids in insertion order

	SaveImageFn          func(ctx context.Context, image domain.JournalEntryImage) error
	ListEntriesByOwnerFn func(ctx context.Context, ownerID string) ([]domain.JournalEntry, error)
	FindEntryByIDFn      func(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error)
}

var _ portsrepo.JournalEntryRepositoryFacade = (*fakeEntryRepo)(nil)

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{
		entries: make(map[string]domain.JournalEntry),
		images:  make(map[string]domain.JournalEntryImage),
	}
}

func (r *fakeEntryRepo) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.EntryID] = entry
	return nil
}

func (r *fakeEntryRepo) FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	if r.FindEntryByIDFn != nil {
		return r.FindEntryByIDFn(ctx, ownerID, entryID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[entryID]
	if !ok || entry.OwnerID != ownerID {
		return nil, apperrors.ErrNotFound
	}
	return &entry, nil
}

func (r *fakeEntryRepo) ListEntriesByOwner(ctx context.Context, ownerID string) ([]domain.JournalEntry, error) {
	if r.ListEntriesByOwnerFn != nil {
		return r.ListEntriesByOwnerFn(ctx, ownerID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.JournalEntry{}
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TradeDate.Equal(out[j].TradeDate) {
			return out[i].TradeDate.After(out[j].TradeDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeEntryRepo) UpdateEntry(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[entry.EntryID]
	if !ok || existing.OwnerID != entry.OwnerID {
		return apperrors.ErrNotFound
	}
	r.entries[entry.EntryID] = entry
	return nil
}

func (r *fakeEntryRepo) DeleteEntry(_ context.Context, ownerID, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[entryID]
	if !ok || existing.OwnerID != ownerID {
		return apperrors.ErrNotFound
	}
	delete(r.entries, entryID)
	for id, img := range r.images {
		if img.EntryID == entryID {
			delete(r.images, id)
		}
	}
	return nil
}

func (r *fakeEntryRepo) SaveImage(ctx context.Context, image domain.JournalEntryImage) error {
	if r.SaveImageFn != nil {
		if err := r.SaveImageFn(ctx, image); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[image.EntryID]; !ok {
		return errors.New("foreign key violation")
	}
	r.images[image.ImageID] = image
	r.order = append(r.order, image.ImageID)
	return nil
}

func (r *fakeEntryRepo) FindImagesByEntryID(_ context.Context, entryID string) ([]domain.JournalEntryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.JournalEntryImage{}
	for _, id := range r.order {
		if img, ok := r.images[id]; ok && img.EntryID == entryID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) FindImageByID(_ context.Context, entryID, imageID string) (*domain.JournalEntryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[imageID]
	if !ok || img.EntryID != entryID {
		return nil, apperrors.ErrNotFound
	}
	return &img, nil
}

func (r *fakeEntryRepo) DeleteImage(_ context.Context, entryID, imageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.images[imageID]
	if !ok || img.EntryID != entryID {
		return apperrors.ErrNotFound
	}
	delete(r.images, imageID)
	return nil
}

func (r *fakeEntryRepo) imageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}

// flakyStore wraps a MemoryStore and fails Store for the listed file names
// and Delete for every ref when failDeletes is set.
type flakyStore struct {
	*filestore.MemoryStore
	failNames   map[string]bool
	failDeletes bool
	deleted     []string
}

var _ storage.ImageStore = (*flakyStore)(nil)

func newFlakyStore(failNames ...string) *flakyStore {
	s := &flakyStore{MemoryStore: filestore.NewMemoryStore(), failNames: map[string]bool{}}
	for _, n := range failNames {
		s.failNames[n] = true
	}
	return s
}

func (s *flakyStore) Store(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if s.failNames[fileName] {
		return "", errors.New("disk full")
	}
	return s.MemoryStore.Store(ctx, fileName, contentType, data)
}

func (s *flakyStore) Delete(ctx context.Context, ref string) error {
	s.deleted = append(s.deleted, ref)
	if s.failDeletes {
		return errors.New("permission denied")
	}
	return s.MemoryStore.Delete(ctx, ref)
}

// recordingPublisher collects published entry events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.EntryEvent
	err    error
}

func (p *recordingPublisher) PublishEntryEvent(_ context.Context, e events.EntryEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}
