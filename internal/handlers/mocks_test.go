package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) GetEntry(ctx context.Context, ownerID, entryID string) (*domain.EntryWithImages, error) {
	args := m.Called(ctx, ownerID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryWithImages), args.Error(1)
}

func (m *MockJournalEntryService) ListEntries(ctx context.Context, ownerID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryService) CreateEntry(ctx context.Context, ownerID string, req dto.CreateEntryRequest, uploads []domain.ImageUpload) (*domain.EntryWithImages, error) {
	args := m.Called(ctx, ownerID, req, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryWithImages), args.Error(1)
}

func (m *MockJournalEntryService) UpdateEntry(ctx context.Context, ownerID, entryID string, req dto.UpdateEntryRequest, deleteImageIDs []string, uploads []domain.ImageUpload) (*domain.EntryWithImages, error) {
	args := m.Called(ctx, ownerID, entryID, req, deleteImageIDs, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryWithImages), args.Error(1)
}

func (m *MockJournalEntryService) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	args := m.Called(ctx, ownerID, entryID)
	return args.Error(0)
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

// --- Mock PerformanceService ---
type MockPerformanceService struct {
	mock.Mock
	loc *time.Location
}

func (m *MockPerformanceService) ComputePerformance(ctx context.Context, ownerID string) (*domain.PerformanceReport, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PerformanceReport), args.Error(1)
}

func (m *MockPerformanceService) Location() *time.Location {
	if m.loc == nil {
		return time.UTC
	}
	return m.loc
}

var _ portssvc.PerformanceSvc = (*MockPerformanceService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)
