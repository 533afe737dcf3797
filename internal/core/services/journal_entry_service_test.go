package services_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/SscSPs/trade_journal_app/internal/core/ports/events"
	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
	"github.com/SscSPs/trade_journal_app/internal/core/services"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const (
	ownerA = "11111111-1111-1111-1111-111111111111"
	ownerB = "22222222-2222-2222-2222-222222222222"
)

// stepClock returns a strictly increasing time on every call.
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

type JournalEntryServiceTestSuite struct {
	suite.Suite
	repo      *fakeEntryRepo
	store     *flakyStore
	publisher *recordingPublisher
	service   portssvc.JournalEntrySvcFacade
	ctx       context.Context
}

func (suite *JournalEntryServiceTestSuite) SetupTest() {
	suite.repo = newFakeEntryRepo()
	suite.store = newFlakyStore()
	suite.publisher = &recordingPublisher{}
	clock := &stepClock{cur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	suite.service = services.NewJournalEntryService(suite.repo, suite.store,
		services.WithEntryEventPublisher(suite.publisher),
		services.WithClock(clock.Now),
	)
	suite.ctx = context.Background()
}

func TestJournalEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalEntryServiceTestSuite))
}

func png(name string) domain.ImageUpload {
	return domain.ImageUpload{FileName: name, ContentType: "image/png", Data: []byte("\x89PNG" + name)}
}

func (suite *JournalEntryServiceTestSuite) create(owner string, req dto.CreateEntryRequest, uploads ...domain.ImageUpload) *domain.EntryWithImages {
	created, err := suite.service.CreateEntry(suite.ctx, owner, req, uploads)
	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	return created
}

func (suite *JournalEntryServiceTestSuite) TestCreateThenGet_RoundTrip() {
	created := suite.create(ownerA, dto.CreateEntryRequest{
		TradeDate:   "2024-01-01T10:15",
		JournalText: "breakout long",
		Profit:      "12.34",
		Symbol:      "AAPL",
		Size:        "1.50",
	}, png("chart.png"))

	suite.NotEmpty(created.Entry.EntryID)
	suite.Empty(created.FailedUploads)
	suite.Len(created.Images, 1)

	got, err := suite.service.GetEntry(suite.ctx, ownerA, created.Entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(created.Entry, got.Entry)
	suite.Equal(time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC), got.Entry.TradeDate)
	suite.Equal("12.34", got.Entry.Profit.Decimal.StringFixed(2))
	suite.Equal("1.50", got.Entry.Size.Decimal.StringFixed(2))
	suite.Equal("AAPL", got.Entry.Symbol)
	suite.Equal("breakout long", got.Entry.JournalText)
	suite.Require().Len(got.Images, 1)
	suite.Equal("chart.png", got.Images[0].FileName)
	suite.True(strings.HasPrefix(got.Images[0].ImageRef, domain.ImageFolder+"/"))

	data, ok := suite.store.Get(got.Images[0].ImageRef)
	suite.True(ok)
	suite.Equal([]byte("\x89PNGchart.png"), data)
	suite.Equal([]string{events.EntryCreated}, suite.publisher.types())
}

func (suite *JournalEntryServiceTestSuite) TestCreate_DefaultsEmptyNumbersToZero() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"})

	suite.True(created.Entry.Profit.Valid)
	suite.True(created.Entry.Size.Valid)
	suite.Equal("0.00", created.Entry.Profit.Decimal.StringFixed(2))
	suite.Equal("0.00", created.Entry.Size.Decimal.StringFixed(2))
	suite.Equal("", created.Entry.Symbol)
	suite.Empty(created.Images)
}

func (suite *JournalEntryServiceTestSuite) TestCreate_ValidationRejectsAndPersistsNothing() {
	tests := []struct {
		name string
		req  dto.CreateEntryRequest
	}{
		{"missing trade date", dto.CreateEntryRequest{Profit: "1.00"}},
		{"unparseable trade date", dto.CreateEntryRequest{TradeDate: "yesterday"}},
		{"unparseable profit", dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: "abc"}},
		{"profit with three places", dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: "1.234"}},
		{"profit over eight integer digits", dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: "123456789.00"}},
		{"size over three integer digits", dto.CreateEntryRequest{TradeDate: "2024-01-01", Size: "1000"}},
		{"symbol too long", dto.CreateEntryRequest{TradeDate: "2024-01-01", Symbol: "ABCDEFGHIJK"}},
		{"text with NUL byte", dto.CreateEntryRequest{TradeDate: "2024-01-01", JournalText: "nul\x00byte"}},
		{"text with invalid UTF-8", dto.CreateEntryRequest{TradeDate: "2024-01-01", JournalText: "bad\xffutf8"}},
		{"symbol with NUL byte", dto.CreateEntryRequest{TradeDate: "2024-01-01", Symbol: "AA\x00PL"}},
		{"symbol with invalid UTF-8", dto.CreateEntryRequest{TradeDate: "2024-01-01", Symbol: "\xfe\xff"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			created, err := suite.service.CreateEntry(suite.ctx, ownerA, tt.req, []domain.ImageUpload{png("a.png")})
			suite.Nil(created)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}

	entries, err := suite.service.ListEntries(suite.ctx, ownerA)
	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.Equal(0, suite.store.Len())
	suite.Empty(suite.publisher.types())
}

func (suite *JournalEntryServiceTestSuite) TestCreate_PrecisionBoundariesAccepted() {
	created := suite.create(ownerA, dto.CreateEntryRequest{
		TradeDate: "2024-01-01",
		Profit:    "-99999999.99",
		Size:      "999.99",
		Symbol:    "ABCDEFGHIJ",
	})
	suite.Equal("-99999999.99", created.Entry.Profit.Decimal.StringFixed(2))
	suite.Equal("999.99", created.Entry.Size.Decimal.StringFixed(2))
	suite.Equal("ABCDEFGHIJ", created.Entry.Symbol)
}

func (suite *JournalEntryServiceTestSuite) TestCreate_SymbolTrimmedBeforeLengthCheck() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01", Symbol: " ABCDEFGHIJ "})
	suite.Equal("ABCDEFGHIJ", created.Entry.Symbol)
}

func (suite *JournalEntryServiceTestSuite) TestCreate_PartialImageFailureKeepsEntry() {
	suite.store.failNames["broken-store.png"] = true
	suite.repo.SaveImageFn = func(_ context.Context, image domain.JournalEntryImage) error {
		if image.FileName == "broken-record.png" {
			return errors.New("insert failed")
		}
		return nil
	}

	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"},
		png("ok-1.png"), png("broken-store.png"), png("broken-record.png"), png("ok-2.png"))

	suite.ElementsMatch([]string{"broken-store.png", "broken-record.png"}, created.FailedUploads)
	suite.Require().Len(created.Images, 2)
	suite.Equal("ok-1.png", created.Images[0].FileName)
	suite.Equal("ok-2.png", created.Images[1].FileName)

	// The file stored for the failed record is cleaned up.
	suite.Equal(2, suite.store.Len())
	suite.Len(suite.store.deleted, 1)

	got, err := suite.service.GetEntry(suite.ctx, ownerA, created.Entry.EntryID)
	suite.Require().NoError(err)
	suite.Len(got.Images, 2)
}

func (suite *JournalEntryServiceTestSuite) TestOwnershipIsolation() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: "5.00", Symbol: "MSFT"}, png("a.png"))
	id := created.Entry.EntryID

	_, err := suite.service.GetEntry(suite.ctx, ownerB, id)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.UpdateEntry(suite.ctx, ownerB, id, dto.UpdateEntryRequest{Symbol: "HACK"}, nil, nil)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	err = suite.service.DeleteEntry(suite.ctx, ownerB, id)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	got, err := suite.service.GetEntry(suite.ctx, ownerA, id)
	suite.Require().NoError(err)
	suite.Equal(created.Entry, got.Entry)
	suite.Len(got.Images, 1)
	suite.Equal(1, suite.store.Len())

	entriesB, err := suite.service.ListEntries(suite.ctx, ownerB)
	suite.Require().NoError(err)
	suite.Empty(entriesB)
}

func (suite *JournalEntryServiceTestSuite) TestNotFound_UnknownAndMalformedIDs() {
	_, err := suite.service.GetEntry(suite.ctx, ownerA, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.GetEntry(suite.ctx, ownerA, "not-a-uuid")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	suite.ErrorIs(suite.service.DeleteEntry(suite.ctx, ownerA, "42"), apperrors.ErrNotFound)
}

func (suite *JournalEntryServiceTestSuite) TestUpdate_EmptyTradeDateKeepsStoredDate() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-03-05T09:30:00Z", Profit: "1.00"})

	updated, err := suite.service.UpdateEntry(suite.ctx, ownerA, created.Entry.EntryID, dto.UpdateEntryRequest{
		TradeDate: "",
		Profit:    "2.00",
	}, nil, nil)
	suite.Require().NoError(err)
	suite.Equal(created.Entry.TradeDate, updated.Entry.TradeDate)
	suite.Equal("2.00", updated.Entry.Profit.Decimal.StringFixed(2))

	updated, err = suite.service.UpdateEntry(suite.ctx, ownerA, created.Entry.EntryID, dto.UpdateEntryRequest{
		TradeDate: "2024-03-06 10:00",
		Profit:    "2.00",
	}, nil, nil)
	suite.Require().NoError(err)
	suite.Equal(time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC), updated.Entry.TradeDate)
}

// Empty text, symbol, profit and size overwrite the stored values, unlike trade_date.
func (suite *JournalEntryServiceTestSuite) TestUpdate_EmptyFieldsOverwrite() {
	created := suite.create(ownerA, dto.CreateEntryRequest{
		TradeDate:   "2024-01-01",
		JournalText: "notes",
		Profit:      "10.00",
		Symbol:      "TSLA",
		Size:        "2.00",
	})

	updated, err := suite.service.UpdateEntry(suite.ctx, ownerA, created.Entry.EntryID, dto.UpdateEntryRequest{}, nil, nil)
	suite.Require().NoError(err)

	suite.Equal(created.Entry.TradeDate, updated.Entry.TradeDate)
	suite.Equal("", updated.Entry.JournalText)
	suite.Equal("", updated.Entry.Symbol)
	suite.False(updated.Entry.Profit.Valid)
	suite.False(updated.Entry.Size.Valid)
	suite.Equal(created.Entry.CreatedAt, updated.Entry.CreatedAt)
	suite.True(updated.Entry.LastUpdatedAt.After(created.Entry.LastUpdatedAt))

	got, err := suite.service.GetEntry(suite.ctx, ownerA, created.Entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(updated.Entry, got.Entry)
}

func (suite *JournalEntryServiceTestSuite) TestUpdate_ValidationFailureAppliesNothing() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: "3.00", Symbol: "AMD"}, png("keep.png"))
	imageID := created.Images[0].ImageID

	for _, req := range []dto.UpdateEntryRequest{
		{Profit: "1.999", Symbol: "NEW"},
		{JournalText: "nul\x00byte", Symbol: "NEW"},
		{JournalText: "bad\xffutf8", Symbol: "NEW"},
		{Symbol: "NE\x00W"},
	} {
		_, err := suite.service.UpdateEntry(suite.ctx, ownerA, created.Entry.EntryID, req,
			[]string{imageID}, []domain.ImageUpload{png("new.png")})
		suite.ErrorIs(err, apperrors.ErrValidation)
	}

	got, err := suite.service.GetEntry(suite.ctx, ownerA, created.Entry.EntryID)
	suite.Require().NoError(err)
	suite.Equal(created.Entry, got.Entry)
	suite.Require().Len(got.Images, 1)
	suite.Equal(imageID, got.Images[0].ImageID)
	suite.Equal(1, suite.store.Len())
}

func (suite *JournalEntryServiceTestSuite) TestUpdate_DeletesOnlyOwnImagesThenAppends() {
	first := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"}, png("a.png"), png("b.png"))
	other := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-02"}, png("other.png"))

	deleteIDs := []string{
		first.Images[0].ImageID,
		other.Images[0].ImageID, // attached to another entry
		uuid.NewString(),        // unknown
		"garbage",
	}
	updated, err := suite.service.UpdateEntry(suite.ctx, ownerA, first.Entry.EntryID, dto.UpdateEntryRequest{},
		deleteIDs, []domain.ImageUpload{png("c.png")})
	suite.Require().NoError(err)

	suite.Require().Len(updated.Images, 2)
	suite.Equal("b.png", updated.Images[0].FileName)
	suite.Equal("c.png", updated.Images[1].FileName)

	_, ok := suite.store.Get(first.Images[0].ImageRef)
	suite.False(ok, "deleted image file must be removed")

	otherGot, err := suite.service.GetEntry(suite.ctx, ownerA, other.Entry.EntryID)
	suite.Require().NoError(err)
	suite.Len(otherGot.Images, 1)
	_, ok = suite.store.Get(other.Images[0].ImageRef)
	suite.True(ok)
}

func (suite *JournalEntryServiceTestSuite) TestUpdate_SingleImageDeletionLeavesSiblings() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"}, png("a.png"), png("b.png"), png("c.png"))

	updated, err := suite.service.UpdateEntry(suite.ctx, ownerA, created.Entry.EntryID, dto.UpdateEntryRequest{},
		[]string{created.Images[1].ImageID}, nil)
	suite.Require().NoError(err)

	suite.Require().Len(updated.Images, 2)
	suite.Equal(created.Images[0].ImageID, updated.Images[0].ImageID)
	suite.Equal(created.Images[2].ImageID, updated.Images[1].ImageID)
	suite.Equal(2, suite.store.Len())
}

// Two editors working from the same snapshot: the later write wins in full.
func (suite *JournalEntryServiceTestSuite) TestUpdate_LastWriterWins() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: "1.00", Symbol: "ES"})
	id := created.Entry.EntryID

	_, err := suite.service.UpdateEntry(suite.ctx, ownerA, id, dto.UpdateEntryRequest{Profit: "5.00", Symbol: "ES", JournalText: "editor one"}, nil, nil)
	suite.Require().NoError(err)
	_, err = suite.service.UpdateEntry(suite.ctx, ownerA, id, dto.UpdateEntryRequest{Profit: "1.00", Symbol: "NQ"}, nil, nil)
	suite.Require().NoError(err)

	got, err := suite.service.GetEntry(suite.ctx, ownerA, id)
	suite.Require().NoError(err)
	suite.Equal("1.00", got.Entry.Profit.Decimal.StringFixed(2))
	suite.Equal("NQ", got.Entry.Symbol)
	suite.Equal("", got.Entry.JournalText)
}

func (suite *JournalEntryServiceTestSuite) TestDelete_RemovesImagesAndFiles() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"}, png("a.png"), png("b.png"))
	keep := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-02"}, png("keep.png"))

	suite.Require().NoError(suite.service.DeleteEntry(suite.ctx, ownerA, created.Entry.EntryID))

	_, err := suite.service.GetEntry(suite.ctx, ownerA, created.Entry.EntryID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(1, suite.repo.imageCount())
	suite.Equal(1, suite.store.Len())
	_, ok := suite.store.Get(keep.Images[0].ImageRef)
	suite.True(ok)

	suite.Equal([]string{events.EntryCreated, events.EntryCreated, events.EntryDeleted}, suite.publisher.types())
}

func (suite *JournalEntryServiceTestSuite) TestDelete_FileRemovalFailureIsNotFatal() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"}, png("a.png"))
	suite.store.failDeletes = true

	suite.Require().NoError(suite.service.DeleteEntry(suite.ctx, ownerA, created.Entry.EntryID))
	suite.Equal(0, suite.repo.imageCount())
	suite.Len(suite.store.deleted, 1)
}

func (suite *JournalEntryServiceTestSuite) TestDelete_MissingFileIsNotFatal() {
	created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"}, png("a.png"))
	suite.Require().NoError(suite.store.MemoryStore.Delete(suite.ctx, created.Images[0].ImageRef))

	suite.Require().NoError(suite.service.DeleteEntry(suite.ctx, ownerA, created.Entry.EntryID))
	suite.Equal(0, suite.repo.imageCount())
}

func (suite *JournalEntryServiceTestSuite) TestList_OrderedByTradeDateDescThenCreation() {
	e1 := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01T10:00"})
	e2 := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-03T10:00"})
	e3 := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01T10:00"})
	suite.create(ownerB, dto.CreateEntryRequest{TradeDate: "2024-01-02T10:00"})

	entries, err := suite.service.ListEntries(suite.ctx, ownerA)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)
	suite.Equal(e2.Entry.EntryID, entries[0].EntryID)
	suite.Equal(e1.Entry.EntryID, entries[1].EntryID)
	suite.Equal(e3.Entry.EntryID, entries[2].EntryID)
}

func (suite *JournalEntryServiceTestSuite) TestPublishFailureDoesNotFailMutation() {
	suite.publisher.err = errors.New("broker down")

	created, err := suite.service.CreateEntry(suite.ctx, ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01"}, nil)
	suite.Require().NoError(err)
	suite.NotNil(created)
	suite.Len(suite.publisher.events, 1)
	suite.Equal(ownerA, suite.publisher.events[0].OwnerID)
}

func (suite *JournalEntryServiceTestSuite) TestRepositoryErrorsPropagate() {
	dbErr := apperrors.NewAppError(500, "db down", errors.New("connection refused"))
	suite.repo.ListEntriesByOwnerFn = func(context.Context, string) ([]domain.JournalEntry, error) {
		return nil, dbErr
	}
	suite.repo.FindEntryByIDFn = func(context.Context, string, string) (*domain.JournalEntry, error) {
		return nil, dbErr
	}

	_, err := suite.service.ListEntries(suite.ctx, ownerA)
	suite.ErrorIs(err, apperrors.ErrStorage)

	_, err = suite.service.GetEntry(suite.ctx, ownerA, uuid.NewString())
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalEntryServiceTestSuite) TestDecimalRoundTripPreservesValue() {
	for _, raw := range []string{"0.01", "-0.01", "12345678.90", "7", "-3.5"} {
		created := suite.create(ownerA, dto.CreateEntryRequest{TradeDate: "2024-01-01", Profit: raw})
		got, err := suite.service.GetEntry(suite.ctx, ownerA, created.Entry.EntryID)
		suite.Require().NoError(err)
		suite.True(decimal.RequireFromString(raw).Equal(got.Entry.Profit.Decimal), raw)
	}
}
