package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/trade_journal_app/internal/core/analytics"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trade_journal_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
)

// performanceService implements PerformanceSvc
type performanceService struct {
	BaseService
	entryReader portsrepo.JournalEntryReader
	location    *time.Location
}

// PerformanceServiceOption is a function that configures a performanceService
type PerformanceServiceOption func(*performanceService)

// WithReportLocation sets the timezone trade dates are bucketed in. Nil means UTC.
func WithReportLocation(loc *time.Location) PerformanceServiceOption {
	return func(s *performanceService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewPerformanceService creates a new performance service
func NewPerformanceService(entryReader portsrepo.JournalEntryReader, opts ...PerformanceServiceOption) portssvc.PerformanceSvc {
	s := &performanceService{
		entryReader: entryReader,
		location:    time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.PerformanceSvc = (*performanceService)(nil)

// ComputePerformance returns the owner's profit sums and size averages by hour, day and month.
func (s *performanceService) ComputePerformance(ctx context.Context, ownerID string) (*domain.PerformanceReport, error) {
	entries, err := s.entryReader.ListEntriesByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for performance report", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to load entries for performance report: %w", err)
	}

	report := analytics.BuildReport(entries, s.location)
	s.LogDebug(ctx, "Performance report computed",
		slog.Int("entries", len(entries)),
		slog.Int("days", len(report.ProfitByDay)),
		slog.String("timezone", s.location.String()))
	return report, nil
}

func (s *performanceService) Location() *time.Location {
	return s.location
}
