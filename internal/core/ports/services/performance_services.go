package services

import (
	"context"
	"time"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
)

// PerformanceSvc computes aggregate series over an owner's entries.
type PerformanceSvc interface {
	ComputePerformance(ctx context.Context, ownerID string) (*domain.PerformanceReport, error)

	// Location returns the timezone buckets are truncated in.
	Location() *time.Location
}
