// Package analytics groups journal entries into time buckets and reduces
// their profit and size columns.
package analytics

import (
	"sort"
	"time"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// averagePlaces is the number of fractional digits kept on averaged values.
const averagePlaces = 4

// Truncate zeroes out every component of t below the given granularity,
// evaluated in loc.
func Truncate(t time.Time, g domain.Granularity, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	switch g {
	case domain.Hour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	case domain.Day:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case domain.Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return t
	}
}

type accumulator struct {
	bucket time.Time
	total  decimal.Decimal
	count  int
}

// Column picks the value of an entry that a series reduces over.
type Column func(e domain.JournalEntry) decimal.NullDecimal

// ProfitColumn selects the profit of an entry.
func ProfitColumn(e domain.JournalEntry) decimal.NullDecimal { return e.Profit }

// SizeColumn selects the size of an entry.
func SizeColumn(e domain.JournalEntry) decimal.NullDecimal { return e.Size }

// group collects the non-null values of col per bucket. Buckets that receive
// no value are never created.
func group(entries []domain.JournalEntry, g domain.Granularity, loc *time.Location, col Column) []accumulator {
	byBucket := make(map[int64]*accumulator)
	for _, e := range entries {
		v := col(e)
		if !v.Valid {
			continue
		}
		b := Truncate(e.TradeDate, g, loc)
		key := b.UnixNano()
		acc, ok := byBucket[key]
		if !ok {
			acc = &accumulator{bucket: b, total: decimal.Zero}
			byBucket[key] = acc
		}
		acc.total = acc.total.Add(v.Decimal)
		acc.count++
	}

	out := make([]accumulator, 0, len(byBucket))
	for _, acc := range byBucket {
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].bucket.Before(out[j].bucket) })
	return out
}

// Sum returns one point per bucket holding the sum of the non-null values of col,
// ordered by bucket ascending.
func Sum(entries []domain.JournalEntry, g domain.Granularity, loc *time.Location, col Column) []domain.SeriesPoint {
	groups := group(entries, g, loc, col)
	points := make([]domain.SeriesPoint, len(groups))
	for i, acc := range groups {
		points[i] = domain.SeriesPoint{Bucket: acc.bucket, Value: acc.total, Count: acc.count}
	}
	return points
}

// Average returns one point per bucket holding the mean of the non-null values
// of col. Null values do not count towards the denominator.
func Average(entries []domain.JournalEntry, g domain.Granularity, loc *time.Location, col Column) []domain.SeriesPoint {
	groups := group(entries, g, loc, col)
	points := make([]domain.SeriesPoint, len(groups))
	for i, acc := range groups {
		avg := acc.total.DivRound(decimal.NewFromInt(int64(acc.count)), averagePlaces)
		points[i] = domain.SeriesPoint{Bucket: acc.bucket, Value: avg, Count: acc.count}
	}
	return points
}

// BuildReport computes the six profit and size series over entries.
func BuildReport(entries []domain.JournalEntry, loc *time.Location) *domain.PerformanceReport {
	return &domain.PerformanceReport{
		ProfitByHour:  Sum(entries, domain.Hour, loc, ProfitColumn),
		ProfitByDay:   Sum(entries, domain.Day, loc, ProfitColumn),
		ProfitByMonth: Sum(entries, domain.Month, loc, ProfitColumn),
		SizeByHour:    Average(entries, domain.Hour, loc, SizeColumn),
		SizeByDay:     Average(entries, domain.Day, loc, SizeColumn),
		SizeByMonth:   Average(entries, domain.Month, loc, SizeColumn),
	}
}
