package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity is the truncation unit used to bucket trade dates.
type Granularity string

const (
	Hour  Granularity = "HOUR"
	Day   Granularity = "DAY"
	Month Granularity = "MONTH"
)

// SeriesPoint is one bucket of an aggregated series.
// Count is the number of entries that contributed a non-null value.
type SeriesPoint struct {
	Bucket time.Time       `json:"bucket"`
	Value  decimal.Decimal `json:"value"`
	Count  int             `json:"count"`
}

// PerformanceReport holds the six grouped series for one owner.
type PerformanceReport struct {
	ProfitByHour  []SeriesPoint `json:"profitByHour"`
	ProfitByDay   []SeriesPoint `json:"profitByDay"`
	ProfitByMonth []SeriesPoint `json:"profitByMonth"`
	SizeByHour    []SeriesPoint `json:"sizeByHour"`
	SizeByDay     []SeriesPoint `json:"sizeByDay"`
	SizeByMonth   []SeriesPoint `json:"sizeByMonth"`
}
