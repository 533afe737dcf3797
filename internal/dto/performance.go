package dto

import (
	"time"

	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SeriesPointResponse is one bucket of an aggregate series.
type SeriesPointResponse struct {
	Bucket time.Time       `json:"bucket"`
	Value  decimal.Decimal `json:"value" swaggertype:"string"`
	Count  int             `json:"count"`
}

// PerformanceResponse holds the six aggregate series of an owner.
type PerformanceResponse struct {
	Timezone      string                `json:"timezone"`
	ProfitByHour  []SeriesPointResponse `json:"profitByHour"`
	ProfitByDay   []SeriesPointResponse `json:"profitByDay"`
	ProfitByMonth []SeriesPointResponse `json:"profitByMonth"`
	SizeByHour    []SeriesPointResponse `json:"sizeByHour"`
	SizeByDay     []SeriesPointResponse `json:"sizeByDay"`
	SizeByMonth   []SeriesPointResponse `json:"sizeByMonth"`
}

func toSeriesResponse(points []domain.SeriesPoint) []SeriesPointResponse {
	out := make([]SeriesPointResponse, len(points))
	for i, p := range points {
		out[i] = SeriesPointResponse{Bucket: p.Bucket, Value: p.Value, Count: p.Count}
	}
	return out
}

func ToPerformanceResponse(r *domain.PerformanceReport, timezone string) PerformanceResponse {
	return PerformanceResponse{
		Timezone:      timezone,
		ProfitByHour:  toSeriesResponse(r.ProfitByHour),
		ProfitByDay:   toSeriesResponse(r.ProfitByDay),
		ProfitByMonth: toSeriesResponse(r.ProfitByMonth),
		SizeByHour:    toSeriesResponse(r.SizeByHour),
		SizeByDay:     toSeriesResponse(r.SizeByDay),
		SizeByMonth:   toSeriesResponse(r.SizeByMonth),
	}
}
