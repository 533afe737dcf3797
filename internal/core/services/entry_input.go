package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// tradeDateLayouts are tried in order. Layouts without a zone are read in UTC.
var tradeDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseTradeDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError("trade_date", "is required")
	}
	for _, layout := range tradeDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("trade_date", "is not a valid date or date-time")
}

// parseDecimal parses raw into a value that fits NUMERIC(maxDigits, places).
// An empty input yields an invalid (null) NullDecimal.
func parseDecimal(field, raw string, maxDigits, places int32) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, apperrors.NewValidationError(field, "is not a valid decimal number")
	}
	if !d.Equal(d.Truncate(places)) {
		return decimal.NullDecimal{}, apperrors.NewValidationError(field, fmt.Sprintf("has more than %d decimal places", places))
	}
	limit := decimal.New(1, maxDigits-places)
	if d.Abs().GreaterThanOrEqual(limit) {
		return decimal.NullDecimal{}, apperrors.NewValidationError(field, fmt.Sprintf("exceeds %d integer digits", maxDigits-places))
	}
	return decimal.NewNullDecimal(d.Truncate(places)), nil
}

// validateText rejects values the record store cannot hold as text.
func validateText(field, raw string) error {
	if !utf8.ValidString(raw) {
		return apperrors.NewValidationError(field, "is not valid UTF-8")
	}
	if strings.ContainsRune(raw, 0) {
		return apperrors.NewValidationError(field, "must not contain NUL characters")
	}
	return nil
}

func validateSymbol(raw string) (string, error) {
	if err := validateText("symbol", raw); err != nil {
		return "", err
	}
	symbol := strings.TrimSpace(raw)
	if utf8.RuneCountInString(symbol) > domain.SymbolMaxLength {
		return "", apperrors.NewValidationError("symbol", fmt.Sprintf("must be at most %d characters", domain.SymbolMaxLength))
	}
	return symbol, nil
}

// entryFields is the validated form of the user-editable entry fields.
type entryFields struct {
	tradeDate    time.Time
	hasTradeDate bool
	journalText  string
	profit       decimal.NullDecimal
	symbol       string
	size         decimal.NullDecimal
}

// parseEntryFields validates every field before anything is written.
// requireDate distinguishes create (date mandatory) from update (empty keeps the stored date).
func parseEntryFields(tradeDate, text, profit, symbol, size string, requireDate bool) (entryFields, error) {
	var f entryFields
	var err error

	if requireDate || strings.TrimSpace(tradeDate) != "" {
		if f.tradeDate, err = parseTradeDate(tradeDate); err != nil {
			return f, err
		}
		f.hasTradeDate = true
	}
	if f.profit, err = parseDecimal("profit", profit, domain.ProfitMaxDigits, domain.ProfitPlaces); err != nil {
		return f, err
	}
	if f.size, err = parseDecimal("size", size, domain.SizeMaxDigits, domain.SizePlaces); err != nil {
		return f, err
	}
	if f.symbol, err = validateSymbol(symbol); err != nil {
		return f, err
	}
	if err = validateText("journal_text", text); err != nil {
		return f, err
	}
	f.journalText = text
	return f, nil
}
