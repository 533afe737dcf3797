package pgsql

import (
	"errors"
	"net/http"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation          = "23505"
	pgForeignKeyViolation      = "23503"
	pgInvalidTextRep           = "22P02"
	pgNumericOutOfRange        = "22003"
	pgStringTooLong            = "22001"
	pgCharacterNotInRepertoire = "22021"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// mapError translates driver errors into application errors.
// Missing rows become apperrors.ErrNotFound; everything unexpected becomes a 5xx AppError.
func (r *BaseRepository) mapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewAppError(http.StatusConflict, message, errors.Join(apperrors.ErrDuplicate, err))
		case pgInvalidTextRep, pgNumericOutOfRange, pgStringTooLong, pgCharacterNotInRepertoire:
			return apperrors.NewAppError(http.StatusBadRequest, message, errors.Join(apperrors.ErrValidation, err))
		case pgForeignKeyViolation:
			return apperrors.NewAppError(http.StatusNotFound, message, errors.Join(apperrors.ErrNotFound, err))
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, message, err)
}
