package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{apperrors.NewValidationError("profit", "is not a number"), http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{&http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{apperrors.NewAppError(http.StatusInternalServerError, "query failed", errors.New("eof")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusForError(tt.err), tt.err.Error())
	}
}

func TestActionIntent(t *testing.T) {
	intent, err := actionIntent(dto.EntryActionRequest{Create: "1"})
	require.NoError(t, err)
	assert.Equal(t, intentCreate, intent)

	intent, err = actionIntent(dto.EntryActionRequest{Delete: "on", EntryID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, intentDelete, intent)

	_, err = actionIntent(dto.EntryActionRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = actionIntent(dto.EntryActionRequest{Create: "1", Edit: "1", EntryID: "abc"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = actionIntent(dto.EntryActionRequest{Edit: "1", EntryID: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
