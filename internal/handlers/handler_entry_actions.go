package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/trade_journal_app/internal/apperrors"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/SscSPs/trade_journal_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Intents accepted by the list action endpoint.
const (
	intentCreate = "create"
	intentEdit   = "edit"
	intentDelete = "delete"
)

// actionIntent returns the single intent flagged in req.
func actionIntent(req dto.EntryActionRequest) (string, error) {
	var intents []string
	if req.Create != "" {
		intents = append(intents, intentCreate)
	}
	if req.Edit != "" {
		intents = append(intents, intentEdit)
	}
	if req.Delete != "" {
		intents = append(intents, intentDelete)
	}
	if len(intents) != 1 {
		return "", fmt.Errorf("%w: exactly one of create, edit or delete is required (got %d)", apperrors.ErrValidation, len(intents))
	}
	if intents[0] != intentCreate && strings.TrimSpace(req.EntryID) == "" {
		return "", fmt.Errorf("%w: entry_id is required to %s an entry", apperrors.ErrValidation, intents[0])
	}
	return intents[0], nil
}

// isXHR reports whether the caller asked for the list fragment.
func isXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// entryAction godoc
// @Summary Create, edit or delete an entry from the list form
// @Description Dispatches exactly one of the create, edit or delete intents and returns the refreshed list. XMLHttpRequest callers receive the list wrapped in a fragment.
// @Tags entries
// @Accept multipart/form-data
// @Produce json
// @Param create formData string false "Create intent flag"
// @Param edit formData string false "Edit intent flag"
// @Param delete formData string false "Delete intent flag"
// @Param entry_id formData string false "Entry ID for edit and delete"
// @Param trade_date formData string false "Trade date"
// @Param journal_text formData string false "Notes"
// @Param profit formData string false "Profit"
// @Param symbol formData string false "Symbol"
// @Param size formData string false "Size"
// @Param delete_images formData []string false "Image IDs to delete on edit" collectionFormat(multi)
// @Param imageUpload formData file false "Image (create)"
// @Param additionalImages formData file false "Additional images"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries/actions [post]
func (h *journalEntryHandler) entryAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.EntryActionRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, logger, bindError(err), "Invalid entry action")
		return
	}
	intent, err := actionIntent(req)
	if err != nil {
		respondError(c, logger, err, "Invalid entry action")
		return
	}
	logger = logger.With(slog.String("intent", intent))

	ctx := c.Request.Context()
	switch intent {
	case intentCreate:
		uploads, uerr := readUploads(c, fieldImageUpload, fieldAdditionalImages)
		if uerr != nil {
			respondError(c, logger, uerr, "Failed to read uploaded images")
			return
		}
		_, err = h.entryService.CreateEntry(ctx, ownerID, dto.CreateEntryRequest{
			TradeDate:   req.TradeDate,
			JournalText: req.JournalText,
			Profit:      req.Profit,
			Symbol:      req.Symbol,
			Size:        req.Size,
		}, uploads)
	case intentEdit:
		uploads, uerr := readUploads(c, fieldAdditionalImages)
		if uerr != nil {
			respondError(c, logger, uerr, "Failed to read uploaded images")
			return
		}
		_, err = h.entryService.UpdateEntry(ctx, ownerID, req.EntryID, req.UpdateEntryRequest, req.DeleteImages, uploads)
	case intentDelete:
		err = h.entryService.DeleteEntry(ctx, ownerID, req.EntryID)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to "+intent+" journal entry")
		return
	}
	middleware.PosthogEvent(c, h.posthog, "entry_action", map[string]any{"intent": intent})

	entries, err := h.entryService.ListEntries(ctx, ownerID)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	list := dto.ToListEntriesResponse(entries)
	if isXHR(c) {
		c.JSON(http.StatusOK, dto.EntryListFragmentResponse{Fragment: list})
		return
	}
	c.JSON(http.StatusOK, list)
}
