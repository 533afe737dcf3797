package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/SscSPs/trade_journal_app/internal/middleware"
	"github.com/SscSPs/trade_journal_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests related to journal entries.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
	posthog      *utils.PosthogClientWrapper
}

func newJournalEntryHandler(es portssvc.JournalEntrySvcFacade, ph *utils.PosthogClientWrapper) *journalEntryHandler {
	return &journalEntryHandler{entryService: es, posthog: ph}
}

// registerJournalEntryRoutes registers the /entries routes.
func registerJournalEntryRoutes(rg *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade, maxUploadBytes int64, ph *utils.PosthogClientWrapper) {
	h := newJournalEntryHandler(entryService, ph)
	upload := limitBody(maxUploadBytes)

	entries := rg.Group("/entries")
	{
		entries.GET("", h.listEntries)
		entries.POST("", upload, h.createEntry)
		entries.POST("/actions", upload, h.entryAction)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID", upload, h.updateEntry)
		entries.PUT("/:entryID", upload, h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// ownerFromContext returns the authenticated owner id or writes a 401.
func ownerFromContext(c *gin.Context, logger *slog.Logger) (string, bool) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return ownerID, true
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists the caller's journal entries, newest trade first
// @Tags entries
// @Produce json
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries [get]
func (h *journalEntryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries))
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates an entry and attaches the uploaded images. Uploads that could not be stored are listed in failedUploads.
// @Tags entries
// @Accept multipart/form-data
// @Produce json
// @Param trade_date formData string true "Trade date (RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD)"
// @Param journal_text formData string false "Notes"
// @Param profit formData string false "Profit, NUMERIC(10,2)"
// @Param symbol formData string false "Symbol, at most 10 characters"
// @Param size formData string false "Size, NUMERIC(5,2)"
// @Param imageUpload formData file false "Image"
// @Param additionalImages formData file false "Additional images"
// @Success 201 {object} dto.EntryWithImagesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries [post]
func (h *journalEntryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, logger, bindError(err), "Invalid journal entry")
		return
	}
	uploads, err := readUploads(c, fieldImageUpload, fieldAdditionalImages)
	if err != nil {
		respondError(c, logger, err, "Failed to read uploaded images")
		return
	}

	created, err := h.entryService.CreateEntry(c.Request.Context(), ownerID, req, uploads)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", created.Entry.EntryID), slog.Int("images", len(created.Images)))
	c.JSON(http.StatusCreated, dto.ToEntryWithImagesResponse(created))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Returns the entry with its images. Entries of other users are reported as not found.
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryWithImagesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntry(c.Request.Context(), ownerID, entryID)
	if err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryWithImagesResponse(entry))
}

// updateEntry godoc
// @Summary Update a journal entry
// @Description Overwrites the entry fields (an empty trade_date keeps the stored one), deletes the listed images and appends new uploads.
// @Tags entries
// @Accept multipart/form-data
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param trade_date formData string false "Trade date"
// @Param journal_text formData string false "Notes"
// @Param profit formData string false "Profit"
// @Param symbol formData string false "Symbol"
// @Param size formData string false "Size"
// @Param delete_images formData []string false "Image IDs to delete" collectionFormat(multi)
// @Param additionalImages formData file false "Images to append"
// @Success 200 {object} dto.UpdateStatusResponse
// @Failure 400 {object} dto.UpdateStatusResponse
// @Failure 404 {object} dto.UpdateStatusResponse
// @Failure 500 {object} dto.UpdateStatusResponse
// @Security BearerAuth
// @Router /entries/{entryID} [post]
// @Router /entries/{entryID} [put]
func (h *journalEntryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("entryID")
	logger = logger.With(slog.String("entry_id", entryID))

	fail := func(err error) {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to update journal entry", slog.String("error", err.Error()))
		} else {
			logger.Warn("Rejected journal entry update", slog.Int("status", status), slog.String("error", err.Error()))
		}
		c.JSON(status, dto.UpdateStatusResponse{Status: "error", Error: publicMessage(status, err, "Failed to update journal entry")})
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(bindError(err))
		return
	}
	uploads, err := readUploads(c, fieldAdditionalImages)
	if err != nil {
		fail(err)
		return
	}

	updated, err := h.entryService.UpdateEntry(c.Request.Context(), ownerID, entryID, req, req.DeleteImages, uploads)
	if err != nil {
		fail(err)
		return
	}

	logger.Info("Journal entry updated")
	c.JSON(http.StatusOK, dto.UpdateStatusResponse{Status: "success", FailedUploads: updated.FailedUploads})
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Deletes the entry, its images and their files
// @Tags entries
// @Param entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries/{entryID} [delete]
func (h *journalEntryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	if err := h.entryService.DeleteEntry(c.Request.Context(), ownerID, entryID); err != nil {
		respondError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}
