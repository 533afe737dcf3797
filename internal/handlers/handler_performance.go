package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/trade_journal_app/internal/core/ports/services"
	"github.com/SscSPs/trade_journal_app/internal/dto"
	"github.com/SscSPs/trade_journal_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type performanceHandler struct {
	performanceService portssvc.PerformanceSvc
}

func registerPerformanceRoutes(rg *gin.RouterGroup, performanceService portssvc.PerformanceSvc) {
	h := &performanceHandler{performanceService: performanceService}
	rg.GET("/performance", h.getPerformance)
}

// getPerformance godoc
// @Summary Performance series
// @Description Sum of profit and average size bucketed by hour, day and month in the reporting timezone
// @Tags performance
// @Produce json
// @Success 200 {object} dto.PerformanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /performance [get]
func (h *performanceHandler) getPerformance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := ownerFromContext(c, logger)
	if !ok {
		return
	}

	report, err := h.performanceService.ComputePerformance(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute performance")
		return
	}
	c.JSON(http.StatusOK, dto.ToPerformanceResponse(report, h.performanceService.Location().String()))
}
