package handlers

import (
	"net/http"

	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// PerformanceHandler exposes the on-demand quota and commission projection.
type PerformanceHandler struct {
	performanceService portssvc.PerformanceSvcFacade
}

// NewPerformanceHandler creates a new PerformanceHandler instance.
func NewPerformanceHandler(performanceService portssvc.PerformanceSvcFacade) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

// GetPerformance godoc
// @Summary      Get a user's performance projection
// @Description  Recomputes quota progress and the tiered commission estimate over every converted lead assigned to the user. Nothing is persisted; the estimate intentionally differs from settled commission amounts.
// @Tags         performance
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  dto.PerformanceResponse
// @Failure      404     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /users/{userID}/performance [get]
func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	report, err := h.performanceService.GetPerformance(c.Request.Context(), c.Param("userID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPerformanceResponse(report))
}
