package handlers

import (
	"net/http"

	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// CategoryLimitHandler manages advisory per-user category quotas.
type CategoryLimitHandler struct {
	categoryLimitService portssvc.CategoryLimitSvcFacade
}

// NewCategoryLimitHandler creates a new CategoryLimitHandler instance.
func NewCategoryLimitHandler(categoryLimitService portssvc.CategoryLimitSvcFacade) *CategoryLimitHandler {
	return &CategoryLimitHandler{categoryLimitService: categoryLimitService}
}

// GetLimits godoc
// @Summary      Get a user's category limits
// @Description  Returns one entry per vehicle category, defaulting unset categories to 0. Advisory only; nothing enforces these.
// @Tags         category-limits
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  dto.CategoryLimitsResponse
// @Failure      404     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /users/{userID}/category-limits [get]
func (h *CategoryLimitHandler) GetLimits(c *gin.Context) {
	userID := c.Param("userID")

	limits, err := h.categoryLimitService.GetLimits(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryLimitsResponse(userID, limits))
}

// SetLimits godoc
// @Summary      Set a user's category limits
// @Description  Upserts the given limits. Managers only. Partial maps leave other categories untouched.
// @Tags         category-limits
// @Accept       json
// @Produce      json
// @Param        userID  path      string                        true  "User ID"
// @Param        limits  body      dto.SetCategoryLimitsRequest  true  "Limits per category"
// @Success      200     {object}  dto.CategoryLimitsResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /users/{userID}/category-limits [put]
func (h *CategoryLimitHandler) SetLimits(c *gin.Context) {
	actorUserID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}
	targetUserID := c.Param("userID")

	var req dto.SetCategoryLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	limits, err := h.categoryLimitService.SetLimits(c.Request.Context(), actorUserID, targetUserID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryLimitsResponse(targetUserID, limits))
}

// ListUsersWithLimits godoc
// @Summary      List active sales and manager users with their category limits
// @Description  Quota overview for managers; every user row carries a default-filled limit set.
// @Tags         category-limits
// @Produce      json
// @Success      200  {array}   dto.UserWithLimitsResponse
// @Failure      403  {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /users/limits [get]
func (h *CategoryLimitHandler) ListUsersWithLimits(c *gin.Context) {
	actorUserID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	rows, err := h.categoryLimitService.ListUsersWithLimits(c.Request.Context(), actorUserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserWithLimitsResponses(rows))
}
