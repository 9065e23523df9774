package handlers

import (
	"net/http"

	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// LeadHandler handles lead intake, reads and lifecycle transitions.
type LeadHandler struct {
	leadService portssvc.LeadSvcFacade
}

// NewLeadHandler creates a new LeadHandler instance.
func NewLeadHandler(leadService portssvc.LeadSvcFacade) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLead godoc
// @Summary      Create a lead
// @Description  Registers a new lead in the NEW status.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        lead  body      dto.CreateLeadRequest  true  "Lead details"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLeadResponse(lead))
}

// GetLead godoc
// @Summary      Get a lead by ID
// @Tags         leads
// @Produce      json
// @Param        leadID  path      string  true  "Lead ID"
// @Success      200     {object}  dto.LeadResponse
// @Failure      404     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	lead, err := h.leadService.GetLeadByID(c.Request.Context(), c.Param("leadID"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// ListLeads godoc
// @Summary      List leads
// @Description  Returns active leads newest-first with cursor pagination.
// @Tags         leads
// @Produce      json
// @Param        limit      query     int     false  "Page size (default 20, max 100)"
// @Param        nextToken  query     string  false  "Cursor from the previous page"
// @Success      200        {object}  dto.ListLeadsResponse
// @Security     BearerAuth
// @Router       /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	var params dto.ListLeadsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.leadService.ListLeads(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLead godoc
// @Summary      Update a lead
// @Description  Updates commerce and assignment fields. Status changes go through the transition endpoint.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        leadID  path      string                 true  "Lead ID"
// @Param        lead    body      dto.UpdateLeadRequest  true  "Fields to update"
// @Success      200     {object}  dto.LeadResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID} [put]
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), c.Param("leadID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// TransitionStatus godoc
// @Summary      Transition a lead's lifecycle status
// @Description  Moves the lead along NEW → CONTACTED → CONVERTED / NOT_CONVERTED. NOT_CONVERTED requires a reason; converted and not-converted are terminal.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        leadID      path      string                     true  "Lead ID"
// @Param        transition  body      dto.TransitionLeadRequest  true  "Target status"
// @Success      200         {object}  dto.LeadResponse
// @Failure      400         {object}  ErrorResponse
// @Failure      404         {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID}/status [patch]
func (h *LeadHandler) TransitionStatus(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.TransitionLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.leadService.TransitionStatus(c.Request.Context(), c.Param("leadID"), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// DeactivateLead godoc
// @Summary      Deactivate a lead
// @Description  Soft-hides the lead from listings. Managers only.
// @Tags         leads
// @Produce      json
// @Param        leadID  path  string  true  "Lead ID"
// @Success      204
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID} [delete]
func (h *LeadHandler) DeactivateLead(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	if err := h.leadService.DeactivateLead(c.Request.Context(), c.Param("leadID"), userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
