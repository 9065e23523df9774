package handlers

import (
	"net/http"

	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ApprovalHandler exposes the finance approval gate over converted leads.
type ApprovalHandler struct {
	approvalService portssvc.ApprovalSvcFacade
}

// NewApprovalHandler creates a new ApprovalHandler instance.
func NewApprovalHandler(approvalService portssvc.ApprovalSvcFacade) *ApprovalHandler {
	return &ApprovalHandler{approvalService: approvalService}
}

// ApproveLead godoc
// @Summary      Approve a converted lead
// @Description  Records the finance approval and credits the assignee's commission atomically. Finance or manager role required.
// @Tags         approvals
// @Produce      json
// @Param        leadID  path      string  true  "Lead ID"
// @Success      200     {object}  dto.LeadResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID}/approve [post]
func (h *ApprovalHandler) ApproveLead(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	lead, err := h.approvalService.Approve(c.Request.Context(), c.Param("leadID"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// RejectLead godoc
// @Summary      Reject a converted lead
// @Description  Records the finance rejection with a mandatory reason. Finance or manager role required.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        leadID     path      string                 true  "Lead ID"
// @Param        rejection  body      dto.RejectLeadRequest  true  "Rejection reason"
// @Success      200        {object}  dto.LeadResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      403        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Failure      409        {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID}/reject [post]
func (h *ApprovalHandler) RejectLead(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	var req dto.RejectLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	lead, err := h.approvalService.Reject(c.Request.Context(), c.Param("leadID"), userID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}

// MarkCommissionPaid godoc
// @Summary      Mark a lead's commission as paid
// @Description  Flips the paid flag on an approved, unpaid lead. Finance or manager role required.
// @Tags         approvals
// @Produce      json
// @Param        leadID  path      string  true  "Lead ID"
// @Success      200     {object}  dto.LeadResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /leads/{leadID}/commission-paid [post]
func (h *ApprovalHandler) MarkCommissionPaid(c *gin.Context) {
	userID, ok := requireAuthenticatedUser(c)
	if !ok {
		return
	}

	lead, err := h.approvalService.MarkCommissionPaid(c.Request.Context(), c.Param("leadID"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLeadResponse(lead))
}
