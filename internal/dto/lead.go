package dto

import (
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLeadRequest is the payload for lead intake.
type CreateLeadRequest struct {
	CustomerName  string           `json:"customerName" binding:"required"`
	CustomerPhone string           `json:"customerPhone"`
	Priority      string           `json:"priority" binding:"omitempty,leadpriority"`
	Category      string           `json:"category" binding:"omitempty,leadcategory"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	Quantity      int              `json:"quantity" binding:"omitempty,min=1"`
	AssignedTo    *string          `json:"assignedTo"`
}

// UpdateLeadRequest carries the commerce and assignment fields a lead can
// take on before or after conversion. Status changes go through the
// transition endpoint instead.
type UpdateLeadRequest struct {
	CustomerName  *string          `json:"customerName"`
	CustomerPhone *string          `json:"customerPhone"`
	Priority      *string          `json:"priority" binding:"omitempty,leadpriority"`
	Category      *string          `json:"category" binding:"omitempty,leadcategory"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	Quantity      *int             `json:"quantity" binding:"omitempty,min=1"`
	AssignedTo    *string          `json:"assignedTo"`
}

// TransitionLeadRequest moves a lead to a new lifecycle status.
// NotConvertedReason is required when the target status is NOT_CONVERTED.
type TransitionLeadRequest struct {
	Status             string `json:"status" binding:"required,leadstatus"`
	NotConvertedReason string `json:"notConvertedReason"`
}

// RejectLeadRequest carries the mandatory rejection reason.
type RejectLeadRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListLeadsParams holds parameters for the paginated lead listing.
type ListLeadsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LeadResponse is the wire representation of a lead. The finance decision is
// always one of PENDING, APPROVED or REJECTED so the undecided state can
// never be confused with a defaulted boolean.
type LeadResponse struct {
	LeadID             string           `json:"leadID"`
	CustomerName       string           `json:"customerName"`
	CustomerPhone      string           `json:"customerPhone,omitempty"`
	Status             string           `json:"status"`
	Category           string           `json:"category,omitempty"`
	Priority           string           `json:"priority"`
	SellingPrice       *decimal.Decimal `json:"sellingPrice,omitempty"`
	CostPrice          *decimal.Decimal `json:"costPrice,omitempty"`
	Quantity           int              `json:"quantity"`
	AssignedTo         *string          `json:"assignedTo,omitempty"`
	NotConvertedReason *string          `json:"notConvertedReason,omitempty"`
	FinanceApproval    string           `json:"financeApproval"`
	ApprovedBy         *string          `json:"approvedBy,omitempty"`
	ApprovedAt         *time.Time       `json:"approvedAt,omitempty"`
	RejectionReason    *string          `json:"rejectionReason,omitempty"`
	CommissionPaid     bool             `json:"commissionPaid"`
	IsActive           bool             `json:"isActive"`
	CreatedAt          time.Time        `json:"createdAt"`
	LastUpdatedAt      time.Time        `json:"lastUpdatedAt"`
}

// ListLeadsResponse wraps a page of leads with the cursor for the next page.
type ListLeadsResponse struct {
	Leads     []LeadResponse `json:"leads"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToLeadResponse converts a domain lead to its response DTO.
func ToLeadResponse(l *domain.Lead) LeadResponse {
	return LeadResponse{
		LeadID:             l.LeadID,
		CustomerName:       l.CustomerName,
		CustomerPhone:      l.CustomerPhone,
		Status:             string(l.Status),
		Category:           string(l.Category),
		Priority:           string(l.Priority),
		SellingPrice:       l.SellingPrice,
		CostPrice:          l.CostPrice,
		Quantity:           l.Quantity,
		AssignedTo:         l.AssignedTo,
		NotConvertedReason: l.NotConvertedReason,
		FinanceApproval:    string(l.Approval),
		ApprovedBy:         l.ApprovedBy,
		ApprovedAt:         l.ApprovedAt,
		RejectionReason:    l.RejectionReason,
		CommissionPaid:     l.CommissionPaid,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
		LastUpdatedAt:      l.LastUpdatedAt,
	}
}

// ToLeadResponses converts a slice of domain leads.
func ToLeadResponses(leads []domain.Lead) []LeadResponse {
	out := make([]LeadResponse, len(leads))
	for i := range leads {
		out[i] = ToLeadResponse(&leads[i])
	}
	return out
}
