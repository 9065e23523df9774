package repositories

import (
	"context"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
)

// ConvertedLeadReader is the narrow read port consumed by the performance
// projector. It deliberately exposes converted leads regardless of their
// finance approval state or active flag: deactivation hides a lead from
// listings, it does not undo the deal.
type ConvertedLeadReader interface {
	FindConvertedLeadsByAssignee(ctx context.Context, userID string) ([]domain.Lead, error)
}

// LeadRepository defines persistence operations for leads, including the
// approval writes that must be atomic with the commission credit.
type LeadRepository interface {
	ConvertedLeadReader

	SaveLead(ctx context.Context, lead domain.Lead) error
	FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error)

	// UpdateLead writes lifecycle/commerce fields (status, reason, prices,
	// category, assignment, priority, isActive). It never touches the
	// approval columns; those belong to the gate methods below.
	UpdateLead(ctx context.Context, lead domain.Lead) error

	ListLeads(ctx context.Context, limit int, nextToken *string) ([]domain.Lead, *string, error)

	// ApproveLead atomically records the finance approval and, when credit is
	// non-nil, increments the assignee's commission accumulator and appends
	// the ledger entry — all in one transaction. The approval write is
	// conditional on the lead still being CONVERTED and undecided; if another
	// caller won the race, apperrors.ErrConflict is returned and nothing is
	// persisted.
	ApproveLead(ctx context.Context, lead domain.Lead, credit *domain.CommissionEntry) error

	// RejectLead records the finance rejection under the same conditional
	// guard as ApproveLead.
	RejectLead(ctx context.Context, lead domain.Lead) error

	// MarkCommissionPaid flips the paid flag, conditional on the lead being
	// approved and unpaid; apperrors.ErrConflict otherwise.
	MarkCommissionPaid(ctx context.Context, leadID string, updatedBy string, at time.Time) error
}
