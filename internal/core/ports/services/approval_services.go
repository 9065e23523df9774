package services

import (
	"context"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
)

// ApprovalSvcFacade is the finance approval gate over converted leads: the
// only component allowed to write the approval tri-state, and the only
// invoker of the settlement calculator. All operations require the acting
// user to hold the FINANCE or MANAGER role.
type ApprovalSvcFacade interface {
	// Approve records the approval and credits the assignee's commission in
	// one atomic unit. Leads without a sales-role assignee are approved
	// without a credit.
	Approve(ctx context.Context, leadID string, actorUserID string) (*domain.Lead, error)

	// Reject records the rejection with a mandatory reason. No commission
	// side effect.
	Reject(ctx context.Context, leadID string, actorUserID string, reason string) (*domain.Lead, error)

	// MarkCommissionPaid flips the paid flag on an approved, unpaid lead.
	MarkCommissionPaid(ctx context.Context, leadID string, actorUserID string) (*domain.Lead, error)
}
