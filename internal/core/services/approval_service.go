package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/utils/commission"
	"github.com/google/uuid"
)

var (
	// ErrNotApprovable is the parent of every precondition failure on the
	// finance gate. Handlers match on it; callers get the specific message.
	ErrNotApprovable = errors.New("lead is not approvable")

	// ErrLeadNotConverted: the lead has not reached CONVERTED yet.
	ErrLeadNotConverted = fmt.Errorf("%w: lead has not been converted", ErrNotApprovable)
	// ErrAlreadyProcessed: the finance decision was already recorded.
	ErrAlreadyProcessed = fmt.Errorf("%w: finance decision already recorded", ErrNotApprovable)
	// ErrMissingDealTerms: selling price, cost price or category is unset.
	ErrMissingDealTerms = fmt.Errorf("%w: selling price, cost price and category must be set", ErrNotApprovable)

	// ErrInvalidCommissionState guards the paid flag: the lead must be
	// approved and unpaid.
	ErrInvalidCommissionState = errors.New("commission is not in a payable state")

	// ErrRejectionReasonRequired: rejections must carry a reason.
	ErrRejectionReasonRequired = fmt.Errorf("%w: a rejection reason is required", apperrors.ErrValidation)
)

const maxRejectionReasonLen = 500

type approvalService struct {
	BaseService
	leadRepo portsrepo.LeadRepository
	userRepo portsrepo.UserRepository
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// NewApprovalService creates a new approval service instance.
func NewApprovalService(leadRepo portsrepo.LeadRepository, userRepo portsrepo.UserRepository) portssvc.ApprovalSvcFacade {
	return &approvalService{leadRepo: leadRepo, userRepo: userRepo}
}

// Approve records the finance approval and, when the lead has a sales-role
// assignee, credits their commission in the same transaction. The role check
// runs before any lead state is inspected.
func (s *approvalService) Approve(ctx context.Context, leadID string, actorUserID string) (*domain.Lead, error) {
	actor, err := requireRole(ctx, s.userRepo, actorUserID, domain.RoleFinance, domain.RoleManager)
	if err != nil {
		return nil, err
	}

	lead, err := s.loadGatedLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.HasDealTerms() {
		return nil, ErrMissingDealTerms
	}

	now := time.Now()
	lead.Approval = domain.ApprovalApproved
	lead.ApprovedBy = &actor.UserID
	approvedAt := now
	lead.ApprovedAt = &approvedAt
	lead.LastUpdatedAt = now
	lead.LastUpdatedBy = actor.UserID

	credit, err := s.buildCredit(ctx, lead, actor.UserID, now)
	if err != nil {
		return nil, err
	}

	if err := s.leadRepo.ApproveLead(ctx, *lead, credit); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Another caller decided the lead between our read and the
			// conditional write.
			return nil, ErrAlreadyProcessed
		}
		s.LogError(ctx, err, "Failed to approve lead", "lead_id", leadID)
		return nil, fmt.Errorf("failed to approve lead: %w", err)
	}

	if credit != nil {
		s.LogInfo(ctx, "Lead approved with commission credit",
			"lead_id", leadID, "assignee_id", credit.UserID, "amount", credit.Amount.String())
	} else {
		s.LogInfo(ctx, "Lead approved without commission credit", "lead_id", leadID)
	}
	return lead, nil
}

// Reject records the finance rejection with its mandatory reason.
func (s *approvalService) Reject(ctx context.Context, leadID string, actorUserID string, reason string) (*domain.Lead, error) {
	actor, err := requireRole(ctx, s.userRepo, actorUserID, domain.RoleFinance, domain.RoleManager)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}
	if len(reason) > maxRejectionReasonLen {
		return nil, fmt.Errorf("%w: rejection reason exceeds %d characters", apperrors.ErrValidation, maxRejectionReasonLen)
	}

	lead, err := s.loadGatedLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	lead.Approval = domain.ApprovalRejected
	lead.RejectionReason = &reason
	lead.LastUpdatedAt = now
	lead.LastUpdatedBy = actor.UserID

	if err := s.leadRepo.RejectLead(ctx, *lead); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrAlreadyProcessed
		}
		s.LogError(ctx, err, "Failed to reject lead", "lead_id", leadID)
		return nil, fmt.Errorf("failed to reject lead: %w", err)
	}

	s.LogInfo(ctx, "Lead rejected", "lead_id", leadID)
	return lead, nil
}

// MarkCommissionPaid flips the paid flag on an approved, unpaid lead. The
// credited amount is untouched; this is a status transition only.
func (s *approvalService) MarkCommissionPaid(ctx context.Context, leadID string, actorUserID string) (*domain.Lead, error) {
	actor, err := requireRole(ctx, s.userRepo, actorUserID, domain.RoleFinance, domain.RoleManager)
	if err != nil {
		return nil, err
	}

	lead, err := s.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Approval != domain.ApprovalApproved || lead.CommissionPaid {
		return nil, ErrInvalidCommissionState
	}

	now := time.Now()
	if err := s.leadRepo.MarkCommissionPaid(ctx, leadID, actor.UserID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrInvalidCommissionState
		}
		s.LogError(ctx, err, "Failed to mark commission paid", "lead_id", leadID)
		return nil, fmt.Errorf("failed to mark commission paid: %w", err)
	}

	lead.CommissionPaid = true
	lead.LastUpdatedAt = now
	lead.LastUpdatedBy = actor.UserID

	s.LogInfo(ctx, "Commission marked paid", "lead_id", leadID)
	return lead, nil
}

// loadGatedLead fetches the lead and applies the shared approve/reject
// preconditions: the lead must be CONVERTED and still undecided.
func (s *approvalService) loadGatedLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	lead, err := s.findLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Status != domain.StatusConverted {
		return nil, ErrLeadNotConverted
	}
	if lead.Approval != domain.ApprovalPending {
		return nil, ErrAlreadyProcessed
	}
	return lead, nil
}

func (s *approvalService) findLead(ctx context.Context, leadID string) (*domain.Lead, error) {
	lead, err := s.leadRepo.FindLeadByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("lead with ID %s not found", leadID))
		}
		s.LogError(ctx, err, "Failed to find lead", "lead_id", leadID)
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return lead, nil
}

// buildCredit computes the settlement commission for the lead's assignee.
// Returns nil (no credit) when the lead is unassigned, the assignee no longer
// exists, or the assignee is not in the sales role; approval proceeds either
// way.
func (s *approvalService) buildCredit(ctx context.Context, lead *domain.Lead, approvedBy string, now time.Time) (*domain.CommissionEntry, error) {
	if lead.AssignedTo == nil {
		return nil, nil
	}

	assignee, err := s.userRepo.FindUserByID(ctx, *lead.AssignedTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Skipping commission credit: assignee not found",
				"lead_id", lead.LeadID, "assignee_id", *lead.AssignedTo)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load assignee: %w", err)
	}
	if assignee.Role != domain.RoleSales {
		s.LogInfo(ctx, "Skipping commission credit: assignee is not sales",
			"lead_id", lead.LeadID, "assignee_id", assignee.UserID, "role", string(assignee.Role))
		return nil, nil
	}

	profit, ok := lead.Profit()
	if !ok {
		// Unreachable after the deal-terms check, kept as a guard.
		return nil, ErrMissingDealTerms
	}

	return &domain.CommissionEntry{
		EntryID:             uuid.NewString(),
		LeadID:              lead.LeadID,
		UserID:              assignee.UserID,
		Amount:              commission.SettlementAmount(profit, assignee.CommissionRate, assignee.BonusCommissionRate),
		CommissionRate:      assignee.CommissionRate,
		BonusCommissionRate: assignee.BonusCommissionRate,
		CreatedAt:           now,
		CreatedBy:           approvedBy,
	}, nil
}
