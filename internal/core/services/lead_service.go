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
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/google/uuid"
)

var (
	// ErrInvalidTransition signals a status change the lifecycle state machine
	// does not allow, including any attempt to leave a terminal state.
	ErrInvalidTransition = fmt.Errorf("%w: status transition not allowed", apperrors.ErrValidation)
	// ErrReasonRequired signals a NOT_CONVERTED transition without a reason.
	ErrReasonRequired = fmt.Errorf("%w: a reason is required to mark a lead as not converted", apperrors.ErrValidation)
	// ErrTermsLocked signals an attempt to change commercial fields after the
	// finance decision was recorded.
	ErrTermsLocked = fmt.Errorf("%w: deal terms are frozen once finance has ruled", apperrors.ErrConflict)
)

// allowedTransitions is the lifecycle state machine. Absent targets are
// rejected; CONVERTED and NOT_CONVERTED have no outgoing edges.
var allowedTransitions = map[domain.LeadStatus]map[domain.LeadStatus]bool{
	domain.StatusNew: {
		domain.StatusContacted:    true,
		domain.StatusConverted:    true,
		domain.StatusNotConverted: true,
	},
	domain.StatusContacted: {
		domain.StatusConverted:    true,
		domain.StatusNotConverted: true,
	},
	domain.StatusConverted:    {},
	domain.StatusNotConverted: {},
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type leadService struct {
	BaseService
	leadRepo portsrepo.LeadRepository
	userRepo portsrepo.UserRepository
}

var _ portssvc.LeadSvcFacade = (*leadService)(nil)

// NewLeadService creates a new lead service instance.
func NewLeadService(leadRepo portsrepo.LeadRepository, userRepo portsrepo.UserRepository) portssvc.LeadSvcFacade {
	return &leadService{leadRepo: leadRepo, userRepo: userRepo}
}

// CreateLead registers a new lead in the NEW status. Priority defaults to
// MEDIUM and quantity to 1 when omitted.
func (s *leadService) CreateLead(ctx context.Context, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error) {
	now := time.Now()

	priority := domain.LeadPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if req.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	lead := domain.Lead{
		LeadID:        uuid.NewString(),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Status:        domain.StatusNew,
		Category:      domain.LeadCategory(req.Category),
		Priority:      priority,
		SellingPrice:  req.SellingPrice,
		CostPrice:     req.CostPrice,
		Quantity:      quantity,
		AssignedTo:    req.AssignedTo,
		Approval:      domain.ApprovalPending,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if lead.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", apperrors.ErrValidation)
	}

	if err := s.leadRepo.SaveLead(ctx, lead); err != nil {
		s.LogError(ctx, err, "Failed to save lead")
		return nil, fmt.Errorf("failed to save lead: %w", err)
	}

	s.LogInfo(ctx, "Lead created", "lead_id", lead.LeadID)
	return &lead, nil
}

// GetLeadByID fetches a single lead.
func (s *leadService) GetLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
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

// ListLeads returns a page of leads ordered newest-first with a cursor token.
func (s *leadService) ListLeads(ctx context.Context, params dto.ListLeadsParams) (*dto.ListLeadsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	leads, nextToken, err := s.leadRepo.ListLeads(ctx, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leads")
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	return &dto.ListLeadsResponse{
		Leads:     dto.ToLeadResponses(leads),
		NextToken: nextToken,
	}, nil
}

// UpdateLead applies commerce and assignment changes. Commercial fields are
// immutable once the finance decision has been recorded, since the settlement
// amount was derived from them.
func (s *leadService) UpdateLead(ctx context.Context, leadID string, req dto.UpdateLeadRequest, updaterUserID string) (*domain.Lead, error) {
	lead, err := s.GetLeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	commercialChange := req.SellingPrice != nil || req.CostPrice != nil || req.Category != nil || req.Quantity != nil
	if commercialChange && lead.Approval != domain.ApprovalPending {
		return nil, ErrTermsLocked
	}

	if req.AssignedTo != nil && *req.AssignedTo != "" {
		if err := s.checkAssignee(ctx, *req.AssignedTo); err != nil {
			return nil, err
		}
	}

	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return nil, fmt.Errorf("%w: customer name cannot be empty", apperrors.ErrValidation)
		}
		lead.CustomerName = name
	}
	if req.CustomerPhone != nil {
		lead.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.Priority != nil {
		lead.Priority = domain.LeadPriority(*req.Priority)
	}
	if req.Category != nil {
		lead.Category = domain.LeadCategory(*req.Category)
	}
	if req.SellingPrice != nil {
		lead.SellingPrice = req.SellingPrice
	}
	if req.CostPrice != nil {
		lead.CostPrice = req.CostPrice
	}
	if req.Quantity != nil {
		lead.Quantity = *req.Quantity
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			lead.AssignedTo = nil
		} else {
			lead.AssignedTo = req.AssignedTo
		}
	}

	lead.LastUpdatedAt = time.Now()
	lead.LastUpdatedBy = updaterUserID

	if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
		s.LogError(ctx, err, "Failed to update lead", "lead_id", leadID)
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.LogInfo(ctx, "Lead updated", "lead_id", leadID)
	return lead, nil
}

// TransitionStatus moves the lead along the lifecycle state machine. The
// finance approval columns are untouched; a freshly converted lead therefore
// surfaces to finance as PENDING.
func (s *leadService) TransitionStatus(ctx context.Context, leadID string, req dto.TransitionLeadRequest, actorUserID string) (*domain.Lead, error) {
	target := domain.LeadStatus(req.Status)
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	lead, err := s.GetLeadByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if !allowedTransitions[lead.Status][target] {
		return nil, fmt.Errorf("%w (%s -> %s)", ErrInvalidTransition, lead.Status, target)
	}

	if target == domain.StatusNotConverted {
		reason := strings.TrimSpace(req.NotConvertedReason)
		if reason == "" {
			return nil, ErrReasonRequired
		}
		lead.NotConvertedReason = &reason
	}

	lead.Status = target
	lead.LastUpdatedAt = time.Now()
	lead.LastUpdatedBy = actorUserID

	if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
		s.LogError(ctx, err, "Failed to persist status transition", "lead_id", leadID)
		return nil, fmt.Errorf("failed to persist status transition: %w", err)
	}

	s.LogInfo(ctx, "Lead status changed", "lead_id", leadID, "status", string(target))
	return lead, nil
}

// DeactivateLead soft-hides the lead from listings. Managers only.
func (s *leadService) DeactivateLead(ctx context.Context, leadID string, actorUserID string) error {
	if _, err := requireRole(ctx, s.userRepo, actorUserID, domain.RoleManager); err != nil {
		return err
	}

	lead, err := s.GetLeadByID(ctx, leadID)
	if err != nil {
		return err
	}

	lead.IsActive = false
	lead.LastUpdatedAt = time.Now()
	lead.LastUpdatedBy = actorUserID

	if err := s.leadRepo.UpdateLead(ctx, *lead); err != nil {
		s.LogError(ctx, err, "Failed to deactivate lead", "lead_id", leadID)
		return fmt.Errorf("failed to deactivate lead: %w", err)
	}

	s.LogInfo(ctx, "Lead deactivated", "lead_id", leadID)
	return nil
}

// checkAssignee verifies the referenced assignee exists and is active.
func (s *leadService) checkAssignee(ctx context.Context, userID string) error {
	assignee, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: assigned user %s does not exist", apperrors.ErrValidation, userID)
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if !assignee.IsActive {
		return fmt.Errorf("%w: assigned user %s is inactive", apperrors.ErrValidation, userID)
	}
	return nil
}
