package services

import (
	"context"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
)

// LeadSvcFacade exposes lead lifecycle operations: intake, reads and the
// status state machine. Finance approval lives on ApprovalSvcFacade.
type LeadSvcFacade interface {
	CreateLead(ctx context.Context, req dto.CreateLeadRequest, creatorUserID string) (*domain.Lead, error)
	GetLeadByID(ctx context.Context, leadID string) (*domain.Lead, error)
	ListLeads(ctx context.Context, params dto.ListLeadsParams) (*dto.ListLeadsResponse, error)
	UpdateLead(ctx context.Context, leadID string, req dto.UpdateLeadRequest, updaterUserID string) (*domain.Lead, error)

	// TransitionStatus moves the lead along the lifecycle state machine.
	// NOT_CONVERTED requires a non-empty reason.
	TransitionStatus(ctx context.Context, leadID string, req dto.TransitionLeadRequest, actorUserID string) (*domain.Lead, error)

	// DeactivateLead soft-hides the lead; independent of status.
	DeactivateLead(ctx context.Context, leadID string, actorUserID string) error
}
