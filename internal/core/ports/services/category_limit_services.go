package services

import (
	"context"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
)

// CategoryLimitSvcFacade manages advisory per-user category quotas.
// Write operations are manager-only; nothing enforces the limits elsewhere.
type CategoryLimitSvcFacade interface {
	GetLimits(ctx context.Context, userID string) (map[domain.LeadCategory]int, error)
	SetLimits(ctx context.Context, actorUserID string, targetUserID string, req dto.SetCategoryLimitsRequest) (map[domain.LeadCategory]int, error)
	ListUsersWithLimits(ctx context.Context, actorUserID string) ([]domain.UserWithLimits, error)
}
