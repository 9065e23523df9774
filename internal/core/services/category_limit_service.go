package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
)

type categoryLimitService struct {
	BaseService
	limitRepo portsrepo.CategoryLimitRepository
	userRepo  portsrepo.UserRepository
}

var _ portssvc.CategoryLimitSvcFacade = (*categoryLimitService)(nil)

// NewCategoryLimitService creates a new category limit service instance.
func NewCategoryLimitService(limitRepo portsrepo.CategoryLimitRepository, userRepo portsrepo.UserRepository) portssvc.CategoryLimitSvcFacade {
	return &categoryLimitService{limitRepo: limitRepo, userRepo: userRepo}
}

// GetLimits returns the user's advisory limits, one entry per category with
// absent rows defaulted to 0.
func (s *categoryLimitService) GetLimits(ctx context.Context, userID string) (map[domain.LeadCategory]int, error) {
	if err := s.checkTargetUser(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.limitRepo.FindLimitsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category limits", "user_id", userID)
		return nil, fmt.Errorf("failed to load category limits: %w", err)
	}
	return domain.FillCategoryLimits(rows), nil
}

// SetLimits upserts the given limits for the target user. Manager-only.
// Unknown category keys are rejected; nil values are skipped so partial maps
// leave other categories untouched.
func (s *categoryLimitService) SetLimits(ctx context.Context, actorUserID string, targetUserID string, req dto.SetCategoryLimitsRequest) (map[domain.LeadCategory]int, error) {
	actor, err := requireRole(ctx, s.userRepo, actorUserID, domain.RoleManager)
	if err != nil {
		return nil, err
	}
	if err := s.checkTargetUser(ctx, targetUserID); err != nil {
		return nil, err
	}

	now := time.Now()
	upserts := make([]domain.CategoryLimit, 0, len(req.Limits))
	for key, value := range req.Limits {
		category := domain.LeadCategory(key)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrValidation, key)
		}
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, fmt.Errorf("%w: limit for %s cannot be negative", apperrors.ErrValidation, key)
		}
		upserts = append(upserts, domain.CategoryLimit{
			UserID:   targetUserID,
			Category: category,
			Limit:    *value,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		})
	}

	if len(upserts) > 0 {
		if err := s.limitRepo.UpsertLimits(ctx, upserts); err != nil {
			s.LogError(ctx, err, "Failed to upsert category limits", "user_id", targetUserID)
			return nil, fmt.Errorf("failed to upsert category limits: %w", err)
		}
	}

	rows, err := s.limitRepo.FindLimitsByUserID(ctx, targetUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload category limits", "user_id", targetUserID)
		return nil, fmt.Errorf("failed to reload category limits: %w", err)
	}

	s.LogInfo(ctx, "Category limits updated", "user_id", targetUserID, "entries", len(upserts))
	return domain.FillCategoryLimits(rows), nil
}

// ListUsersWithLimits returns the quota overview for every active sales and
// manager account. Manager-only.
func (s *categoryLimitService) ListUsersWithLimits(ctx context.Context, actorUserID string) ([]domain.UserWithLimits, error) {
	if _, err := requireRole(ctx, s.userRepo, actorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	users, err := s.userRepo.FindActiveSalesAndManagers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users for quota overview")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	userIDs := make([]string, len(users))
	for i, user := range users {
		userIDs[i] = user.UserID
	}

	limitsByUser, err := s.limitRepo.FindLimitsByUserIDs(ctx, userIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load category limits for quota overview")
		return nil, fmt.Errorf("failed to load category limits: %w", err)
	}

	out := make([]domain.UserWithLimits, len(users))
	for i, user := range users {
		out[i] = domain.UserWithLimits{
			User:   user,
			Limits: domain.FillCategoryLimits(limitsByUser[user.UserID]),
		}
	}
	return out, nil
}

func (s *categoryLimitService) checkTargetUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", userID))
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}
