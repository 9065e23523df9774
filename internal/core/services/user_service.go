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
	"github.com/dealerhq/dealer_crm_app/internal/utils"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for any login failure so callers cannot
// distinguish a wrong password from an unknown or deactivated account.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// NewUserService creates a new user service instance.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// CreateUser registers a new staff account. Manager-only.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	if _, err := requireRole(ctx, s.userRepo, creatorUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	role := domain.UserRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	if req.CommissionRate.IsNegative() || req.BonusCommissionRate.IsNegative() {
		return nil, fmt.Errorf("%w: commission rates cannot be negative", apperrors.ErrValidation)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:              uuid.NewString(),
		Username:            strings.ToLower(strings.TrimSpace(req.Username)),
		Name:                strings.TrimSpace(req.Name),
		Role:                role,
		CommissionRate:      req.CommissionRate,
		BonusCommissionRate: req.BonusCommissionRate,
		TargetAmount:        req.TargetAmount,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user, passwordHash); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username %s is already taken", apperrors.ErrDuplicate, user.Username)
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User created", "created_user_id", user.UserID, "role", string(role))
	return &user, nil
}

// GetUserByID fetches a single user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", userID))
		}
		s.LogError(ctx, err, "Failed to find user", "user_id", userID)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns a page of users.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies account changes. Manager-only. The commission accumulator
// is deliberately not updatable here.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	if _, err := requireRole(ctx, s.userRepo, updaterUserID, domain.RoleManager); err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		user.Name = name
	}
	if req.CommissionRate != nil {
		if req.CommissionRate.IsNegative() {
			return nil, fmt.Errorf("%w: commission rate cannot be negative", apperrors.ErrValidation)
		}
		user.CommissionRate = *req.CommissionRate
	}
	if req.BonusCommissionRate != nil {
		if req.BonusCommissionRate.IsNegative() {
			return nil, fmt.Errorf("%w: bonus commission rate cannot be negative", apperrors.ErrValidation)
		}
		user.BonusCommissionRate = *req.BonusCommissionRate
	}
	if req.TargetAmount != nil {
		user.TargetAmount = req.TargetAmount
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", "user_id", userID)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated", "updated_user_id", userID)
	return user, nil
}

// DeleteUser soft-deletes the account. Manager-only; self-deletion is blocked.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleterUserID string) error {
	if _, err := requireRole(ctx, s.userRepo, deleterUserID, domain.RoleManager); err != nil {
		return err
	}
	if userID == deleterUserID {
		return fmt.Errorf("%w: cannot delete your own account", apperrors.ErrValidation)
	}

	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, deleterUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete user", "user_id", userID)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.LogInfo(ctx, "User deleted", "deleted_user_id", userID)
	return nil
}

// Authenticate verifies the credentials against the stored bcrypt hash.
func (s *userService) Authenticate(ctx context.Context, username string, password string) (*domain.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, passwordHash, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, passwordHash) {
		return nil, ErrInvalidCredentials
	}

	s.LogInfo(ctx, "User authenticated", "user_id", user.UserID)
	return user, nil
}
