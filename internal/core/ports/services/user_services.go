package services

import (
	"context"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
)

// UserSvcFacade exposes staff account management and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error

	// Authenticate verifies username/password and returns the user on success.
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)
}
