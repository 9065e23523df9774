package services

import (
	"context"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
)

// TokenSvcFacade issues access tokens carrying the user's role claim.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
