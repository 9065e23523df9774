package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/utils"
)

type tokenService struct {
	BaseService
	jwtSecret      string
	expiryDuration time.Duration
	issuer         string
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// NewTokenService creates a new token service instance.
func NewTokenService(jwtSecret string, expiryDuration time.Duration, issuer string) portssvc.TokenSvcFacade {
	return &tokenService{
		jwtSecret:      jwtSecret,
		expiryDuration: expiryDuration,
		issuer:         issuer,
	}
}

// GenerateAccessToken issues a signed JWT carrying the user's role claim.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.jwtSecret, s.expiryDuration, s.issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", "user_id", user.UserID)
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, expiresAt, nil
}
