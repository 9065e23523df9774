package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	"github.com/dealerhq/dealer_crm_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning message with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// requireRole loads the acting user and checks they hold one of the allowed
// roles. Runs before any other validation so unauthorized callers learn
// nothing about resource state. A missing or deleted actor is forbidden, not
// not-found, to avoid leaking account existence.
func requireRole(ctx context.Context, userRepo portsrepo.UserRepository, actorUserID string, allowed ...domain.UserRole) (*domain.User, error) {
	actor, err := userRepo.FindUserByID(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		return nil, err
	}
	if !actor.IsActive {
		return nil, apperrors.ErrForbidden
	}
	for _, role := range allowed {
		if actor.Role == role {
			return actor, nil
		}
	}
	return nil, apperrors.ErrForbidden
}
