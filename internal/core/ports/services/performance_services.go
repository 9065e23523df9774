package services

import (
	"context"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
)

// PerformanceSvcFacade recomputes a salesperson's quota progress and the
// projection-policy commission estimate on demand. Read-only; nothing it
// computes is ever persisted.
type PerformanceSvcFacade interface {
	GetPerformance(ctx context.Context, userID string) (*domain.PerformanceReport, error)
}
