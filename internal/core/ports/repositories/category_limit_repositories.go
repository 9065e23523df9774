package repositories

import (
	"context"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
)

// CategoryLimitRepository defines persistence for advisory per-user category
// quotas. One row per (user, category); absence means 0.
type CategoryLimitRepository interface {
	FindLimitsByUserID(ctx context.Context, userID string) ([]domain.CategoryLimit, error)

	// FindLimitsByUserIDs batch-loads limits for the quota overview, keyed by
	// user id. Users with no rows get an empty slice entry.
	FindLimitsByUserIDs(ctx context.Context, userIDs []string) (map[string][]domain.CategoryLimit, error)

	// UpsertLimits inserts or overwrites the given rows.
	UpsertLimits(ctx context.Context, limits []domain.CategoryLimit) error
}
