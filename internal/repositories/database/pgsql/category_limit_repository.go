package pgsql

import (
	"context"
	"fmt"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	"github.com/dealerhq/dealer_crm_app/internal/models"
	"github.com/dealerhq/dealer_crm_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryLimitColumns = `user_id, category, limit_count,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxCategoryLimitRepository implements category limit persistence on PostgreSQL.
type PgxCategoryLimitRepository struct {
	BaseRepository
}

var _ portsrepo.CategoryLimitRepository = (*PgxCategoryLimitRepository)(nil)

// NewPgxCategoryLimitRepository creates a new category limit repository instance.
func NewPgxCategoryLimitRepository(pool *pgxpool.Pool) *PgxCategoryLimitRepository {
	return &PgxCategoryLimitRepository{BaseRepository: NewBaseRepository(pool)}
}

// FindLimitsByUserID fetches the stored limit rows for one user. Absent
// categories have no row; the service default-fills them.
func (r *PgxCategoryLimitRepository) FindLimitsByUserID(ctx context.Context, userID string) ([]domain.CategoryLimit, error) {
	query := `SELECT ` + categoryLimitColumns + ` FROM category_limits WHERE user_id = $1`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category limits: %w", err)
	}
	defer rows.Close()

	ms, err := collectCategoryLimits(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainCategoryLimitSlice(ms), nil
}

// FindLimitsByUserIDs batch-loads limit rows for the quota overview, keyed by
// user id. Users without rows get an empty slice entry.
func (r *PgxCategoryLimitRepository) FindLimitsByUserIDs(ctx context.Context, userIDs []string) (map[string][]domain.CategoryLimit, error) {
	out := make(map[string][]domain.CategoryLimit, len(userIDs))
	for _, id := range userIDs {
		out[id] = nil
	}
	if len(userIDs) == 0 {
		return out, nil
	}

	query := `SELECT ` + categoryLimitColumns + ` FROM category_limits WHERE user_id = ANY($1)`

	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query category limits: %w", err)
	}
	defer rows.Close()

	ms, err := collectCategoryLimits(rows)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		d := mapping.ToDomainCategoryLimit(m)
		out[d.UserID] = append(out[d.UserID], d)
	}
	return out, nil
}

// UpsertLimits inserts or overwrites the given rows in one batch.
func (r *PgxCategoryLimitRepository) UpsertLimits(ctx context.Context, limits []domain.CategoryLimit) error {
	if len(limits) == 0 {
		return nil
	}

	query := `
		INSERT INTO category_limits (` + categoryLimitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, category) DO UPDATE SET
			limit_count = EXCLUDED.limit_count,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by`

	batch := &pgx.Batch{}
	for _, limit := range limits {
		batch.Queue(query,
			limit.UserID, string(limit.Category), limit.Limit,
			limit.CreatedAt, limit.CreatedBy, limit.LastUpdatedAt, limit.LastUpdatedBy,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range limits {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert category limit: %w", err)
		}
	}
	return nil
}

func collectCategoryLimits(rows pgx.Rows) ([]models.CategoryLimit, error) {
	var ms []models.CategoryLimit
	for rows.Next() {
		var m models.CategoryLimit
		if err := rows.Scan(
			&m.UserID, &m.Category, &m.Limit,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category limit row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category limit rows: %w", err)
	}
	return ms, nil
}
