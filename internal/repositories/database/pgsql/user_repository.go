package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	"github.com/dealerhq/dealer_crm_app/internal/models"
	"github.com/dealerhq/dealer_crm_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const userColumns = `user_id, username, password_hash, name, role,
	commission_rate, bonus_commission_rate, commission_earned, target_amount,
	is_active, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// PgxUserRepository implements the user persistence port on PostgreSQL.
type PgxUserRepository struct {
	BaseRepository
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

// NewPgxUserRepository creates a new user repository instance.
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: NewBaseRepository(pool)}
}

// SaveUser inserts a new user row with the given password hash.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	m := mapping.ToModelUser(user)
	m.PasswordHash = passwordHash

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.PasswordHash, m.Name, m.Role,
		m.CommissionRate, m.BonusCommissionRate, m.CommissionEarned, m.TargetAmount,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindUserByID fetches a single non-deleted user.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	d := mapping.ToDomainUser(m)
	return &d, nil
}

// FindUserByUsername fetches a user and their stored password hash for
// credential verification.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL`

	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to query user by username: %w", err)
	}

	d := mapping.ToDomainUser(m)
	return &d, m.PasswordHash, nil
}

// FindUsers returns a page of non-deleted users.
func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, user_id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// FindActiveSalesAndManagers returns active SALES and MANAGER users ordered
// by role then name, for the category quota overview.
func (r *PgxUserRepository) FindActiveSalesAndManagers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL AND is_active = TRUE AND role IN ($1, $2)
		ORDER BY role, name`

	rows, err := r.Pool.Query(ctx, query, string(domain.RoleSales), string(domain.RoleManager))
	if err != nil {
		return nil, fmt.Errorf("failed to query sales and managers: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// UpdateUser writes the updatable user columns. The commission accumulator is
// absent from the SET list; it only moves through CreditCommissionInTx.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	query := `
		UPDATE users SET
			name = $2, commission_rate = $3, bonus_commission_rate = $4,
			target_amount = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $1 AND deleted_at IS NULL`

	tag, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Name, m.CommissionRate, m.BonusCommissionRate,
		m.TargetAmount, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUserDeleted soft-deletes the user.
func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error {
	query := `
		UPDATE users SET
			deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL`

	tag, err := r.Pool.Exec(ctx, query, userID, at, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark user deleted: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreditCommissionInTx adds amount to the user's commission accumulator within
// the caller's transaction. The addition happens in SQL so concurrent credits
// for the same user serialize on the row instead of losing updates.
func (r *PgxUserRepository) CreditCommissionInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, updatedBy string, at time.Time) error {
	query := `
		UPDATE users SET
			commission_earned = commission_earned + $2,
			last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND deleted_at IS NULL`

	tag, err := tx.Exec(ctx, query, userID, amount, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to credit commission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var ms []models.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}
	return mapping.ToDomainUserSlice(ms), nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Username, &m.PasswordHash, &m.Name, &m.Role,
		&m.CommissionRate, &m.BonusCommissionRate, &m.CommissionEarned, &m.TargetAmount,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.DeletedAt,
	)
	return m, err
}
