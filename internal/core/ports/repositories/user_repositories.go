package repositories

import (
	"context"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a new user. The password hash is stored alongside but
	// never surfaces on the domain object.
	SaveUser(ctx context.Context, user domain.User, passwordHash string) error

	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername returns the user and their stored password hash for
	// credential verification.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, string, error)

	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)

	// FindActiveSalesAndManagers returns active SALES and MANAGER users
	// ordered by role then name, for the category quota overview.
	FindActiveSalesAndManagers(ctx context.Context) ([]domain.User, error)

	UpdateUser(ctx context.Context, user domain.User) error
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error

	// CreditCommissionInTx adds amount to the user's commission accumulator
	// within the caller's transaction. The increment is expressed at the SQL
	// level so concurrent approvals for the same user never lose updates.
	CreditCommissionInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, updatedBy string, at time.Time) error
}
