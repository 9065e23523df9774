package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a row in the users table.
type User struct {
	UserID              string           `db:"user_id"`
	Username            string           `db:"username"`
	PasswordHash        string           `db:"password_hash"`
	Name                string           `db:"name"`
	Role                string           `db:"role"`
	CommissionRate      decimal.Decimal  `db:"commission_rate"`
	BonusCommissionRate decimal.Decimal  `db:"bonus_commission_rate"`
	CommissionEarned    decimal.Decimal  `db:"commission_earned"`
	TargetAmount        *decimal.Decimal `db:"target_amount"`
	IsActive            bool             `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
