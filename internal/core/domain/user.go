package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole defines the possible roles a user can have in the dealership.
type UserRole string

const (
	RoleManager UserRole = "MANAGER"
	RoleSales   UserRole = "SALES"
	RoleFinance UserRole = "FINANCE"
)

// IsValid reports whether the role is one of the known roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleManager, RoleSales, RoleFinance:
		return true
	}
	return false
}

// User represents a dealership staff account in the domain.
type User struct {
	UserID   string   `json:"userID"` // Primary Key (UUID)
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Role     UserRole `json:"role"`

	// Commission parameters consumed by the settlement calculator.
	CommissionRate      decimal.Decimal `json:"commissionRate"`      // flat percent
	BonusCommissionRate decimal.Decimal `json:"bonusCommissionRate"` // flat percent, 0 disables

	// CommissionEarned is a monotonically increasing running total. It is
	// mutated only inside the approval transaction, never read-modify-written
	// at the application layer.
	CommissionEarned decimal.Decimal `json:"commissionEarned"`

	// TargetAmount is the sales quota. When nil, a role-based default applies.
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`

	IsActive bool `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// ResolvedTarget returns the user's quota, falling back to the role default.
func (u User) ResolvedTarget() decimal.Decimal {
	if u.TargetAmount != nil {
		return *u.TargetAmount
	}
	if u.Role == RoleManager {
		return decimal.NewFromInt(70000)
	}
	return decimal.NewFromInt(50000)
}
