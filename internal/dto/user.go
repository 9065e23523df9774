package dto

import (
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateUserRequest is the payload for creating a staff account.
type CreateUserRequest struct {
	Username            string           `json:"username" binding:"required,min=3,max=50"`
	Password            string           `json:"password" binding:"required,min=8"`
	Name                string           `json:"name" binding:"required"`
	Role                string           `json:"role" binding:"required,userrole"`
	CommissionRate      decimal.Decimal  `json:"commissionRate"`
	BonusCommissionRate decimal.Decimal  `json:"bonusCommissionRate"`
	TargetAmount        *decimal.Decimal `json:"targetAmount"`
}

// UpdateUserRequest carries the updatable user fields.
type UpdateUserRequest struct {
	Name                *string          `json:"name"`
	CommissionRate      *decimal.Decimal `json:"commissionRate"`
	BonusCommissionRate *decimal.Decimal `json:"bonusCommissionRate"`
	TargetAmount        *decimal.Decimal `json:"targetAmount"`
	IsActive            *bool            `json:"isActive"`
}

// UserResponse is the wire representation of a user. The commission
// accumulator is exposed read-only; it is only ever written by the approval
// transaction.
type UserResponse struct {
	UserID              string           `json:"userID"`
	Username            string           `json:"username"`
	Name                string           `json:"name"`
	Role                string           `json:"role"`
	CommissionRate      decimal.Decimal  `json:"commissionRate"`
	BonusCommissionRate decimal.Decimal  `json:"bonusCommissionRate"`
	CommissionEarned    decimal.Decimal  `json:"commissionEarned"`
	TargetAmount        *decimal.Decimal `json:"targetAmount,omitempty"`
	IsActive            bool             `json:"isActive"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:              u.UserID,
		Username:            u.Username,
		Name:                u.Name,
		Role:                string(u.Role),
		CommissionRate:      u.CommissionRate,
		BonusCommissionRate: u.BonusCommissionRate,
		CommissionEarned:    u.CommissionEarned,
		TargetAmount:        u.TargetAmount,
		IsActive:            u.IsActive,
		CreatedAt:           u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
