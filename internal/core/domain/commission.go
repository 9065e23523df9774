package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionEntry is an append-only record of a commission credit. Exactly one
// entry exists per approved lead that had a sales-role assignee; it is written
// in the same transaction as the approval and the accumulator increment.
type CommissionEntry struct {
	EntryID string `json:"entryID"` // Primary Key (UUID)
	LeadID  string `json:"leadID"`
	UserID  string `json:"userID"` // the credited salesperson

	Amount decimal.Decimal `json:"amount"`

	// Rate snapshot at settlement time, so the ledger stays auditable when
	// the user's parameters change later.
	CommissionRate      decimal.Decimal `json:"commissionRate"`
	BonusCommissionRate decimal.Decimal `json:"bonusCommissionRate"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // approving finance/manager user
}
