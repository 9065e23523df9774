package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionEntry represents a row in the commission_entries ledger table.
type CommissionEntry struct {
	EntryID             string          `db:"entry_id"`
	LeadID              string          `db:"lead_id"`
	UserID              string          `db:"user_id"`
	Amount              decimal.Decimal `db:"amount"`
	CommissionRate      decimal.Decimal `db:"commission_rate"`
	BonusCommissionRate decimal.Decimal `db:"bonus_commission_rate"`
	CreatedAt           time.Time       `db:"created_at"`
	CreatedBy           string          `db:"created_by"`
}
