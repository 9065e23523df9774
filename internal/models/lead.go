package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lead represents a row in the leads table.
// The finance decision is stored as a nullable boolean: NULL = pending,
// true = approved, false = rejected. The mapping layer converts it to the
// domain's three-variant enum; nothing else reads the raw column.
type Lead struct {
	LeadID             string           `db:"lead_id"`
	CustomerName       string           `db:"customer_name"`
	CustomerPhone      *string          `db:"customer_phone"`
	Status             string           `db:"status"`
	Category           *string          `db:"category"`
	Priority           string           `db:"priority"`
	SellingPrice       *decimal.Decimal `db:"selling_price"`
	CostPrice          *decimal.Decimal `db:"cost_price"`
	Quantity           int              `db:"quantity"`
	AssignedTo         *string          `db:"assigned_to"`
	NotConvertedReason *string          `db:"not_converted_reason"`
	FinanceApproved    *bool            `db:"finance_approved"`
	ApprovedBy         *string          `db:"approved_by"`
	ApprovedAt         *time.Time       `db:"approved_at"`
	RejectionReason    *string          `db:"rejection_reason"`
	CommissionPaid     bool             `db:"commission_paid"`
	IsActive           bool             `db:"is_active"`
	AuditFields
}
