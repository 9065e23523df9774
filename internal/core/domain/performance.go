package domain

import "github.com/shopspring/decimal"

// PerformanceReport is the dashboard projection of a salesperson's quota
// progress and estimated commission. It is recomputed from scratch on every
// request over all converted leads and is never persisted; the estimate uses
// the tiered projection policy, which intentionally differs from the flat
// rate applied at settlement.
type PerformanceReport struct {
	Target          decimal.Decimal `json:"target"`
	Achieved        decimal.Decimal `json:"achieved"`
	Remaining       decimal.Decimal `json:"remaining"`
	ProgressPct     decimal.Decimal `json:"progressPct"`
	BaseCommission  decimal.Decimal `json:"baseCommission"`
	BonusCommission decimal.Decimal `json:"bonusCommission"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	DealsCount      int             `json:"dealsCount"`
	DealsValue      decimal.Decimal `json:"dealsValue"`
}
