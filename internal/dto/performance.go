package dto

import (
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PerformanceResponse is the dashboard projection for one salesperson.
// The commission figures here use the tiered projection policy and will not
// match the flat-rate amounts credited at approval time.
type PerformanceResponse struct {
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

// ToPerformanceResponse converts a domain performance report.
func ToPerformanceResponse(r *domain.PerformanceReport) PerformanceResponse {
	return PerformanceResponse{
		Target:          r.Target,
		Achieved:        r.Achieved,
		Remaining:       r.Remaining,
		ProgressPct:     r.ProgressPct,
		BaseCommission:  r.BaseCommission,
		BonusCommission: r.BonusCommission,
		TotalCommission: r.TotalCommission,
		DealsCount:      r.DealsCount,
		DealsValue:      r.DealsValue,
	}
}
