package commission

import (
	"github.com/shopspring/decimal"
)

var (
	oneHundred = decimal.NewFromInt(100)

	// tierGateThreshold disables all margin tiers once a user's total
	// converted sales exceed it; the volume bonus takes over instead.
	tierGateThreshold = decimal.NewFromInt(35000)

	upperBonusThreshold = decimal.NewFromInt(50000)
	lowerVolumeBonus    = decimal.NewFromInt(500)
	upperVolumeBonus    = decimal.NewFromInt(1000)
)

// Tier is one margin bucket of the projection policy. Upper is nil for the
// open-ended top bucket. Lower is inclusive, Upper exclusive.
type Tier struct {
	Lower decimal.Decimal
	Upper *decimal.Decimal
	Rate  decimal.Decimal
}

// marginTiers is evaluated in order, first match wins. Keeping the bounds in
// one table makes the < vs <= semantics testable in isolation.
var marginTiers = []Tier{
	{Lower: decimal.NewFromInt(2000), Upper: decimalPtr(decimal.NewFromInt(4000)), Rate: decimal.NewFromFloat(0.03)},
	{Lower: decimal.NewFromInt(4000), Upper: decimalPtr(decimal.NewFromInt(7000)), Rate: decimal.NewFromFloat(0.07)},
	{Lower: decimal.NewFromInt(7000), Upper: nil, Rate: decimal.NewFromFloat(0.10)},
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// SettlementAmount computes the settlement-time (flat rate) commission for a
// single approved lead: profit * rate/100, plus profit * bonusRate/100 when a
// bonus rate is configured. This runs exactly once per lead, at approval.
func SettlementAmount(profit, rate, bonusRate decimal.Decimal) decimal.Decimal {
	amount := profit.Mul(rate.Div(oneHundred))
	if bonusRate.GreaterThan(decimal.Zero) {
		amount = amount.Add(profit.Mul(bonusRate.Div(oneHundred)))
	}
	return amount.Round(2)
}

// TierRate returns the projection-policy rate for a single deal margin, or
// zero when the margin falls below every tier.
func TierRate(margin decimal.Decimal) decimal.Decimal {
	for _, tier := range marginTiers {
		if margin.LessThan(tier.Lower) {
			continue
		}
		if tier.Upper != nil && margin.GreaterThanOrEqual(*tier.Upper) {
			continue
		}
		return tier.Rate
	}
	return decimal.Zero
}

// TieredBase computes the projection-time base commission over per-deal
// margins. The tiers only apply while totalSales is within the gate
// threshold; past it the base collapses to zero and only the volume bonus
// remains.
func TieredBase(margins []decimal.Decimal, totalSales decimal.Decimal) decimal.Decimal {
	if totalSales.GreaterThan(tierGateThreshold) {
		return decimal.Zero
	}
	base := decimal.Zero
	for _, margin := range margins {
		base = base.Add(margin.Mul(TierRate(margin)))
	}
	return base
}

// VolumeBonus returns the flat projection bonus for the user's total
// converted sales: 500 within (35000, 50000], 1000 above 50000.
func VolumeBonus(totalSales decimal.Decimal) decimal.Decimal {
	switch {
	case totalSales.GreaterThan(upperBonusThreshold):
		return upperVolumeBonus
	case totalSales.GreaterThan(tierGateThreshold):
		return lowerVolumeBonus
	}
	return decimal.Zero
}
