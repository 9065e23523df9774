package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/utils/commission"
	"github.com/shopspring/decimal"
)

var oneHundredPct = decimal.NewFromInt(100)

type performanceService struct {
	BaseService
	leadReader portsrepo.ConvertedLeadReader
	userRepo   portsrepo.UserRepository
}

var _ portssvc.PerformanceSvcFacade = (*performanceService)(nil)

// NewPerformanceService creates a new performance service instance.
func NewPerformanceService(leadReader portsrepo.ConvertedLeadReader, userRepo portsrepo.UserRepository) portssvc.PerformanceSvcFacade {
	return &performanceService{leadReader: leadReader, userRepo: userRepo}
}

// GetPerformance recomputes the user's quota progress and projected commission
// from every converted lead assigned to them. Converted is the only thing that
// counts: the finance decision and paid flag are ignored here, which is why
// the projection can disagree with the settled ledger.
func (s *performanceService) GetPerformance(ctx context.Context, userID string) (*domain.PerformanceReport, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with ID %s not found", userID))
		}
		s.LogError(ctx, err, "Failed to find user", "user_id", userID)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	leads, err := s.leadReader.FindConvertedLeadsByAssignee(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load converted leads", "user_id", userID)
		return nil, fmt.Errorf("failed to load converted leads: %w", err)
	}

	totalSales := decimal.Zero
	margins := make([]decimal.Decimal, 0, len(leads))
	for _, lead := range leads {
		if lead.SellingPrice != nil {
			totalSales = totalSales.Add(*lead.SellingPrice)
		}
		// Negative margins are not clamped; a below-tier margin simply
		// contributes nothing through TierRate.
		if margin, ok := lead.Profit(); ok {
			margins = append(margins, margin)
		}
	}

	base := commission.TieredBase(margins, totalSales).Round(2)
	bonus := commission.VolumeBonus(totalSales)

	target := user.ResolvedTarget()
	remaining := target.Sub(totalSales)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	progress := decimal.Zero
	if target.IsPositive() {
		progress = totalSales.Div(target).Mul(oneHundredPct).Round(2)
		if progress.GreaterThan(oneHundredPct) {
			progress = oneHundredPct
		}
	}

	return &domain.PerformanceReport{
		Target:          target,
		Achieved:        totalSales,
		Remaining:       remaining,
		ProgressPct:     progress,
		BaseCommission:  base,
		BonusCommission: bonus,
		TotalCommission: base.Add(bonus).Round(2),
		DealsCount:      len(leads),
		DealsValue:      totalSales,
	}, nil
}
