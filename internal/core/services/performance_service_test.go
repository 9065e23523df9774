package services_test

import (
	"context"
	"testing"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PerformanceServiceTestSuite struct {
	suite.Suite
	mockLeadRepo *MockLeadRepository
	mockUserRepo *MockUserRepository
	service      portssvc.PerformanceSvcFacade
	ctx          context.Context
}

func (s *PerformanceServiceTestSuite) SetupTest() {
	s.mockLeadRepo = new(MockLeadRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewPerformanceService(s.mockLeadRepo, s.mockUserRepo)
	s.ctx = context.Background()
}

func TestPerformanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PerformanceServiceTestSuite))
}

func (s *PerformanceServiceTestSuite) salesUser() *domain.User {
	return &domain.User{UserID: testSalesUserID, Role: domain.RoleSales, IsActive: true}
}

func convertedLeadWithPrices(id string, selling, cost int64) domain.Lead {
	sp := decimal.NewFromInt(selling)
	cp := decimal.NewFromInt(cost)
	assignee := testSalesUserID
	return domain.Lead{
		LeadID:       id,
		Status:       domain.StatusConverted,
		SellingPrice: &sp,
		CostPrice:    &cp,
		Quantity:     1,
		AssignedTo:   &assignee,
		IsActive:     true,
	}
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_TieredBaseWithinGate() {
	// Margins 2500 (3%), 5000 (7%), 8000 (10%); total sales 25500 keeps tiers active.
	leads := []domain.Lead{
		convertedLeadWithPrices("l1", 5000, 2500),
		convertedLeadWithPrices("l2", 9000, 4000),
		convertedLeadWithPrices("l3", 11500, 3500),
	}

	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()
	s.mockLeadRepo.On("FindConvertedLeadsByAssignee", s.ctx, testSalesUserID).Return(leads, nil).Once()

	report, err := s.service.GetPerformance(s.ctx, testSalesUserID)

	s.Require().NoError(err)
	// 2500*0.03 + 5000*0.07 + 8000*0.10 = 75 + 350 + 800 = 1225
	s.Equal("1225", report.BaseCommission.String())
	s.Equal("0", report.BonusCommission.String())
	s.Equal("1225", report.TotalCommission.String())
	s.Equal(3, report.DealsCount)
	s.Equal("25500", report.Achieved.String())
	// Default sales target 50000 -> 51% progress
	s.Equal("50000", report.Target.String())
	s.Equal("51", report.ProgressPct.String())
	s.Equal("24500", report.Remaining.String())
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_GateReplacesTiersWithBonus() {
	// One deal: 40000 selling, 33000 cost. Total sales 40000 exceeds the
	// 35000 gate, so the 7000 margin earns nothing through the tiers; only
	// the 500 volume bonus applies.
	leads := []domain.Lead{convertedLeadWithPrices("l1", 40000, 33000)}

	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()
	s.mockLeadRepo.On("FindConvertedLeadsByAssignee", s.ctx, testSalesUserID).Return(leads, nil).Once()

	report, err := s.service.GetPerformance(s.ctx, testSalesUserID)

	s.Require().NoError(err)
	s.Equal("0", report.BaseCommission.String())
	s.Equal("500", report.BonusCommission.String())
	s.Equal("500", report.TotalCommission.String())
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_DeactivatedLeadsStillCount() {
	// Deactivation hides a lead from listings; the deal still happened, so
	// the projection keeps counting it.
	hidden := convertedLeadWithPrices("l1", 40000, 33000)
	hidden.IsActive = false
	leads := []domain.Lead{hidden}

	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()
	s.mockLeadRepo.On("FindConvertedLeadsByAssignee", s.ctx, testSalesUserID).Return(leads, nil).Once()

	report, err := s.service.GetPerformance(s.ctx, testSalesUserID)

	s.Require().NoError(err)
	s.Equal(1, report.DealsCount)
	s.Equal("40000", report.Achieved.String())
	s.Equal("500", report.BonusCommission.String())
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_UpperVolumeBonus() {
	leads := []domain.Lead{
		convertedLeadWithPrices("l1", 30000, 25000),
		convertedLeadWithPrices("l2", 25000, 20000),
	}

	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()
	s.mockLeadRepo.On("FindConvertedLeadsByAssignee", s.ctx, testSalesUserID).Return(leads, nil).Once()

	report, err := s.service.GetPerformance(s.ctx, testSalesUserID)

	s.Require().NoError(err)
	s.Equal("1000", report.BonusCommission.String())
	// Over the 50000 default target: progress capped, nothing remaining.
	s.Equal("100", report.ProgressPct.String())
	s.Equal("0", report.Remaining.String())
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_ManagerTargetDefault() {
	manager := &domain.User{UserID: testManagerUserID, Role: domain.RoleManager, IsActive: true}

	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(manager, nil).Once()
	s.mockLeadRepo.On("FindConvertedLeadsByAssignee", s.ctx, testManagerUserID).Return([]domain.Lead{}, nil).Once()

	report, err := s.service.GetPerformance(s.ctx, testManagerUserID)

	s.Require().NoError(err)
	s.Equal("70000", report.Target.String())
	s.Equal(0, report.DealsCount)
	s.Equal("0", report.ProgressPct.String())
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_ExplicitTargetWins() {
	target := decimal.NewFromInt(30000)
	user := &domain.User{UserID: testSalesUserID, Role: domain.RoleSales, IsActive: true, TargetAmount: &target}
	leads := []domain.Lead{convertedLeadWithPrices("l1", 15000, 12000)}

	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(user, nil).Once()
	s.mockLeadRepo.On("FindConvertedLeadsByAssignee", s.ctx, testSalesUserID).Return(leads, nil).Once()

	report, err := s.service.GetPerformance(s.ctx, testSalesUserID)

	s.Require().NoError(err)
	s.Equal("30000", report.Target.String())
	s.Equal("50", report.ProgressPct.String())
}

func (s *PerformanceServiceTestSuite) TestGetPerformance_UnknownUser() {
	s.mockUserRepo.On("FindUserByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.GetPerformance(s.ctx, "missing")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}
