package services_test

import (
	"context"
	"testing"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testFinanceUserID = "finance-user-1"
	testManagerUserID = "manager-user-1"
	testSalesUserID   = "sales-user-1"
	testLeadID        = "lead-1"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockLeadRepo *MockLeadRepository
	mockUserRepo *MockUserRepository
	service      portssvc.ApprovalSvcFacade
	ctx          context.Context
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.mockLeadRepo = new(MockLeadRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewApprovalService(s.mockLeadRepo, s.mockUserRepo)
	s.ctx = context.Background()
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}

func (s *ApprovalServiceTestSuite) financeActor() *domain.User {
	return &domain.User{UserID: testFinanceUserID, Role: domain.RoleFinance, IsActive: true}
}

func (s *ApprovalServiceTestSuite) salesAssignee(rate, bonusRate string) *domain.User {
	return &domain.User{
		UserID:              testSalesUserID,
		Role:                domain.RoleSales,
		IsActive:            true,
		CommissionRate:      decimal.RequireFromString(rate),
		BonusCommissionRate: decimal.RequireFromString(bonusRate),
	}
}

func (s *ApprovalServiceTestSuite) convertedLead(assignedTo *string) *domain.Lead {
	selling := decimal.NewFromInt(53000)
	cost := decimal.NewFromInt(33000)
	return &domain.Lead{
		LeadID:       testLeadID,
		CustomerName: "Ayşe Kaya",
		Status:       domain.StatusConverted,
		Category:     domain.CategoryLocalNew,
		Priority:     domain.PriorityMedium,
		SellingPrice: &selling,
		CostPrice:    &cost,
		Quantity:     1,
		AssignedTo:   assignedTo,
		Approval:     domain.ApprovalPending,
		IsActive:     true,
	}
}

func (s *ApprovalServiceTestSuite) TestApprove_CreditsSalesAssignee() {
	assigneeID := testSalesUserID
	lead := s.convertedLead(&assigneeID)

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesAssignee("5", "2"), nil).Once()

	// profit 20000, rate 5% + bonus 2% -> 1400
	s.mockLeadRepo.On("ApproveLead", s.ctx, mock.MatchedBy(func(l domain.Lead) bool {
		return l.Approval == domain.ApprovalApproved && l.ApprovedBy != nil && *l.ApprovedBy == testFinanceUserID
	}), mock.MatchedBy(func(credit *domain.CommissionEntry) bool {
		return credit != nil &&
			credit.UserID == testSalesUserID &&
			credit.LeadID == testLeadID &&
			credit.Amount.Equal(decimal.NewFromInt(1400))
	})).Return(nil).Once()

	result, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().NoError(err)
	s.Equal(domain.ApprovalApproved, result.Approval)
	s.NotNil(result.ApprovedAt)
	s.mockLeadRepo.AssertExpectations(s.T())
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApprove_UnassignedLeadApprovedWithoutCredit() {
	lead := s.convertedLead(nil)

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockLeadRepo.On("ApproveLead", s.ctx, mock.AnythingOfType("domain.Lead"), (*domain.CommissionEntry)(nil)).Return(nil).Once()

	result, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().NoError(err)
	s.Equal(domain.ApprovalApproved, result.Approval)
	s.mockLeadRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApprove_NonSalesAssigneeApprovedWithoutCredit() {
	assigneeID := testManagerUserID
	lead := s.convertedLead(&assigneeID)
	manager := &domain.User{UserID: testManagerUserID, Role: domain.RoleManager, IsActive: true}

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(manager, nil).Once()
	s.mockLeadRepo.On("ApproveLead", s.ctx, mock.AnythingOfType("domain.Lead"), (*domain.CommissionEntry)(nil)).Return(nil).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().NoError(err)
	s.mockLeadRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApprove_MissingAssigneeApprovedWithoutCredit() {
	assigneeID := "gone-user"
	lead := s.convertedLead(&assigneeID)

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, "gone-user").Return(nil, apperrors.ErrNotFound).Once()
	s.mockLeadRepo.On("ApproveLead", s.ctx, mock.AnythingOfType("domain.Lead"), (*domain.CommissionEntry)(nil)).Return(nil).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().NoError(err)
	s.mockLeadRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestApprove_SalesActorForbidden() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesAssignee("5", "0"), nil).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testSalesUserID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockLeadRepo.AssertNotCalled(s.T(), "FindLeadByID", mock.Anything, mock.Anything)
	s.mockLeadRepo.AssertNotCalled(s.T(), "ApproveLead", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApprove_AuthzBeforeExistenceCheck() {
	// An unauthorized caller must not learn whether the lead exists.
	s.mockUserRepo.On("FindUserByID", s.ctx, "unknown-actor").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Approve(s.ctx, "missing-lead", "unknown-actor")

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockLeadRepo.AssertNotCalled(s.T(), "FindLeadByID", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApprove_NotConvertedLead() {
	lead := s.convertedLead(nil)
	lead.Status = domain.StatusContacted

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().ErrorIs(err, services.ErrLeadNotConverted)
	s.Require().ErrorIs(err, services.ErrNotApprovable)
	s.mockLeadRepo.AssertNotCalled(s.T(), "ApproveLead", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApprove_AlreadyDecidedLead() {
	lead := s.convertedLead(nil)
	lead.Approval = domain.ApprovalRejected

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().ErrorIs(err, services.ErrAlreadyProcessed)
}

func (s *ApprovalServiceTestSuite) TestApprove_MissingDealTerms() {
	lead := s.convertedLead(nil)
	lead.CostPrice = nil

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().ErrorIs(err, services.ErrMissingDealTerms)
	s.mockLeadRepo.AssertNotCalled(s.T(), "ApproveLead", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApprove_LostRaceReportsAlreadyProcessed() {
	lead := s.convertedLead(nil)

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockLeadRepo.On("ApproveLead", s.ctx, mock.AnythingOfType("domain.Lead"), (*domain.CommissionEntry)(nil)).
		Return(apperrors.ErrConflict).Once()

	_, err := s.service.Approve(s.ctx, testLeadID, testFinanceUserID)

	s.Require().ErrorIs(err, services.ErrAlreadyProcessed)
}

func (s *ApprovalServiceTestSuite) TestReject_RecordsReason() {
	lead := s.convertedLead(nil)

	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).
		Return(&domain.User{UserID: testManagerUserID, Role: domain.RoleManager, IsActive: true}, nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockLeadRepo.On("RejectLead", s.ctx, mock.MatchedBy(func(l domain.Lead) bool {
		return l.Approval == domain.ApprovalRejected &&
			l.RejectionReason != nil && *l.RejectionReason == "pricing below cost"
	})).Return(nil).Once()

	result, err := s.service.Reject(s.ctx, testLeadID, testManagerUserID, "  pricing below cost  ")

	s.Require().NoError(err)
	s.Equal(domain.ApprovalRejected, result.Approval)
	s.mockLeadRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestReject_RequiresReason() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()

	_, err := s.service.Reject(s.ctx, testLeadID, testFinanceUserID, "   ")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockLeadRepo.AssertNotCalled(s.T(), "RejectLead", mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestMarkCommissionPaid_Succeeds() {
	lead := s.convertedLead(nil)
	lead.Approval = domain.ApprovalApproved

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()
	s.mockLeadRepo.On("MarkCommissionPaid", s.ctx, testLeadID, testFinanceUserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	result, err := s.service.MarkCommissionPaid(s.ctx, testLeadID, testFinanceUserID)

	s.Require().NoError(err)
	s.True(result.CommissionPaid)
	s.mockLeadRepo.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) TestMarkCommissionPaid_RejectedLead() {
	lead := s.convertedLead(nil)
	lead.Approval = domain.ApprovalRejected

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()

	_, err := s.service.MarkCommissionPaid(s.ctx, testLeadID, testFinanceUserID)

	s.Require().ErrorIs(err, services.ErrInvalidCommissionState)
	s.mockLeadRepo.AssertNotCalled(s.T(), "MarkCommissionPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestMarkCommissionPaid_AlreadyPaid() {
	lead := s.convertedLead(nil)
	lead.Approval = domain.ApprovalApproved
	lead.CommissionPaid = true

	s.mockUserRepo.On("FindUserByID", s.ctx, testFinanceUserID).Return(s.financeActor(), nil).Once()
	s.mockLeadRepo.On("FindLeadByID", s.ctx, testLeadID).Return(lead, nil).Once()

	_, err := s.service.MarkCommissionPaid(s.ctx, testLeadID, testFinanceUserID)

	s.Require().ErrorIs(err, services.ErrInvalidCommissionState)
}
