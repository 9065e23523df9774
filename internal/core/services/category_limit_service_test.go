package services_test

import (
	"context"
	"testing"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/core/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryLimitServiceTestSuite struct {
	suite.Suite
	mockLimitRepo *MockCategoryLimitRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.CategoryLimitSvcFacade
	ctx           context.Context
}

func (s *CategoryLimitServiceTestSuite) SetupTest() {
	s.mockLimitRepo = new(MockCategoryLimitRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewCategoryLimitService(s.mockLimitRepo, s.mockUserRepo)
	s.ctx = context.Background()
}

func TestCategoryLimitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryLimitServiceTestSuite))
}

func (s *CategoryLimitServiceTestSuite) manager() *domain.User {
	return &domain.User{UserID: testManagerUserID, Role: domain.RoleManager, IsActive: true}
}

func (s *CategoryLimitServiceTestSuite) salesUser() *domain.User {
	return &domain.User{UserID: testSalesUserID, Role: domain.RoleSales, IsActive: true}
}

func (s *CategoryLimitServiceTestSuite) TestGetLimits_DefaultFillsEveryCategory() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()
	s.mockLimitRepo.On("FindLimitsByUserID", s.ctx, testSalesUserID).Return([]domain.CategoryLimit{
		{UserID: testSalesUserID, Category: domain.CategoryLocalNew, Limit: 5},
	}, nil).Once()

	limits, err := s.service.GetLimits(s.ctx, testSalesUserID)

	s.Require().NoError(err)
	s.Len(limits, len(domain.AllLeadCategories))
	s.Equal(5, limits[domain.CategoryLocalNew])
	s.Equal(0, limits[domain.CategoryLocalUsed])
	s.Equal(0, limits[domain.CategoryPremiumExport])
	s.Equal(0, limits[domain.CategoryRegularExport])
	s.Equal(0, limits[domain.CategoryCommercialExport])
}

func (s *CategoryLimitServiceTestSuite) TestSetLimits_ManagerOnly() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()

	limit := 3
	_, err := s.service.SetLimits(s.ctx, testSalesUserID, testSalesUserID, dto.SetCategoryLimitsRequest{
		Limits: map[string]*int{string(domain.CategoryLocalNew): &limit},
	})

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockLimitRepo.AssertNotCalled(s.T(), "UpsertLimits", mock.Anything, mock.Anything)
}

func (s *CategoryLimitServiceTestSuite) TestSetLimits_UnknownCategoryRejected() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(s.manager(), nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()

	limit := 3
	_, err := s.service.SetLimits(s.ctx, testManagerUserID, testSalesUserID, dto.SetCategoryLimitsRequest{
		Limits: map[string]*int{"VINTAGE_IMPORT": &limit},
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockLimitRepo.AssertNotCalled(s.T(), "UpsertLimits", mock.Anything, mock.Anything)
}

func (s *CategoryLimitServiceTestSuite) TestSetLimits_PartialMapSkipsNilValues() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(s.manager(), nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()

	s.mockLimitRepo.On("UpsertLimits", s.ctx, mock.MatchedBy(func(limits []domain.CategoryLimit) bool {
		return len(limits) == 1 &&
			limits[0].Category == domain.CategoryPremiumExport &&
			limits[0].Limit == 7
	})).Return(nil).Once()
	s.mockLimitRepo.On("FindLimitsByUserID", s.ctx, testSalesUserID).Return([]domain.CategoryLimit{
		{UserID: testSalesUserID, Category: domain.CategoryPremiumExport, Limit: 7},
	}, nil).Once()

	limit := 7
	limits, err := s.service.SetLimits(s.ctx, testManagerUserID, testSalesUserID, dto.SetCategoryLimitsRequest{
		Limits: map[string]*int{
			string(domain.CategoryPremiumExport): &limit,
			string(domain.CategoryLocalUsed):     nil,
		},
	})

	s.Require().NoError(err)
	s.Equal(7, limits[domain.CategoryPremiumExport])
	s.Equal(0, limits[domain.CategoryLocalUsed])
	s.mockLimitRepo.AssertExpectations(s.T())
}

func (s *CategoryLimitServiceTestSuite) TestListUsersWithLimits_ManagerOnly() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(s.salesUser(), nil).Once()

	_, err := s.service.ListUsersWithLimits(s.ctx, testSalesUserID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
}

func (s *CategoryLimitServiceTestSuite) TestListUsersWithLimits_FillsUsersWithoutRows() {
	sales := *s.salesUser()
	manager := *s.manager()

	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(&manager, nil).Once()
	s.mockUserRepo.On("FindActiveSalesAndManagers", s.ctx).Return([]domain.User{manager, sales}, nil).Once()
	s.mockLimitRepo.On("FindLimitsByUserIDs", s.ctx, []string{testManagerUserID, testSalesUserID}).
		Return(map[string][]domain.CategoryLimit{
			testManagerUserID: nil,
			testSalesUserID: {
				{UserID: testSalesUserID, Category: domain.CategoryLocalUsed, Limit: 2},
			},
		}, nil).Once()

	rows, err := s.service.ListUsersWithLimits(s.ctx, testManagerUserID)

	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Len(rows[0].Limits, len(domain.AllLeadCategories))
	s.Equal(0, rows[0].Limits[domain.CategoryLocalUsed])
	s.Equal(2, rows[1].Limits[domain.CategoryLocalUsed])
}
