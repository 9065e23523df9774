package services_test

import (
	"context"
	"testing"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/core/services"
	"github.com/dealerhq/dealer_crm_app/internal/dto"
	"github.com/dealerhq/dealer_crm_app/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	ctx          context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) managerActor() *domain.User {
	return &domain.User{UserID: testManagerUserID, Role: domain.RoleManager, IsActive: true}
}

func (s *UserServiceTestSuite) TestCreateUser_NormalizesUsername() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(s.managerActor(), nil).Once()
	s.mockUserRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "ali.yilmaz" && u.Role == domain.RoleSales && u.IsActive
	}), mock.AnythingOfType("string")).Return(nil).Once()

	user, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Username:       "  Ali.Yilmaz ",
		Password:       "s3cret-pass",
		Name:           "Ali Yılmaz",
		Role:           string(domain.RoleSales),
		CommissionRate: decimal.NewFromInt(5),
	}, testManagerUserID)

	s.Require().NoError(err)
	s.Equal("ali.yilmaz", user.Username)
	s.NotEmpty(user.UserID)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_NonManagerForbidden() {
	salesActor := &domain.User{UserID: testSalesUserID, Role: domain.RoleSales, IsActive: true}
	s.mockUserRepo.On("FindUserByID", s.ctx, testSalesUserID).Return(salesActor, nil).Once()

	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Username: "newuser", Password: "s3cret-pass", Name: "New", Role: string(domain.RoleSales),
	}, testSalesUserID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.mockUserRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(s.managerActor(), nil).Once()
	s.mockUserRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Username: "taken", Password: "s3cret-pass", Name: "Taken", Role: string(domain.RoleFinance),
	}, testManagerUserID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestAuthenticate_Succeeds() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{UserID: testSalesUserID, Username: "ali", Role: domain.RoleSales, IsActive: true}

	s.mockUserRepo.On("FindUserByUsername", s.ctx, "ali").Return(user, hash, nil).Once()

	got, err := s.service.Authenticate(s.ctx, " Ali ", "correct-horse")

	s.Require().NoError(err)
	s.Equal(testSalesUserID, got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{UserID: testSalesUserID, Username: "ali", Role: domain.RoleSales, IsActive: true}

	s.mockUserRepo.On("FindUserByUsername", s.ctx, "ali").Return(user, hash, nil).Once()

	_, err = s.service.Authenticate(s.ctx, "ali", "wrong")

	s.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestAuthenticate_InactiveUserRejected() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{UserID: testSalesUserID, Username: "ali", Role: domain.RoleSales, IsActive: false}

	s.mockUserRepo.On("FindUserByUsername", s.ctx, "ali").Return(user, hash, nil).Once()

	_, err = s.service.Authenticate(s.ctx, "ali", "correct-horse")

	s.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *UserServiceTestSuite) TestAuthenticate_UnknownUser() {
	s.mockUserRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, "", apperrors.ErrNotFound).Once()

	_, err := s.service.Authenticate(s.ctx, "ghost", "whatever")

	s.Require().ErrorIs(err, services.ErrInvalidCredentials)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestDeleteUser_SelfDeletionBlocked() {
	s.mockUserRepo.On("FindUserByID", s.ctx, testManagerUserID).Return(s.managerActor(), nil).Once()

	err := s.service.DeleteUser(s.ctx, testManagerUserID, testManagerUserID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockUserRepo.AssertNotCalled(s.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
