package services_test

import (
	"context"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLeadRepository is a mock implementation of repositories.LeadRepository.
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, leadID)
	if lead, ok := args.Get(0).(*domain.Lead); ok {
		return lead, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) ListLeads(ctx context.Context, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var leads []domain.Lead
	if l, ok := args.Get(0).([]domain.Lead); ok {
		leads = l
	}
	var token *string
	if t, ok := args.Get(1).(*string); ok {
		token = t
	}
	return leads, token, args.Error(2)
}

func (m *MockLeadRepository) FindConvertedLeadsByAssignee(ctx context.Context, userID string) ([]domain.Lead, error) {
	args := m.Called(ctx, userID)
	if leads, ok := args.Get(0).([]domain.Lead); ok {
		return leads, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) ApproveLead(ctx context.Context, lead domain.Lead, credit *domain.CommissionEntry) error {
	args := m.Called(ctx, lead, credit)
	return args.Error(0)
}

func (m *MockLeadRepository) RejectLead(ctx context.Context, lead domain.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkCommissionPaid(ctx context.Context, leadID string, updatedBy string, at time.Time) error {
	args := m.Called(ctx, leadID, updatedBy, at)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, string, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindActiveSalesAndManagers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedBy string, at time.Time) error {
	args := m.Called(ctx, userID, deletedBy, at)
	return args.Error(0)
}

func (m *MockUserRepository) CreditCommissionInTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tx, userID, amount, updatedBy, at)
	return args.Error(0)
}

// MockCategoryLimitRepository is a mock implementation of repositories.CategoryLimitRepository.
type MockCategoryLimitRepository struct {
	mock.Mock
}

func (m *MockCategoryLimitRepository) FindLimitsByUserID(ctx context.Context, userID string) ([]domain.CategoryLimit, error) {
	args := m.Called(ctx, userID)
	if limits, ok := args.Get(0).([]domain.CategoryLimit); ok {
		return limits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryLimitRepository) FindLimitsByUserIDs(ctx context.Context, userIDs []string) (map[string][]domain.CategoryLimit, error) {
	args := m.Called(ctx, userIDs)
	if limits, ok := args.Get(0).(map[string][]domain.CategoryLimit); ok {
		return limits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryLimitRepository) UpsertLimits(ctx context.Context, limits []domain.CategoryLimit) error {
	args := m.Called(ctx, limits)
	return args.Error(0)
}
