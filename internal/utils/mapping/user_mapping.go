package mapping

import (
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/dealerhq/dealer_crm_app/internal/models"
)

// ToModelUser converts a domain user to its row representation.
// The password hash lives only on the model and is set by the repository.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:              d.UserID,
		Username:            d.Username,
		Name:                d.Name,
		Role:                string(d.Role),
		CommissionRate:      d.CommissionRate,
		BonusCommissionRate: d.BonusCommissionRate,
		CommissionEarned:    d.CommissionEarned,
		TargetAmount:        d.TargetAmount,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
		DeletedAt:           d.DeletedAt,
	}
}

// ToDomainUser converts a user row to the domain representation.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:              m.UserID,
		Username:            m.Username,
		Name:                m.Name,
		Role:                domain.UserRole(m.Role),
		CommissionRate:      m.CommissionRate,
		BonusCommissionRate: m.BonusCommissionRate,
		CommissionEarned:    m.CommissionEarned,
		TargetAmount:        m.TargetAmount,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		DeletedAt:           m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of user rows to domain users.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
