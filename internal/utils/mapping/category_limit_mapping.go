package mapping

import (
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/dealerhq/dealer_crm_app/internal/models"
)

// ToDomainCategoryLimit converts a category limit row to the domain representation.
func ToDomainCategoryLimit(m models.CategoryLimit) domain.CategoryLimit {
	return domain.CategoryLimit{
		UserID:      m.UserID,
		Category:    domain.LeadCategory(m.Category),
		Limit:       m.Limit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategoryLimitSlice converts a slice of category limit rows.
func ToDomainCategoryLimitSlice(ms []models.CategoryLimit) []domain.CategoryLimit {
	ds := make([]domain.CategoryLimit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategoryLimit(m)
	}
	return ds
}

// ToModelCommissionEntry converts a domain ledger entry to its row representation.
func ToModelCommissionEntry(d domain.CommissionEntry) models.CommissionEntry {
	return models.CommissionEntry{
		EntryID:             d.EntryID,
		LeadID:              d.LeadID,
		UserID:              d.UserID,
		Amount:              d.Amount,
		CommissionRate:      d.CommissionRate,
		BonusCommissionRate: d.BonusCommissionRate,
		CreatedAt:           d.CreatedAt,
		CreatedBy:           d.CreatedBy,
	}
}
