package mapping

import (
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	"github.com/dealerhq/dealer_crm_app/internal/models"
)

// ToModelLead converts a domain lead to its row representation, folding the
// tri-state approval enum back into the nullable finance_approved column.
func ToModelLead(d domain.Lead) models.Lead {
	m := models.Lead{
		LeadID:             d.LeadID,
		CustomerName:       d.CustomerName,
		Status:             string(d.Status),
		Priority:           string(d.Priority),
		SellingPrice:       d.SellingPrice,
		CostPrice:          d.CostPrice,
		Quantity:           d.Quantity,
		AssignedTo:         d.AssignedTo,
		NotConvertedReason: d.NotConvertedReason,
		ApprovedBy:         d.ApprovedBy,
		ApprovedAt:         d.ApprovedAt,
		RejectionReason:    d.RejectionReason,
		CommissionPaid:     d.CommissionPaid,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
	if d.CustomerPhone != "" {
		phone := d.CustomerPhone
		m.CustomerPhone = &phone
	}
	if d.Category != "" {
		cat := string(d.Category)
		m.Category = &cat
	}
	switch d.Approval {
	case domain.ApprovalApproved:
		approved := true
		m.FinanceApproved = &approved
	case domain.ApprovalRejected:
		rejected := false
		m.FinanceApproved = &rejected
	}
	return m
}

// ToDomainLead converts a lead row to the domain representation.
func ToDomainLead(m models.Lead) domain.Lead {
	d := domain.Lead{
		LeadID:             m.LeadID,
		CustomerName:       m.CustomerName,
		Status:             domain.LeadStatus(m.Status),
		Priority:           domain.LeadPriority(m.Priority),
		SellingPrice:       m.SellingPrice,
		CostPrice:          m.CostPrice,
		Quantity:           m.Quantity,
		AssignedTo:         m.AssignedTo,
		NotConvertedReason: m.NotConvertedReason,
		Approval:           domain.ApprovalPending,
		ApprovedBy:         m.ApprovedBy,
		ApprovedAt:         m.ApprovedAt,
		RejectionReason:    m.RejectionReason,
		CommissionPaid:     m.CommissionPaid,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
	if m.CustomerPhone != nil {
		d.CustomerPhone = *m.CustomerPhone
	}
	if m.Category != nil {
		d.Category = domain.LeadCategory(*m.Category)
	}
	if m.FinanceApproved != nil {
		if *m.FinanceApproved {
			d.Approval = domain.ApprovalApproved
		} else {
			d.Approval = domain.ApprovalRejected
		}
	}
	return d
}

// ToDomainLeadSlice converts a slice of lead rows to domain leads.
func ToDomainLeadSlice(ms []models.Lead) []domain.Lead {
	ds := make([]domain.Lead, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLead(m)
	}
	return ds
}
