package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadStatus defines the lifecycle states of a lead.
type LeadStatus string

const (
	StatusNew          LeadStatus = "NEW"
	StatusContacted    LeadStatus = "CONTACTED"
	StatusConverted    LeadStatus = "CONVERTED"
	StatusNotConverted LeadStatus = "NOT_CONVERTED"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s LeadStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted, StatusNotConverted:
		return true
	}
	return false
}

// LeadCategory classifies the vehicle deal a lead is pursuing.
type LeadCategory string

const (
	CategoryLocalNew         LeadCategory = "LOCAL_NEW"
	CategoryLocalUsed        LeadCategory = "LOCAL_USED"
	CategoryPremiumExport    LeadCategory = "PREMIUM_EXPORT"
	CategoryRegularExport    LeadCategory = "REGULAR_EXPORT"
	CategoryCommercialExport LeadCategory = "COMMERCIAL_EXPORT"
)

// AllLeadCategories lists every category in a stable order. Quota responses
// must contain one entry per category, default-filled.
var AllLeadCategories = []LeadCategory{
	CategoryLocalNew,
	CategoryLocalUsed,
	CategoryPremiumExport,
	CategoryRegularExport,
	CategoryCommercialExport,
}

// IsValid reports whether the category is one of the known categories.
func (c LeadCategory) IsValid() bool {
	for _, known := range AllLeadCategories {
		if c == known {
			return true
		}
	}
	return false
}

// LeadPriority ranks how urgently a lead should be worked.
type LeadPriority string

const (
	PriorityHigh   LeadPriority = "HIGH"
	PriorityMedium LeadPriority = "MEDIUM"
	PriorityLow    LeadPriority = "LOW"
)

// IsValid reports whether the priority is one of the known priorities.
func (p LeadPriority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ApprovalStatus is the tri-state finance decision on a converted lead.
// PENDING means not yet reviewed; APPROVED and REJECTED are immutable once set.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// Lead represents a prospective sale tracked from first contact through
// conversion or loss, and onward through finance review once converted.
type Lead struct {
	LeadID        string       `json:"leadID"` // Primary Key (UUID)
	CustomerName  string       `json:"customerName"`
	CustomerPhone string       `json:"customerPhone,omitempty"`
	Status        LeadStatus   `json:"status"`
	Category      LeadCategory `json:"category,omitempty"` // empty until classified
	Priority      LeadPriority `json:"priority"`

	SellingPrice *decimal.Decimal `json:"sellingPrice,omitempty"`
	CostPrice    *decimal.Decimal `json:"costPrice,omitempty"`
	Quantity     int              `json:"quantity"`

	AssignedTo         *string `json:"assignedTo,omitempty"` // UserID, nil when unassigned
	NotConvertedReason *string `json:"notConvertedReason,omitempty"`

	// Finance lifecycle. Approval may only leave PENDING while the lead is
	// CONVERTED, and never changes again afterwards.
	Approval        ApprovalStatus `json:"financeApproval"`
	ApprovedBy      *string        `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time     `json:"approvedAt,omitempty"`
	RejectionReason *string        `json:"rejectionReason,omitempty"`

	// CommissionPaid is only meaningful when Approval is APPROVED. It is a
	// status flag; the credited amount was fixed at approval time.
	CommissionPaid bool `json:"commissionPaid"`

	IsActive bool `json:"isActive"`
	AuditFields
}

// Profit returns sellingPrice - costPrice, and false when either side is unset.
func (l Lead) Profit() (decimal.Decimal, bool) {
	if l.SellingPrice == nil || l.CostPrice == nil {
		return decimal.Zero, false
	}
	return l.SellingPrice.Sub(*l.CostPrice), true
}

// HasDealTerms reports whether the commercial fields required by the finance
// approval gate are populated.
func (l Lead) HasDealTerms() bool {
	return l.SellingPrice != nil && l.CostPrice != nil && l.Category != ""
}
