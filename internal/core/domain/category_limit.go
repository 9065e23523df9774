package domain

// CategoryLimit is an advisory per-user cap on converted-lead count within a
// vehicle category. Nothing consults it to block lead creation, conversion or
// approval; it is informational for managers.
type CategoryLimit struct {
	UserID   string       `json:"userID"`
	Category LeadCategory `json:"category"`
	Limit    int          `json:"limit"` // 0 when no row is stored
	AuditFields
}

// FillCategoryLimits expands sparse stored rows into a complete map with one
// entry per known category, defaulting absent categories to 0.
func FillCategoryLimits(rows []CategoryLimit) map[LeadCategory]int {
	limits := make(map[LeadCategory]int, len(AllLeadCategories))
	for _, cat := range AllLeadCategories {
		limits[cat] = 0
	}
	for _, row := range rows {
		limits[row.Category] = row.Limit
	}
	return limits
}

// UserWithLimits pairs a user with their default-filled category limit set.
type UserWithLimits struct {
	User   User                 `json:"user"`
	Limits map[LeadCategory]int `json:"limits"`
}
