package dto

import "github.com/dealerhq/dealer_crm_app/internal/core/domain"

// SetCategoryLimitsRequest upserts advisory limits. Keys are category names;
// nil values are skipped so callers can send partial maps.
type SetCategoryLimitsRequest struct {
	Limits map[string]*int `json:"limits" binding:"required"`
}

// CategoryLimitsResponse returns a user's limit for every category,
// default-filled with 0.
type CategoryLimitsResponse struct {
	UserID string         `json:"userID"`
	Limits map[string]int `json:"limits"`
}

// UserWithLimitsResponse is one row of the manager's quota overview.
type UserWithLimitsResponse struct {
	User   UserResponse   `json:"user"`
	Limits map[string]int `json:"limits"`
}

// ToCategoryLimitsResponse converts a filled domain limit map.
func ToCategoryLimitsResponse(userID string, limits map[domain.LeadCategory]int) CategoryLimitsResponse {
	return CategoryLimitsResponse{
		UserID: userID,
		Limits: toLimitMap(limits),
	}
}

// ToUserWithLimitsResponses converts the quota overview rows.
func ToUserWithLimitsResponses(rows []domain.UserWithLimits) []UserWithLimitsResponse {
	out := make([]UserWithLimitsResponse, len(rows))
	for i, row := range rows {
		user := row.User
		out[i] = UserWithLimitsResponse{
			User:   ToUserResponse(&user),
			Limits: toLimitMap(row.Limits),
		}
	}
	return out
}

func toLimitMap(limits map[domain.LeadCategory]int) map[string]int {
	out := make(map[string]int, len(limits))
	for cat, limit := range limits {
		out[string(cat)] = limit
	}
	return out
}
