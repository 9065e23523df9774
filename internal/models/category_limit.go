package models

// CategoryLimit represents a row in the category_limits table.
// One row per (user, category) combination; absence means a limit of 0.
type CategoryLimit struct {
	UserID   string `db:"user_id"`
	Category string `db:"category"`
	Limit    int    `db:"limit_count"`
	AuditFields
}
