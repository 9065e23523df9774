package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dealerhq/dealer_crm_app/internal/apperrors"
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	"github.com/dealerhq/dealer_crm_app/internal/models"
	"github.com/dealerhq/dealer_crm_app/internal/utils/mapping"
	"github.com/dealerhq/dealer_crm_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadColumns = `lead_id, customer_name, customer_phone, status, category, priority,
	selling_price, cost_price, quantity, assigned_to, not_converted_reason,
	finance_approved, approved_by, approved_at, rejection_reason, commission_paid,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxLeadRepository implements the lead persistence port on PostgreSQL.
// It owns the approval transaction and delegates the accumulator increment to
// the user repository's in-transaction method.
type PgxLeadRepository struct {
	BaseRepository
	userRepo portsrepo.UserRepository
}

var _ portsrepo.LeadRepository = (*PgxLeadRepository)(nil)

// NewPgxLeadRepository creates a new lead repository instance.
func NewPgxLeadRepository(pool *pgxpool.Pool, userRepo portsrepo.UserRepository) *PgxLeadRepository {
	return &PgxLeadRepository{BaseRepository: NewBaseRepository(pool), userRepo: userRepo}
}

// SaveLead inserts a new lead row.
func (r *PgxLeadRepository) SaveLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)

	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.Pool.Exec(ctx, query,
		m.LeadID, m.CustomerName, m.CustomerPhone, m.Status, m.Category, m.Priority,
		m.SellingPrice, m.CostPrice, m.Quantity, m.AssignedTo, m.NotConvertedReason,
		m.FinanceApproved, m.ApprovedBy, m.ApprovedAt, m.RejectionReason, m.CommissionPaid,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// FindLeadByID fetches a single lead row.
func (r *PgxLeadRepository) FindLeadByID(ctx context.Context, leadID string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE lead_id = $1`

	m, err := scanLead(r.Pool.QueryRow(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query lead: %w", err)
	}

	d := mapping.ToDomainLead(m)
	return &d, nil
}

// UpdateLead writes the lifecycle and commerce columns. The approval columns
// are deliberately absent from the SET list; only the gate methods touch them.
func (r *PgxLeadRepository) UpdateLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)

	query := `
		UPDATE leads SET
			customer_name = $2, customer_phone = $3, status = $4, category = $5,
			priority = $6, selling_price = $7, cost_price = $8, quantity = $9,
			assigned_to = $10, not_converted_reason = $11, is_active = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE lead_id = $1`

	tag, err := r.Pool.Exec(ctx, query,
		m.LeadID, m.CustomerName, m.CustomerPhone, m.Status, m.Category,
		m.Priority, m.SellingPrice, m.CostPrice, m.Quantity,
		m.AssignedTo, m.NotConvertedReason, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListLeads returns a page of active leads newest-first, with a cursor token
// for the next page. Fetches limit+1 rows to detect whether a next page exists.
func (r *PgxLeadRepository) ListLeads(ctx context.Context, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE is_active = TRUE`
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		cursorTime, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (created_at, lead_id) < ($1, $2)`
		args = append(args, cursorTime, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, lead_id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var ms []models.Lead
	for rows.Next() {
		m, err := scanLead(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate lead rows: %w", err)
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.LeadID)
		token = &t
	}

	return mapping.ToDomainLeadSlice(ms), token, nil
}

// FindConvertedLeadsByAssignee returns every converted lead assigned to the
// user, regardless of finance approval state or the is_active flag. A hidden
// lead is still a closed deal; deactivation must not shrink the assignee's
// totals.
func (r *PgxLeadRepository) FindConvertedLeadsByAssignee(ctx context.Context, userID string) ([]domain.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE status = $1 AND assigned_to = $2
		ORDER BY created_at DESC, lead_id DESC`

	rows, err := r.Pool.Query(ctx, query, string(domain.StatusConverted), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query converted leads: %w", err)
	}
	defer rows.Close()

	var ms []models.Lead
	for rows.Next() {
		m, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lead rows: %w", err)
	}

	return mapping.ToDomainLeadSlice(ms), nil
}

// ApproveLead records the approval, the assignee's accumulator increment and
// the ledger entry in one transaction. The approval UPDATE is conditional on
// the lead still being converted and undecided; when a concurrent caller got
// there first, zero rows match, nothing is written and ErrConflict is
// returned.
func (r *PgxLeadRepository) ApproveLead(ctx context.Context, lead domain.Lead, credit *domain.CommissionEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin approval transaction: %w", err)
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelLead(lead)

	query := `
		UPDATE leads SET
			finance_approved = TRUE, approved_by = $2, approved_at = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE lead_id = $1 AND status = $6 AND finance_approved IS NULL`

	tag, err := tx.Exec(ctx, query,
		m.LeadID, m.ApprovedBy, m.ApprovedAt,
		m.LastUpdatedAt, m.LastUpdatedBy,
		string(domain.StatusConverted),
	)
	if err != nil {
		return fmt.Errorf("failed to record approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if credit != nil {
		if err := r.userRepo.CreditCommissionInTx(ctx, tx, credit.UserID, credit.Amount, credit.CreatedBy, credit.CreatedAt); err != nil {
			return fmt.Errorf("failed to credit commission: %w", err)
		}
		if err := insertCommissionEntry(ctx, tx, *credit); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit approval transaction: %w", err)
	}
	return nil
}

// RejectLead records the rejection under the same conditional guard as
// ApproveLead.
func (r *PgxLeadRepository) RejectLead(ctx context.Context, lead domain.Lead) error {
	m := mapping.ToModelLead(lead)

	query := `
		UPDATE leads SET
			finance_approved = FALSE, rejection_reason = $2,
			last_updated_at = $3, last_updated_by = $4
		WHERE lead_id = $1 AND status = $5 AND finance_approved IS NULL`

	tag, err := r.Pool.Exec(ctx, query,
		m.LeadID, m.RejectionReason,
		m.LastUpdatedAt, m.LastUpdatedBy,
		string(domain.StatusConverted),
	)
	if err != nil {
		return fmt.Errorf("failed to record rejection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// MarkCommissionPaid flips the paid flag, conditional on the lead being
// approved and still unpaid.
func (r *PgxLeadRepository) MarkCommissionPaid(ctx context.Context, leadID string, updatedBy string, at time.Time) error {
	query := `
		UPDATE leads SET
			commission_paid = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE lead_id = $1 AND finance_approved = TRUE AND commission_paid = FALSE`

	tag, err := r.Pool.Exec(ctx, query, leadID, at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark commission paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

func insertCommissionEntry(ctx context.Context, tx pgx.Tx, entry domain.CommissionEntry) error {
	m := mapping.ToModelCommissionEntry(entry)

	query := `
		INSERT INTO commission_entries (
			entry_id, lead_id, user_id, amount, commission_rate,
			bonus_commission_rate, created_at, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		m.EntryID, m.LeadID, m.UserID, m.Amount, m.CommissionRate,
		m.BonusCommissionRate, m.CreatedAt, m.CreatedBy,
	)
	return err
}

func scanLead(row pgx.Row) (models.Lead, error) {
	var m models.Lead
	err := row.Scan(
		&m.LeadID, &m.CustomerName, &m.CustomerPhone, &m.Status, &m.Category, &m.Priority,
		&m.SellingPrice, &m.CostPrice, &m.Quantity, &m.AssignedTo, &m.NotConvertedReason,
		&m.FinanceApproved, &m.ApprovedBy, &m.ApprovedAt, &m.RejectionReason, &m.CommissionPaid,
		&m.IsActive, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}
