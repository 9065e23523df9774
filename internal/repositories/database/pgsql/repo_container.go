package pgsql

import (
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository against one pool.
// The lead repository takes the user repository so the approval transaction
// can credit the assignee's accumulator in the same unit of work.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	userRepo := NewPgxUserRepository(pool)
	return &portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		LeadRepo:          NewPgxLeadRepository(pool, userRepo),
		CategoryLimitRepo: NewPgxCategoryLimitRepository(pool),
	}
}
