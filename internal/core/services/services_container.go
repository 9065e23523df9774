package services

import (
	portsrepo "github.com/dealerhq/dealer_crm_app/internal/core/ports/repositories"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(cfg *config.AppConfig, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:          NewUserService(repos.UserRepo),
		Lead:          NewLeadService(repos.LeadRepo, repos.UserRepo),
		Approval:      NewApprovalService(repos.LeadRepo, repos.UserRepo),
		Performance:   NewPerformanceService(repos.LeadRepo, repos.UserRepo),
		CategoryLimit: NewCategoryLimitService(repos.CategoryLimitRepo, repos.UserRepo),
		Token:         NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
	}
}
