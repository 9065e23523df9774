package handlers

import (
	"github.com/dealerhq/dealer_crm_app/internal/core/domain"
	portssvc "github.com/dealerhq/dealer_crm_app/internal/core/ports/services"
	"github.com/dealerhq/dealer_crm_app/internal/middleware"
	"github.com/dealerhq/dealer_crm_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
)

// RegisterCustomValidators installs the enum validators used by the request
// binding tags.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("leadstatus", func(fl validator.FieldLevel) bool {
		return domain.LeadStatus(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("leadcategory", func(fl validator.FieldLevel) bool {
		return domain.LeadCategory(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("leadpriority", func(fl validator.FieldLevel) bool {
		return domain.LeadPriority(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("userrole", func(fl validator.FieldLevel) bool {
		return domain.UserRole(fl.Field().String()).IsValid()
	})
}

// RegisterRoutes mounts every handler on the engine. Login sits outside the
// auth middleware behind its own rate limit; everything else lives under
// /api/v1 and requires a bearer token.
func RegisterRoutes(
	engine *gin.Engine,
	cfg *config.AppConfig,
	services *portssvc.ServiceContainer,
	pool *pgxpool.Pool,
	loginLimiter *limiter.Limiter,
) {
	homeHandler := NewHomeHandler(pool)
	authHandler := NewAuthHandler(services.User, services.Token)
	userHandler := NewUserHandler(services.User)
	leadHandler := NewLeadHandler(services.Lead)
	approvalHandler := NewApprovalHandler(services.Approval)
	performanceHandler := NewPerformanceHandler(services.Performance)
	categoryLimitHandler := NewCategoryLimitHandler(services.CategoryLimit)

	engine.GET("/", homeHandler.Home)
	engine.GET("/health", homeHandler.Health)

	auth := engine.Group("/auth")
	auth.POST("/login", middleware.RateLimit(loginLimiter), authHandler.Login)

	api := engine.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		leads := api.Group("/leads")
		{
			leads.POST("", leadHandler.CreateLead)
			leads.GET("", leadHandler.ListLeads)
			leads.GET("/:leadID", leadHandler.GetLead)
			leads.PUT("/:leadID", leadHandler.UpdateLead)
			leads.DELETE("/:leadID", leadHandler.DeactivateLead)
			leads.PATCH("/:leadID/status", leadHandler.TransitionStatus)

			leads.POST("/:leadID/approve", approvalHandler.ApproveLead)
			leads.POST("/:leadID/reject", approvalHandler.RejectLead)
			leads.POST("/:leadID/commission-paid", approvalHandler.MarkCommissionPaid)
		}

		users := api.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/limits", categoryLimitHandler.ListUsersWithLimits)
			users.GET("/:userID", userHandler.GetUser)
			users.PUT("/:userID", userHandler.UpdateUser)
			users.DELETE("/:userID", userHandler.DeleteUser)
			users.GET("/:userID/performance", performanceHandler.GetPerformance)
			users.GET("/:userID/category-limits", categoryLimitHandler.GetLimits)
			users.PUT("/:userID/category-limits", categoryLimitHandler.SetLimits)
		}
	}
}
