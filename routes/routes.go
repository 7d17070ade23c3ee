package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/assetverse/assetverse-backend/config"
	"github.com/assetverse/assetverse-backend/internal/asset"
	"github.com/assetverse/assetverse-backend/internal/assignment"
	"github.com/assetverse/assetverse-backend/internal/auditlog"
	"github.com/assetverse/assetverse-backend/internal/auth"
	"github.com/assetverse/assetverse-backend/internal/notice"
	"github.com/assetverse/assetverse-backend/internal/notification"
	"github.com/assetverse/assetverse-backend/internal/payment"
	"github.com/assetverse/assetverse-backend/internal/reports"
	"github.com/assetverse/assetverse-backend/internal/team"
	"github.com/assetverse/assetverse-backend/middleware"
	"github.com/assetverse/assetverse-backend/utils"
)

// Setup wires repositories, services and handlers onto the router and returns
// the notification service so main can attach the Kafka consumer to it.
func Setup(r *gin.Engine, db *gorm.DB, cfg *config.Config) notification.Service {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for audit trails

	// ========== Audit Log ==========
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth / Users ==========
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	api.POST("/users", authHandler.Register)
	api.GET("/users/:email/role", authHandler.GetRole)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// ========== Assets ==========
	assetRepo := asset.NewRepository(db)
	assetSvc := asset.NewService(assetRepo)
	assetHandler := asset.NewHandler(assetSvc)

	api.GET("/assets", assetHandler.List)
	api.GET("/assets/available", assetHandler.ListAvailable)
	api.GET("/assets/:id", assetHandler.GetByID)

	// ========== Team / Affiliations ==========
	teamRepo := team.NewRepository(db)
	teamSvc := team.NewService(teamRepo, authRepo, auditSvc)
	teamHandler := team.NewHandler(teamSvc)

	api.GET("/company/:companyName/team", teamHandler.ListTeam)

	// ========== Asset Requests ==========
	assignmentRepo := assignment.NewRepository(db)
	assignmentSvc := assignment.NewService(assignmentRepo, assetRepo, authRepo, teamRepo, auditSvc)
	assignmentHandler := assignment.NewHandler(assignmentSvc)

	api.POST("/assigned-assets/request", assignmentHandler.Submit)
	api.GET("/assigned-assets/mine", assignmentHandler.ListMine)

	// ========== Reports / Analytics ==========
	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo, reports.NewExporter(), utils.RedisClient(), auditSvc)
	reportsHandler := reports.NewHandler(reportsSvc)

	api.GET("/hr/analytics", reportsHandler.Analytics)

	// ========== Payments / Packages ==========
	paymentRepo := payment.NewRepository(db)
	paymentSvc := payment.NewService(paymentRepo, authRepo, cfg, auditSvc)
	paymentHandler := payment.NewHandler(paymentSvc)

	api.GET("/packages", paymentHandler.ListPackages)

	// ========== Notices ==========
	noticeRepo := notice.NewRepository(db)
	noticeSvc := notice.NewService(noticeRepo, teamRepo, auditSvc)
	noticeHandler := notice.NewHandler(noticeSvc)

	// ========== Notifications ==========
	notifRepo := notification.NewRepository(db)
	notifSvc := notification.NewService(notifRepo)
	notifHandler := notification.NewHandler(notifSvc)

	// ========== Protected routes ==========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.PATCH("/users/:email/profile", authHandler.UpdateProfile)

		protected.PATCH("/assigned-assets/:id/return", assignmentHandler.Return)

		protected.GET("/notices", noticeHandler.List)
		protected.GET("/notices/:id", noticeHandler.GetByID)
		protected.POST("/notices/:id/read", noticeHandler.MarkAsRead)

		protected.GET("/notifications", notifHandler.List)
		protected.PATCH("/notifications/:id/read", notifHandler.MarkAsRead)
	}

	// ========== HR-only routes ==========
	hr := protected.Group("/")
	hr.Use(middleware.RequireRoles(middleware.RoleHR))
	{
		hr.POST("/assets", assetHandler.Create)
		hr.PATCH("/assets/:id", assetHandler.Update)
		hr.DELETE("/assets/:id", assetHandler.Delete)

		hr.GET("/assigned-assets", assignmentHandler.ListAll)
		hr.PATCH("/assigned-assets/:id/approve", assignmentHandler.Approve)
		hr.PATCH("/assigned-assets/:id/reject", assignmentHandler.Reject)

		hr.DELETE("/company/:companyName/team/:email", teamHandler.RemoveEmployee)

		hr.POST("/notices", noticeHandler.Create)
		hr.PATCH("/notices/:id", noticeHandler.Update)
		hr.DELETE("/notices/:id", noticeHandler.Delete)

		hr.POST("/payments/order", paymentHandler.StartUpgrade)
		hr.POST("/payments/verify", paymentHandler.VerifyAndUpgrade)
		hr.GET("/payments", paymentHandler.History)
		hr.GET("/payments/:id/receipt", paymentHandler.Receipt)

		hr.GET("/audit-logs", auditHandler.List)

		hr.GET("/hr/reports/export", reportsHandler.Export)
	}

	return notifSvc
}
