package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "coitrack/docs"
	"coitrack/internal/domain"
	"coitrack/internal/handler"
	"coitrack/internal/middleware"
	"coitrack/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	tenantH *handler.TenantHandler,
	userH *handler.UserHandler,
	propertyH *handler.PropertyHandler,
	vendorH *handler.VendorHandler,
	ruleSetH *handler.RuleSetHandler,
	certH *handler.CertificateHandler,
	extractionH *handler.ExtractionHandler,
	reportH *handler.ReportHandler,
	reminderH *handler.ReminderHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	protected.Use(middleware.TenantGuard())

	// Property routes
	properties := protected.Group("/properties")
	properties.POST("", propertyH.Create)
	properties.GET("", propertyH.List)
	properties.GET("/:id", propertyH.GetByID)
	properties.GET("/:id/vendors", propertyH.ListVendors)
	properties.PUT("/:id", propertyH.Update)
	properties.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), propertyH.Delete)

	// Vendor routes
	vendors := protected.Group("/vendors")
	vendors.POST("", vendorH.Create)
	vendors.GET("", vendorH.List)
	vendors.GET("/:id", vendorH.GetByID)
	vendors.PUT("/:id", vendorH.Update)
	vendors.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), vendorH.Delete)
	vendors.GET("/:id/reminders", vendorH.ListReminders)
	vendors.POST("/:id/certificates", certH.Upload)
	vendors.GET("/:id/certificates", certH.ListByVendor)
	vendors.GET("/:id/extractions", extractionH.ListByVendor)

	// Rule set routes (admin manages, members read)
	ruleSets := protected.Group("/rule-sets")
	ruleSets.POST("", middleware.RequireRole(domain.RoleAdmin), ruleSetH.Create)
	ruleSets.GET("", ruleSetH.List)
	ruleSets.GET("/:id", ruleSetH.GetByID)
	ruleSets.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), ruleSetH.Update)
	ruleSets.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), ruleSetH.Delete)

	// Certificate routes
	certs := protected.Group("/certificates")
	certs.GET("/:id", certH.GetByID)
	certs.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), certH.Delete)

	// Extraction routes
	extractions := protected.Group("/extractions")
	extractions.GET("/review-queue", extractionH.ReviewQueue)
	extractions.GET("/:id", extractionH.GetByID)
	extractions.PUT("/:id/review", extractionH.UpdateReview)
	extractions.POST("/:id/retry", extractionH.Retry)
	extractions.GET("/:id/audit", extractionH.AuditLog)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/compliance", reportH.Overview)
	reports.GET("/compliance/export", reportH.ExportCSV)
	reports.GET("/stats", reportH.Stats)

	// Reminder routes
	reminders := protected.Group("/reminders")
	reminders.POST("/dispatch", middleware.RequireRole(domain.RoleAdmin), reminderH.DispatchNow)

	// User management (tenant-scoped)
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// Admin routes - tenant management
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authSvc))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/tenants", tenantH.Create)
	admin.GET("/tenants", tenantH.List)
	admin.GET("/tenants/:id", tenantH.GetByID)
	admin.PUT("/tenants/:id", tenantH.Update)
	admin.DELETE("/tenants/:id", tenantH.Delete)

	return r
}
