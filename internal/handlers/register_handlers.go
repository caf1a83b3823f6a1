package handlers

import (
	"github.com/SscSPs/pdv_backoffice/cmd/docs"
	portssvc "github.com/SscSPs/pdv_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pdv_backoffice/internal/middleware"
	"github.com/SscSPs/pdv_backoffice/internal/platform/config"
	"github.com/SscSPs/pdv_backoffice/internal/platform/metrics"
	"github.com/SscSPs/pdv_backoffice/internal/utils/validation"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware runs after authentication on every /api/v1 route.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
	apiMiddleware ...gin.HandlerFunc,
) {
	// Custom binding tags (isodate, month, category, ...) must exist before
	// the first request is bound.
	validation.Engine()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, apiMiddleware)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret)}, apiMiddleware...)
	v1 := r.Group("/api/v1", chain...)

	RegisterTransactionRoutes(v1, service.Transaction)
	RegisterShiftRoutes(v1, service.Shift)
	RegisterAuditRoutes(v1, service.Audit)
	RegisterReportRoutes(v1, service.Reporting)
	RegisterPaymentMethodRoutes(v1, service.PaymentMethod)
	RegisterRecurringBillRoutes(v1, service.RecurringBill)
	RegisterAttachmentRoutes(v1, service.Attachment)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
