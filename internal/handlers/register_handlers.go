package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/fx_transfer_app/cmd/docs"
	"github.com/SscSPs/fx_transfer_app/internal/core/ports/clients"
	portssvc "github.com/SscSPs/fx_transfer_app/internal/core/ports/services"
	"github.com/SscSPs/fx_transfer_app/internal/middleware"
	"github.com/SscSPs/fx_transfer_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil gatherer leaves /metrics unregistered.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	tokenValidator clients.TokenValidator,
	gatherer prometheus.Gatherer,
) error {
	if err := registerValidators(); err != nil {
		return fmt.Errorf("failed to register request validators: %w", err)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, tokenValidator)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	tokenValidator clients.TokenValidator,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(tokenValidator))
	adminOnly := middleware.RequireAdmin(cfg.AdminUserIDs)

	registerTransferRoutes(v1, service.Transfer)
	registerConversionRoutes(v1, service.Conversion)
	registerExchangeRateRoutes(v1, service.ExchangeRate, adminOnly)
	registerPolicyRoutes(v1, service.Policy, adminOnly)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
