// Package http wires the Gin engine, middleware, and payment routes.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/gateway"
	"github.com/MV-Clouds/quickform-payments/internal/application/formpayment/usecases"
	"github.com/MV-Clouds/quickform-payments/internal/domain/formpayment"
	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/cache"
	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/config"
	"github.com/MV-Clouds/quickform-payments/internal/infrastructure/repository"
	"github.com/MV-Clouds/quickform-payments/internal/interfaces/http/handlers"
	"github.com/MV-Clouds/quickform-payments/internal/interfaces/http/middleware"
	"github.com/MV-Clouds/quickform-payments/internal/interfaces/http/routes"
	"github.com/MV-Clouds/quickform-payments/internal/shared/logger"
	"github.com/MV-Clouds/quickform-payments/internal/shared/services/sanitize"
	"github.com/MV-Clouds/quickform-payments/internal/shared/version"
)

// Router represents the HTTP router configuration
type Router struct {
	engine             *gin.Engine
	formPaymentHandler *handlers.FormPaymentHandler
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	handlers.RegisterCustomValidators()

	var registry formpayment.PlanRegistry = repository.NewPlanRegistryRepository(db, log)
	if redisClient != nil {
		registry = cache.NewCachedPlanRegistry(registry, redisClient, log)
	}

	providerGateway := gateway.NewHTTPGateway(gateway.HTTPGatewayConfig{
		BaseURL:        cfg.Provider.Endpoint,
		APIKey:         cfg.Provider.APIKey,
		RequestTimeout: cfg.Provider.Timeout(),
	}, log)

	sanitizer := sanitize.NewService()

	processUC := usecases.NewProcessFormPaymentsUseCase(registry, providerGateway, sanitizer, log)
	validateUC := usecases.NewValidateFormPaymentsUseCase(log)
	listUC := usecases.NewGetExistingSubscriptionsUseCase(registry, log)
	removeUC := usecases.NewRemoveSubscriptionUseCase(registry, log)

	formPaymentHandler := handlers.NewFormPaymentHandler(processUC, validateUC, listUC, removeUC, log)

	router := &Router{
		engine:             engine,
		formPaymentHandler: formPaymentHandler,
	}
	router.setupMiddleware(cfg, log)
	router.setupRoutes(db)

	return router
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) setupMiddleware(cfg *config.Config, log logger.Interface) {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(log))
	r.engine.Use(middleware.ErrorHandler())
	r.engine.Use(middleware.SecurityHeaders())
	if len(cfg.Server.AllowedOrigins) > 0 {
		r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	}
}

func (r *Router) setupRoutes(db *gorm.DB) {
	r.engine.GET("/health", healthHandler(db))

	routes.SetupPaymentRoutes(r.engine, &routes.PaymentRouteConfig{
		FormPaymentHandler: r.formPaymentHandler,
	})
}

// healthHandler reports service liveness and database reachability.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "unreachable"
		}

		status := http.StatusOK
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"status":   dbStatus,
			"version":  version.Version,
			"database": dbStatus,
		})
	}
}
