package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/MV-Clouds/quickform-payments/internal/interfaces/http/handlers"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	FormPaymentHandler *handlers.FormPaymentHandler
}

// SetupPaymentRoutes configures payment routes.
func SetupPaymentRoutes(engine *gin.Engine, cfg *PaymentRouteConfig) {
	api := engine.Group("/api/v1")
	{
		forms := api.Group("/forms/:form_id/payments")
		{
			forms.POST("/validate", cfg.FormPaymentHandler.ValidatePayments)
			forms.POST("/process", cfg.FormPaymentHandler.ProcessPayments)
		}

		merchants := api.Group("/merchants/:merchant_id")
		{
			merchants.GET("/subscriptions", cfg.FormPaymentHandler.ListSubscriptions)
			merchants.DELETE("/subscriptions/:field_id", cfg.FormPaymentHandler.RemoveSubscription)
		}
	}
}
