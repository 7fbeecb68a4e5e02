package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/Sathiel13/server-REP-X/controllers/payment"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupPaymentRoutes registers checkout and the gateway webhook. The webhook
// is not bearer-authenticated; it is verified against the gateway's signature
// over the raw request body, so nothing may consume the body before the
// verification middleware.
func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	r.POST("/create-payment-intent",
		middleware.ValidateToken(deps.Config.JWTSecret),
		paymentControllers.CreatePaymentIntent(deps.DB, deps.Gateway, deps.Config.Payment.Currency),
	)

	r.POST("/webhook",
		middleware.VerifyWebhookSignature(deps.Config.Payment.WebhookSecret),
		paymentControllers.HandleWebhook(deps.DB, deps.Logger),
	)
}
