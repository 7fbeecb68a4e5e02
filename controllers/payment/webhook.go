package paymentControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/middleware"
	"github.com/Sathiel13/server-REP-X/models"
)

const eventIntentSucceeded = "payment_intent.succeeded"

// Event is the gateway's webhook envelope. Only succeeded payment intents are
// acted on; everything else is acknowledged and ignored.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				UserID string `json:"user_id"`
				CartID string `json:"cart_id"`
			} `json:"metadata"`
			Shipping struct {
				Address struct {
					Line1      string `json:"line1"`
					City       string `json:"city"`
					PostalCode string `json:"postal_code"`
					Country    string `json:"country"`
				} `json:"address"`
			} `json:"shipping"`
		} `json:"object"`
	} `json:"data"`
}

// HandleWebhook consumes payment notifications from the gateway. Signature
// verification happened in middleware, before this handler and before any
// store was touched. Delivery is at-least-once, so processing is keyed by the
// gateway event id: a replayed event is acknowledged without a second order.
//
// On a succeeded intent the cart is converted into an order, the payment
// record is marked succeeded, and the cart is deleted last. The writes span
// multiple rows without a cross-store transaction guarding the gateway
// interaction, so any partial completion is logged loudly instead of being
// silently tolerated.
// POST /webhook
func HandleWebhook(db *gorm.DB, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payloadVal, exists := c.Get(middleware.WebhookPayloadKey)
		payload, ok := payloadVal.([]byte)
		if !exists || !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing webhook payload"})
			return
		}

		var event Event
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed webhook payload"})
			return
		}

		logger.Info().Str("event_id", event.ID).Str("type", event.Type).Msg("webhook event received")

		if event.Type != eventIntentSucceeded {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		var processed int64
		if err := db.Model(&models.WebhookEvent{}).Where("event_id = ?", event.ID).Count(&processed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check event history"})
			return
		}
		if processed > 0 {
			logger.Info().Str("event_id", event.ID).Msg("duplicate webhook event, already processed")
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}

		cartID := event.Data.Object.Metadata.CartID
		userID := event.Data.Object.Metadata.UserID

		var cart models.Cart
		if err := db.Preload("Items.Product").First(&cart, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn().Str("cart_id", cartID).Msg("webhook cart not found, no order created")
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		addr := event.Data.Object.Shipping.Address
		order := models.Order{
			ID:            uuid.NewString(),
			UserID:        userID,
			Products:      items,
			Total:         cart.Total,
			PaymentStatus: models.PaymentStatusPaid,
			DeliveryStatus: models.DeliveryStatusProcessing,
			ShippingAddress: models.ShippingAddress{
				Street:  orDefault(addr.Line1),
				City:    orDefault(addr.City),
				Zip:     orDefault(addr.PostalCode),
				Country: orDefault(addr.Country),
			},
		}
		if err := db.Create(&order).Error; err != nil {
			logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to create order from webhook")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		// Past this point the order exists. Remaining writes must not fail
		// silently: each failure leaves the stores inconsistent.
		if err := db.Model(&models.Payment{}).
			Where("intent_id = ?", event.Data.Object.ID).
			Update("status", "succeeded").Error; err != nil {
			logger.Error().Err(err).
				Str("order_id", order.ID).
				Str("intent_id", event.Data.Object.ID).
				Msg("order created but payment record not updated")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment record"})
			return
		}

		if err := db.Create(&models.WebhookEvent{
			EventID:     event.ID,
			EventType:   event.Type,
			ProcessedAt: time.Now(),
		}).Error; err != nil {
			logger.Error().Err(err).
				Str("order_id", order.ID).
				Str("event_id", event.ID).
				Msg("order created but event not marked processed, a redelivery will hit the missing-cart branch")
		}

		// Cart deleted last so a crash before this line leaves a retryable
		// state rather than a lost cart.
		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			logger.Error().Err(err).Str("order_id", order.ID).Str("cart_id", cart.ID).
				Msg("order created but cart items not deleted")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}
		if err := db.Delete(&models.Cart{}, "id = ?", cart.ID).Error; err != nil {
			logger.Error().Err(err).Str("order_id", order.ID).Str("cart_id", cart.ID).
				Msg("order created but cart not deleted")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}

		logger.Info().
			Str("order_id", order.ID).
			Str("event_id", event.ID).
			Float64("total", order.Total).
			Msg("order created from payment webhook")

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func orDefault(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
