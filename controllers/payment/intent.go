package paymentControllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/models"
)

// CreatePaymentIntent starts checkout for the authenticated user's cart. The
// amount is recomputed from current line items and live catalog prices, not
// the cart's stored total, and sent to the gateway in currency subunits. No
// order is created here; that waits for the gateway's webhook.
// POST /create-payment-intent
func CreatePaymentIntent(db *gorm.DB, client *Client, currency string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found or empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if len(cart.Items) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found or empty"})
			return
		}

		var total float64
		for _, item := range cart.Items {
			total += float64(item.Quantity) * item.Product.Price
		}
		amountCents := int64(math.Round(total * 100))

		intent, err := client.CreateIntent(amountCents, currency, userID, cart.ID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to process payment: " + err.Error()})
			return
		}

		payment := models.Payment{
			ID:       uuid.NewString(),
			IntentID: intent.ID,
			UserID:   userID,
			CartID:   cart.ID,
			Amount:   total,
			Currency: currency,
			Status:   intent.Status,
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"clientSecret": intent.ClientSecret,
			"total":        total,
		})
	}
}
