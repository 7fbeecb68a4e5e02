package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	couponControllers "github.com/Sathiel13/server-REP-X/controllers/coupon"
	"github.com/Sathiel13/server-REP-X/models"
)

type OrderItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	Products        []OrderItemInput       `json:"products" binding:"required,min=1,dive"`
	CouponID        *string                `json:"coupon_id"`
	DiscountApplied float64                `json:"discount_applied"`
	Total           float64                `json:"total" binding:"min=0"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

type UpdateOrderStatusInput struct {
	PaymentStatus  *string `json:"payment_status"`
	DeliveryStatus *string `json:"delivery_status"`
}

func mapPaymentStatus(s string) (models.PaymentStatus, error) {
	switch models.PaymentStatus(s) {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
		return models.PaymentStatus(s), nil
	default:
		return "", errors.New("invalid payment status")
	}
}

func mapDeliveryStatus(s string) (models.DeliveryStatus, error) {
	switch models.DeliveryStatus(s) {
	case models.DeliveryStatusProcessing, models.DeliveryStatusShipped, models.DeliveryStatusDelivered:
		return models.DeliveryStatus(s), nil
	default:
		return "", errors.New("invalid delivery status")
	}
}

// CreateOrder creates an order directly for the authenticated user. When a
// coupon is attached its use is consumed here — this is the explicit redeem
// step the validation endpoint never performs.
// POST /orders
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		items := make([]models.OrderItem, 0, len(input.Products))
		for _, p := range input.Products {
			var product models.Product
			if err := db.First(&product, "id = ?", p.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Product not found: " + p.ProductID})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
				return
			}
			items = append(items, models.OrderItem{ProductID: p.ProductID, Quantity: p.Quantity})
		}

		order := models.Order{
			ID:              uuid.NewString(),
			UserID:          userID,
			Products:        items,
			CouponID:        input.CouponID,
			DiscountApplied: input.DiscountApplied,
			Total:           input.Total,
			PaymentStatus:   models.PaymentStatusPending,
			DeliveryStatus:  models.DeliveryStatusProcessing,
			ShippingAddress: input.ShippingAddress,
		}
		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		if input.CouponID != nil {
			if err := couponControllers.Redeem(db, *input.CouponID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem coupon"})
				return
			}
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Products").
			Preload("Products.Product").
			Preload("Coupon").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Products").
			Preload("Products.Product").
			Preload("Coupon").
			First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// UpdateOrderStatus updates payment and/or delivery status.
// PUT /orders/:id
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var input UpdateOrderStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.PaymentStatus != nil {
			status, err := mapPaymentStatus(*input.PaymentStatus)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["payment_status"] = status
		}
		if input.DeliveryStatus != nil {
			status, err := mapDeliveryStatus(*input.DeliveryStatus)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["delivery_status"] = status
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment_status or delivery_status is required"})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var order models.Order
		if err := db.Preload("Products").First(&order, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.Order{}, "id = ?", id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
