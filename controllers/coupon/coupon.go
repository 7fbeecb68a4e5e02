package couponControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/models"
)

type CreateCouponInput struct {
	Code         string    `json:"code" binding:"required"`
	DiscountType string    `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value        float64   `json:"value" binding:"required,gt=0"`
	MaxUses      int       `json:"max_uses"`
	ValidFrom    time.Time `json:"valid_from" binding:"required"`
	ValidUntil   time.Time `json:"valid_until" binding:"required"`
}

type ValidateCouponInput struct {
	Code string `json:"code" binding:"required"`
}

// POST /admin/cupon
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		maxUses := input.MaxUses
		if maxUses <= 0 {
			maxUses = 1
		}

		coupon := models.Coupon{
			ID:           uuid.NewString(),
			Code:         strings.ToUpper(strings.TrimSpace(input.Code)),
			DiscountType: models.DiscountType(input.DiscountType),
			Value:        input.Value,
			MaxUses:      maxUses,
			ValidFrom:    input.ValidFrom,
			ValidUntil:   input.ValidUntil,
			IsActive:     true,
		}
		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A coupon with this code already exists"})
			return
		}

		c.JSON(http.StatusCreated, coupon)
	}
}

// GET /admin/cupon
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// ValidateCoupon checks a code without consuming a use. Every failure maps to
// the same "invalid or expired" response so callers cannot probe which codes
// exist.
// POST /validatecupon
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ValidateCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		code := strings.ToUpper(strings.TrimSpace(input.Code))

		var coupon models.Coupon
		err := db.Where("code = ? AND is_active = ?", code, true).First(&coupon).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate coupon"})
			return
		}
		if err != nil || !coupon.Usable(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "message": "Invalid or expired coupon"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":         true,
			"discount_type": coupon.DiscountType,
			"value":         coupon.Value,
			"coupon_id":     coupon.ID,
		})
	}
}

// Redeem consumes one use. It is invoked by the order path only — validation
// never mutates the counter. The increment is a single-document write, so the
// database keeps it atomic.
func Redeem(db *gorm.DB, couponID string) error {
	result := db.Model(&models.Coupon{}).
		Where("id = ?", couponID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// PUT /admin/cupon/:id/deactivate
func DeactivateCoupon(db *gorm.DB) gin.HandlerFunc {
	return setCouponActive(db, false, "Coupon deactivated")
}

// PUT /admin/cupon/:id/activate
func ActivateCoupon(db *gorm.DB) gin.HandlerFunc {
	return setCouponActive(db, true, "Coupon activated")
}

func setCouponActive(db *gorm.DB, active bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Model(&models.Coupon{}).Where("id = ?", id).Update("is_active", active)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}

		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupon"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": message, "coupon": coupon})
	}
}
