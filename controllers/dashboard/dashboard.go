package dashboardControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/models"
)

type DailySale struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// GetDashboardMetrics aggregates revenue, item counts, user counts, an
// order-status breakdown and a 7-day daily revenue series.
// GET /admin/dashboard-metrics (admin)
func GetDashboardMetrics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalRevenue float64
		if err := db.Model(&models.Order{}).
			Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
			return
		}

		var totalItemsSold int64
		if err := db.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(order_items.quantity), 0)").
			Scan(&totalItemsSold).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute items sold"})
			return
		}

		var totalUsers int64
		if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}

		counts := map[string]int64{}
		for label, cond := range map[string][]interface{}{
			"paid":            {"payment_status = ?", models.PaymentStatusPaid},
			"pendingPayment":  {"payment_status = ?", models.PaymentStatusPending},
			"delivered":       {"delivery_status = ?", models.DeliveryStatusDelivered},
			"pendingDelivery": {"delivery_status <> ?", models.DeliveryStatusDelivered},
		} {
			var n int64
			if err := db.Model(&models.Order{}).Where(cond[0], cond[1:]...).Count(&n).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
				return
			}
			counts[label] = n
		}

		// Last 7 days including today.
		sevenDaysAgo := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

		var dailySales []DailySale
		if err := db.Model(&models.Order{}).
			Where("payment_status = ? AND created_at >= ?", models.PaymentStatusPaid, sevenDaysAgo).
			Select("DATE(created_at) AS date, SUM(total) AS total").
			Group("DATE(created_at)").
			Order("date ASC").
			Scan(&dailySales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute daily sales"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalRevenue":    totalRevenue,
			"totalItemsSold":  totalItemsSold,
			"totalUsers":      totalUsers,
			"completedOrders": counts["delivered"],
			"ordersByStatus":  counts,
			"dailySales":      dailySales,
		})
	}
}
