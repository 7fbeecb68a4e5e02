package routes

import (
	"github.com/gin-gonic/gin"

	couponControllers "github.com/Sathiel13/server-REP-X/controllers/coupon"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupCouponRoutes registers coupon management (admin) and the public
// pre-checkout validation endpoint.
func SetupCouponRoutes(r *gin.Engine, deps Deps) {
	admin := r.Group("/admin/cupon")
	admin.Use(middleware.ValidateToken(deps.Config.JWTSecret), middleware.RequireAdmin)
	{
		admin.POST("", couponControllers.CreateCoupon(deps.DB))
		admin.GET("", couponControllers.GetAllCoupons(deps.DB))
		admin.PUT("/:id/activate", couponControllers.ActivateCoupon(deps.DB))
		admin.PUT("/:id/deactivate", couponControllers.DeactivateCoupon(deps.DB))
	}

	r.POST("/validatecupon", couponControllers.ValidateCoupon(deps.DB))
}
