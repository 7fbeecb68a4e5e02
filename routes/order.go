package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Sathiel13/server-REP-X/controllers/order"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupOrderRoutes registers the JWT-protected /orders endpoints.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	{
		orders.POST("", orderControllers.CreateOrder(deps.DB))
		orders.GET("", orderControllers.GetAllOrders(deps.DB))
		orders.GET("/:id", orderControllers.GetOrderByID(deps.DB))
		orders.PUT("/:id", orderControllers.UpdateOrderStatus(deps.DB))
		orders.DELETE("/:id", orderControllers.DeleteOrder(deps.DB))
	}
}
