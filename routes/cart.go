package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Sathiel13/server-REP-X/controllers/cart"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupCartRoutes registers the /cart endpoints, keyed to the token identity.
func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	{
		cartGroup.POST("", cartControllers.AddToCart(deps.DB))
		cartGroup.GET("", cartControllers.GetCart(deps.DB))
		cartGroup.DELETE("/:productId", cartControllers.RemoveFromCart(deps.DB))
		cartGroup.DELETE("", cartControllers.ClearCart(deps.DB))
	}
}
