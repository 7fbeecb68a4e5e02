package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/Sathiel13/server-REP-X/controllers/product"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupProductRoutes registers the catalog endpoints. Reads are public,
// writes require an admin token.
func SetupProductRoutes(r *gin.Engine, deps Deps) {
	r.GET("/products", productControllers.GetProducts(deps.DB))
	r.GET("/products/random", productControllers.GetRandomProducts(deps.DB))
	r.GET("/products/:id", productControllers.GetProductByID(deps.DB))

	admin := r.Group("/products")
	admin.Use(middleware.ValidateToken(deps.Config.JWTSecret), middleware.RequireAdmin)
	{
		admin.POST("", productControllers.CreateProduct(deps.DB, deps.Config.UploadDir))
		admin.PUT("/:id", productControllers.UpdateProduct(deps.DB))
		admin.DELETE("/:id", productControllers.DeleteProduct(deps.DB))
	}
}
