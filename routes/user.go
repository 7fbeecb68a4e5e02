package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/Sathiel13/server-REP-X/controllers/user"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupUserRoutes registers the JWT-protected /user/* endpoints.
func SetupUserRoutes(r *gin.Engine, deps Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(deps.Config.JWTSecret))
	{
		userGroup.GET("/:email", userControllers.GetUserByEmail(deps.DB))
		userGroup.PATCH("/:id", userControllers.UpdateUserProfile(deps.DB))
		userGroup.DELETE("/:id", userControllers.DeleteUser(deps.DB))
	}
}
