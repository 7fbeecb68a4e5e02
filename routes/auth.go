package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/Sathiel13/server-REP-X/controllers/auth"
)

// SetupAuthRoutes registers the public /auth/* endpoints.
func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(deps.DB))
		authGroup.POST("/login", authControllers.Login(deps.DB, deps.Config.JWTSecret))
	}
}
