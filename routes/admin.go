package routes

import (
	"github.com/gin-gonic/gin"

	dashboardControllers "github.com/Sathiel13/server-REP-X/controllers/dashboard"
	"github.com/Sathiel13/server-REP-X/middleware"
)

// SetupDashboardRoutes registers the admin metrics endpoint.
func SetupDashboardRoutes(r *gin.Engine, deps Deps) {
	r.GET("/admin/dashboard-metrics",
		middleware.ValidateToken(deps.Config.JWTSecret),
		middleware.RequireAdmin,
		dashboardControllers.GetDashboardMetrics(deps.DB),
	)
}
