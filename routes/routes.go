package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Sathiel13/server-REP-X/config"
	paymentControllers "github.com/Sathiel13/server-REP-X/controllers/payment"
)

// Deps bundles everything the route groups need. Secrets and clients are
// injected here once instead of being read from the environment inside
// handlers.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  zerolog.Logger
	Gateway *paymentControllers.Client
}

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupAuthRoutes(r, deps)
	SetupUserRoutes(r, deps)
	SetupProductRoutes(r, deps)
	SetupCartRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupCouponRoutes(r, deps)
	SetupPaymentRoutes(r, deps)
	SetupDashboardRoutes(r, deps)
}
