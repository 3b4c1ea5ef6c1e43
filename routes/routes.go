package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/payment"
	"github.com/fit-nest-dev/fit-nest-api/realtime"
)

// SetupRoutes is the single entry-point that wires up every route group.
// All dependencies are constructed in main and injected here.
func SetupRoutes(r *gin.Engine, db *gorm.DB, gw payment.Gateway, mail mailer.Sender, hub *realtime.Hub) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, mail)

	// Member routes (JWT-protected)
	SetupUserRoutes(r, db, gw, mail, hub)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, gw, mail, hub)

	// Realtime websocket endpoint
	r.GET("/api/live", realtime.ServeWS(hub))
}
