package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/auth"
	"github.com/fit-nest-dev/fit-nest-api/mailer"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, mail mailer.Sender) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register(db, mail))
		authGroup.POST("/verify-otp", auth.VerifyOTP(db))
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/logout", auth.Logout())
	}
}
