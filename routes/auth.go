package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/auth"
	"github.com/rajsomesetty/primerice-backend/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the public /auth/* endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) {
	otpStore := auth.NewOTPStore(rdb)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.Signup(db, cfg.JWT.Secret))
		authGroup.POST("/login", auth.Login(db, cfg.JWT.Secret))
		authGroup.POST("/otp/request", auth.RequestOTP(otpStore, logger))
		authGroup.POST("/otp/verify", auth.VerifyOTP(db, otpStore, cfg.JWT.Secret))
	}
}
