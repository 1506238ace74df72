package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rajsomesetty/primerice-backend/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type OTPRequest struct {
	Mobile string `json:"mobile" binding:"required"`
}

type OTPVerifyRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

func tokenResponse(c *gin.Context, status int, token string, user *models.User) {
	c.JSON(status, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user.Public(),
	})
}

// POST /auth/signup
func Signup(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("mobile = ?", req.Mobile).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Mobile already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check mobile"})
			return
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid password"})
			return
		}

		user := models.User{
			Name:     req.Name,
			Mobile:   req.Mobile,
			Password: hash,
			Role:     models.RoleUser,
		}
		if err := db.Create(&user).Error; err != nil {
			// The unique index is the last word when two signups race.
			c.JSON(http.StatusConflict, gin.H{"error": "Mobile already registered"})
			return
		}

		token, err := IssueToken(secret, user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		tokenResponse(c, http.StatusCreated, token, &user)
	}
}

// POST /auth/login
//
// Unknown mobile and wrong password produce the same response so callers
// cannot enumerate registered numbers.
func Login(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("mobile = ?", req.Mobile).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid mobile or password"})
			return
		}
		if !CheckPassword(req.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid mobile or password"})
			return
		}

		token, err := IssueToken(secret, user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		tokenResponse(c, http.StatusOK, token, &user)
	}
}

// POST /auth/otp/request
//
// SMS delivery is out of scope; the code is written to the debug log only.
func RequestOTP(store *OTPStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		code, err := store.Generate(c.Request.Context(), req.Mobile)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
			return
		}
		logger.Debug("otp issued", zap.String("mobile", req.Mobile), zap.String("otp", code))

		c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
	}
}

// POST /auth/otp/verify
//
// A valid code logs the user in; the failure message does not distinguish a
// wrong code from an unregistered mobile.
func VerifyOTP(db *gorm.DB, store *OTPStore, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OTPVerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := store.Verify(c.Request.Context(), req.Mobile, req.OTP); err != nil {
			if errors.Is(err, ErrOTPMismatch) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid mobile or OTP"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify OTP"})
			return
		}

		var user models.User
		if err := db.Where("mobile = ?", req.Mobile).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid mobile or OTP"})
			return
		}

		token, err := IssueToken(secret, user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}
		tokenResponse(c, http.StatusOK, token, &user)
	}
}
