package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fit-nest-dev/fit-nest-api/mailer"
	"github.com/fit-nest-dev/fit-nest-api/models"
)

const (
	// TokenCookie is the session cookie carrying the JWT.
	TokenCookie = "fitnest_token"

	tokenTTL = 72 * time.Hour
	otpTTL   = 10 * time.Minute
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// POST /api/auth/register
func Register(db *gorm.DB, mail mailer.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:    req.Email,
			Password: string(hash),
			Name:     req.Name,
			Contact:  req.Contact,
			Address:  req.Address,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		code := generateOTP()
		otp := models.OTP{Email: req.Email, Code: code, ExpiresAt: time.Now().Add(otpTTL)}
		if err := db.Create(&otp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue OTP"})
			return
		}
		mail.SendOTP(req.Email, code)

		c.JSON(http.StatusCreated, gin.H{"message": "Registered. Check your email for the verification code."})
	}
}

// POST /api/auth/verify-otp
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var otp models.OTP
		err := db.Where("email = ? AND code = ?", req.Email, req.Code).
			Order("created_at DESC").First(&otp).Error
		if err != nil || time.Now().After(otp.ExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
			return
		}

		if err := db.Model(&models.User{}).Where("email = ?", req.Email).
			Update("verified", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
			return
		}
		db.Where("email = ?", req.Email).Delete(&models.OTP{})

		c.JSON(http.StatusOK, gin.H{"message": "Account verified"})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		if !user.Verified {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account not verified"})
			return
		}

		token, err := IssueJWT(user.ID, user.Email, user.IsAdmin)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.SetCookie(TokenCookie, token, int(tokenTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

// POST /api/auth/logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(TokenCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// IssueJWT signs a session token for the given account.
func IssueJWT(userID uint, email string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    email,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
