package handlers

import (
	"errors"
	"net/http"

	"skillsync-api/internal/auth"
	"skillsync-api/internal/database"
	"skillsync-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest represents the signup request payload
type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"omitempty,oneof=mentee mentor"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest represents the federated login payload
type GoogleLoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	GoogleID string `json:"googleId" binding:"required"`
}

// AuthResponse represents the response for all auth endpoints
type AuthResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
	Token string          `json:"token"`
}

func authResponse(c *gin.Context, status int, user *models.User) {
	token, err := auth.GenerateToken(user.ID, user.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(status, AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

// Register handles POST /api/auth/register
// Creates a credentials account and returns a token
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	err := database.GetDB().Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing user"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleMentee
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		AuthProvider: models.ProviderCredentials,
		Role:         role,
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	authResponse(c, http.StatusCreated, &user)
}

// Login handles POST /api/auth/login
// Authenticates a credentials account and returns a token
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Email and password are required.",
		})
		return
	}

	var user models.User
	if err := database.GetDB().Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	authResponse(c, http.StatusOK, &user)
}

// GoogleLogin handles POST /api/auth/google
// Logs in an existing account or creates one from the federated identity
func GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := database.GetDB()

	var user models.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	switch {
	case err == nil:
		// Returning user; adopt the google identity if they previously used credentials
		if user.AuthProvider != models.ProviderGoogle {
			user.AuthProvider = models.ProviderGoogle
			user.ProviderID = req.GoogleID
			if err := db.Save(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No password for OAuth accounts
		user = models.User{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			AuthProvider: models.ProviderGoogle,
			ProviderID:   req.GoogleID,
			Role:         models.RoleMentee,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during Google login"})
		return
	}

	authResponse(c, http.StatusOK, &user)
}
