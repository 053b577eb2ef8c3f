package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"feedback-hero/config"
	"feedback-hero/models"
	"feedback-hero/utils"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new business account. Single-tenant deployments usually
// rely on the bootstrapped account instead, but the flow stays available for
// multi-business installs.
func (a *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Password != input.ConfirmPassword {
		utils.RespondWithError(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	email := strings.TrimSpace(input.Email)

	var existing models.Business
	result := a.DB.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	business := models.Business{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Settings: models.JSONB{},
	}
	if err := business.SetPassword(input.Password); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if err := a.DB.Create(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := utils.GenerateToken(business.ID.String(), a.Cfg.JWTSecret, a.Cfg.JWTExpiryHours)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	a.setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"business": gin.H{
			"id":    business.ID,
			"name":  business.Name,
			"email": business.Email,
		},
	})
}

// Login authenticates a business by email and password.
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Please provide both email and password")
		return
	}

	email := strings.TrimSpace(input.Email)

	var business models.Business
	result := a.DB.Where("email = ?", email).First(&business)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !business.CheckPassword(input.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(business.ID.String(), a.Cfg.JWTSecret, a.Cfg.JWTExpiryHours)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	a.setTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"business": gin.H{
			"id":    business.ID,
			"name":  business.Name,
			"email": business.Email,
		},
	})
}

// Logout clears the token cookie.
func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out successfully"})
}

// Me returns the authenticated business profile.
func (a *AuthController) Me(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	var business models.Business
	if err := a.DB.First(&business, "id = ?", businessID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{
			"id":         business.ID,
			"name":       business.Name,
			"email":      business.Email,
			"created_at": business.CreatedAt,
		},
	})
}

func (a *AuthController) setTokenCookie(c *gin.Context, token string) {
	maxAge := a.Cfg.JWTExpiryHours * 3600
	c.SetCookie("token", token, maxAge, "/", "", false, true)
}
