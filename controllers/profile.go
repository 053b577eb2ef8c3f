package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"feedback-hero/models"
	"feedback-hero/utils"
)

// ProfileController handles the settings page: business identity, password
// changes, and the open-ended settings blob.
type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

type UpdateBusinessInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func (p *ProfileController) GetProfile(c *gin.Context) {
	business, ok := p.currentBusiness(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         business.ID,
		"name":       business.Name,
		"email":      business.Email,
		"settings":   business.Settings,
		"created_at": business.CreatedAt,
	})
}

// UpdateBusiness changes the display name and email, refusing an email that
// another business already uses.
func (p *ProfileController) UpdateBusiness(c *gin.Context) {
	business, ok := p.currentBusiness(c)
	if !ok {
		return
	}

	var input UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Business name and email are required")
		return
	}

	email := strings.TrimSpace(input.Email)

	var existing models.Business
	result := p.DB.Where("email = ? AND id <> ?", email, business.ID).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already in use by another business")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	business.Name = strings.TrimSpace(input.Name)
	business.Email = email
	if err := p.DB.Save(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error updating business information")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business information updated successfully"})
}

func (p *ProfileController) ChangePassword(c *gin.Context) {
	business, ok := p.currentBusiness(c)
	if !ok {
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Password must be at least 8 characters long")
		return
	}

	if !business.CheckPassword(input.CurrentPassword) {
		utils.RespondWithError(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	if input.NewPassword != input.ConfirmPassword {
		utils.RespondWithError(c, http.StatusBadRequest, "New passwords do not match")
		return
	}

	if err := business.SetPassword(input.NewPassword); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error changing password")
		return
	}
	if err := p.DB.Model(&business).Update("password_hash", business.PasswordHash).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error changing password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully!"})
}

// UpdateSettings merges the submitted keys into the settings blob; keys not
// present in the request are left untouched.
func (p *ProfileController) UpdateSettings(c *gin.Context) {
	business, ok := p.currentBusiness(c)
	if !ok {
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid settings payload")
		return
	}

	if business.Settings == nil {
		business.Settings = models.JSONB{}
	}
	for key, value := range input {
		if value == nil {
			delete(business.Settings, key)
			continue
		}
		business.Settings[key] = value
	}

	if err := p.DB.Model(&business).Update("settings", business.Settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error updating settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated", "settings": business.Settings})
}

func (p *ProfileController) currentBusiness(c *gin.Context) (models.Business, bool) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return models.Business{}, false
	}

	var business models.Business
	if err := p.DB.First(&business, "id = ?", businessID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return models.Business{}, false
	}
	return business, true
}
