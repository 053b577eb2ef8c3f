package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"feedback-hero/models"
	"feedback-hero/utils"
)

// ManageController covers the dashboard's record-level feedback operations:
// the paginated list, single lookups, the reviewed toggle, and deletion.
type ManageController struct {
	DB *gorm.DB
}

func NewManageController(db *gorm.DB) *ManageController {
	return &ManageController{DB: db}
}

// List returns one page of the business's feedback. An out-of-range rating
// filter is ignored and an unrecognized sort falls back to newest-first;
// neither is an error.
func (m *ManageController) List(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 {
		perPage = 20
	}

	query := m.DB.Model(&models.Feedback{}).Where("business_id = ?", businessID)

	if filterRating, err := strconv.Atoi(c.Query("filter")); err == nil && filterRating >= 1 && filterRating <= 3 {
		query = query.Where("overall_rating = ?", filterRating)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "oldest":
		query = query.Order("timestamp asc")
	case "rating_high":
		query = query.Order("overall_rating desc").Order("timestamp desc")
	case "rating_low":
		query = query.Order("overall_rating asc").Order("timestamp desc")
	default: // newest
		query = query.Order("timestamp desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading feedback")
		return
	}

	var items []models.Feedback
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading feedback")
		return
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))

	c.JSON(http.StatusOK, gin.H{
		"feedback":     items,
		"total":        total,
		"pages":        pages,
		"current_page": page,
		"per_page":     perPage,
		"has_next":     page < pages,
		"has_prev":     page > 1,
	})
}

// GetOne returns a single feedback entry, 404 when it does not exist or
// belongs to another business.
func (m *ManageController) GetOne(c *gin.Context) {
	feedback, ok := m.ownedFeedback(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// ToggleReviewed flips the reviewed flag on one entry.
func (m *ManageController) ToggleReviewed(c *gin.Context) {
	feedback, ok := m.ownedFeedback(c)
	if !ok {
		return
	}

	feedback.Reviewed = !feedback.Reviewed
	if err := m.DB.Model(&feedback).Update("reviewed", feedback.Reviewed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error updating feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"reviewed":    feedback.Reviewed,
		"feedback_id": feedback.ID,
	})
}

// DeleteOne removes a single feedback entry.
func (m *ManageController) DeleteOne(c *gin.Context) {
	feedback, ok := m.ownedFeedback(c)
	if !ok {
		return
	}

	if err := m.DB.Delete(&feedback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error deleting feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Feedback deleted successfully"})
}

// DeleteAll wipes every feedback record of the business. Danger-zone action.
func (m *ManageController) DeleteAll(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	err := m.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Where("business_id = ?", businessID).Delete(&models.Feedback{}).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error deleting feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All feedback deleted"})
}

// DeleteAccount removes the business and cascades delete of all its feedback
// in one transaction.
func (m *ManageController) DeleteAccount(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	err := m.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", businessID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", businessID).Delete(&models.Business{}).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error deleting account")
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}

// ownedFeedback loads the :id entry scoped to the authenticated business and
// writes the error response itself when the lookup fails.
func (m *ManageController) ownedFeedback(c *gin.Context) (models.Feedback, bool) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return models.Feedback{}, false
	}

	feedbackID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Feedback not found")
		return models.Feedback{}, false
	}

	var feedback models.Feedback
	result := m.DB.Where("id = ? AND business_id = ?", feedbackID, businessID).First(&feedback)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Feedback not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Error loading feedback")
		}
		return models.Feedback{}, false
	}
	return feedback, true
}
