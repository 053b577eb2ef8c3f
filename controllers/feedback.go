package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedback-hero/config"
	"feedback-hero/models"
	"feedback-hero/services"
	"feedback-hero/utils"
)

const sessionCookie = "feedback_session"

// FeedbackController serves the anonymous, public-facing endpoints: the
// submission call, the cooldown probe, and the aggregate teaser stats.
type FeedbackController struct {
	DB      *gorm.DB
	Limiter *services.RateLimiter
	Cfg     *config.Config
}

func NewFeedbackController(db *gorm.DB, limiter *services.RateLimiter, cfg *config.Config) *FeedbackController {
	return &FeedbackController{DB: db, Limiter: limiter, Cfg: cfg}
}

// Submit accepts one customer feedback submission for the active business.
func (f *FeedbackController) Submit(c *gin.Context) {
	var input services.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No data provided")
		return
	}

	business, ok := f.activeBusiness(c)
	if !ok {
		return
	}

	sessionID := f.visitorSession(c)

	feedback, err := services.SubmitFeedback(c.Request.Context(), f.DB, f.Limiter, sessionID, business.ID, input)
	if err != nil {
		var limited *services.RateLimitedError
		switch {
		case errors.As(err, &limited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":        fmt.Sprintf("Please wait %d more minute(s) before submitting again", limited.MinutesRemaining),
				"wait_minutes": limited.MinutesRemaining,
			})
		case errors.Is(err, services.ErrInvalidInput):
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid overall rating")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "An error occurred while submitting feedback")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Thank you for your feedback!",
		"feedback_id": feedback.ID,
	})
}

// CheckLimit tells the kiosk frontend whether a submission would pass the
// cooldown right now.
func (f *FeedbackController) CheckLimit(c *gin.Context) {
	sessionID := f.visitorSession(c)
	allowed, minutes := f.Limiter.CanSubmit(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{
		"can_submit":   allowed,
		"wait_minutes": minutes,
	})
}

// PublicStats exposes aggregate statistics for the trailing 30 days without
// revealing individual submissions.
func (f *FeedbackController) PublicStats(c *gin.Context) {
	business, ok := f.activeBusiness(c)
	if !ok {
		return
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	var records []models.Feedback
	if err := f.DB.
		Where("business_id = ? AND timestamp >= ?", business.ID, thirtyDaysAgo).
		Find(&records).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading statistics")
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"total_responses":  0,
			"average_rating":   0,
			"response_message": "Be the first to leave feedback!",
		})
		return
	}

	summary := services.PeriodSummary(records)
	c.JSON(http.StatusOK, gin.H{
		"total_responses": summary.Count,
		"average_rating":  summary.AvgRating,
		"nps_score":       services.NPSScore(records),
		"business_name":   business.Name,
	})
}

// activeBusiness resolves the single tenant all public feedback is collected
// for: the first (usually only) business record.
func (f *FeedbackController) activeBusiness(c *gin.Context) (models.Business, bool) {
	var business models.Business
	if err := f.DB.Order("created_at asc").First(&business).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return models.Business{}, false
	}
	return business, true
}

// visitorSession returns the caller's anonymous session id, issuing a new
// cookie when none is present yet.
func (f *FeedbackController) visitorSession(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetCookie(sessionCookie, id, 7*24*3600, "/", "", false, true)
	return id
}
