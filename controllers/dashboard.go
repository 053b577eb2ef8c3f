package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedback-hero/models"
	"feedback-hero/services"
	"feedback-hero/utils"
)

// DashboardController answers the authenticated analytics queries. All heavy
// lifting is in the services aggregation functions; this layer only fetches
// the right time windows.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Stats backs the main dashboard page: today/week/month snapshots, the 7-day
// chart, the 30-day category averages, and the 30-day NPS.
func (d *DashboardController) Stats(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	now := time.Now()
	todayStart := utils.BeginningOfDay(now)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	todayFeedback, err := d.feedbackSince(businessID, todayStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading statistics")
		return
	}
	weekFeedback, err := d.feedbackSince(businessID, weekAgo)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading statistics")
		return
	}
	monthFeedback, err := d.feedbackSince(businessID, monthAgo)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading statistics")
		return
	}

	var total int64
	if err := d.DB.Model(&models.Feedback{}).
		Where("business_id = ?", businessID).
		Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error loading statistics")
		return
	}

	todaySummary := services.PeriodSummary(todayFeedback)
	weekSummary := services.PeriodSummary(weekFeedback)
	monthSummary := services.PeriodSummary(monthFeedback)

	c.JSON(http.StatusOK, gin.H{
		"today": gin.H{
			"count":      todaySummary.Count,
			"avg_rating": todaySummary.AvgRating,
		},
		"week": gin.H{
			"count":      weekSummary.Count,
			"avg_rating": weekSummary.AvgRating,
		},
		"month": gin.H{
			"count":      monthSummary.Count,
			"avg_rating": monthSummary.AvgRating,
		},
		"daily_chart":     services.DailyBreakdown(weekFeedback, 7, now),
		"categories":      services.CategoryBreakdown(monthFeedback),
		"nps":             services.NPSScore(monthFeedback),
		"total_responses": total,
	})
}

// Summary returns independent period snapshots used by the analytics page.
func (d *DashboardController) Summary(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	now := time.Now()
	periods := []struct {
		name  string
		start *time.Time
	}{
		{"today", timePtr(utils.BeginningOfDay(now))},
		{"yesterday", timePtr(utils.BeginningOfDay(now.AddDate(0, 0, -1)))},
		{"this_week", timePtr(now.AddDate(0, 0, -7))},
		{"this_month", timePtr(now.AddDate(0, 0, -30))},
		{"all_time", nil},
	}

	result := gin.H{}
	for _, period := range periods {
		var records []models.Feedback
		query := d.DB.Where("business_id = ?", businessID)
		if period.start != nil {
			query = query.Where("timestamp >= ?", *period.start)
		}
		if err := query.Find(&records).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Error loading summary")
			return
		}
		result[period.name] = services.PeriodSummary(records)
	}

	c.JSON(http.StatusOK, result)
}

func (d *DashboardController) feedbackSince(businessID uuid.UUID, start time.Time) ([]models.Feedback, error) {
	var records []models.Feedback
	err := d.DB.
		Where("business_id = ? AND timestamp >= ?", businessID, start).
		Find(&records).Error
	return records, err
}

func timePtr(t time.Time) *time.Time {
	return &t
}
