package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"feedback-hero/config"
	"feedback-hero/models"
	"feedback-hero/utils"
)

// utf8BOM lets Excel detect the encoding of exported CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportController produces the CSV/JSON feedback exports and the printable
// QR code pointing at the public feedback page.
type ExportController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewExportController(db *gorm.DB, cfg *config.Config) *ExportController {
	return &ExportController{DB: db, Cfg: cfg}
}

// Export streams the business's feedback for a period as CSV (default) or
// JSON.
func (e *ExportController) Export(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	period := c.DefaultQuery("period", "all")
	format := c.DefaultQuery("format", "csv")

	query := e.DB.Where("business_id = ?", businessID)
	now := time.Now()
	switch period {
	case "today":
		query = query.Where("timestamp >= ?", utils.BeginningOfDay(now))
	case "week":
		query = query.Where("timestamp >= ?", now.AddDate(0, 0, -7))
	case "month":
		query = query.Where("timestamp >= ?", now.AddDate(0, 0, -30))
	}

	var records []models.Feedback
	if err := query.Order("timestamp desc").Find(&records).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error exporting feedback")
		return
	}

	if format == "json" {
		c.JSON(http.StatusOK, gin.H{
			"feedback":    records,
			"total":       len(records),
			"exported_at": time.Now().Format(time.RFC3339),
		})
		return
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	writer := csv.NewWriter(&buf)

	header := []string{
		"ID", "Date", "Time", "Overall Rating",
		"Food", "Service", "Staff", "Cleanliness", "Value",
		"NPS Score", "Comment", "Reviewed",
	}
	if err := writer.Write(header); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error exporting feedback")
		return
	}

	for _, f := range records {
		reviewed := "No"
		if f.Reviewed {
			reviewed = "Yes"
		}
		row := []string{
			strconv.FormatUint(uint64(f.ID), 10),
			f.Timestamp.Format("2006-01-02"),
			f.Timestamp.Format("15:04:05"),
			strconv.Itoa(f.OverallRating),
			optionalField(f.FoodRating),
			optionalField(f.ServiceRating),
			optionalField(f.StaffRating),
			optionalField(f.CleanlinessRating),
			optionalField(f.ValueRating),
			optionalField(f.NPSScore),
			commentField(f.Comment),
			reviewed,
		}
		if err := writer.Write(row); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Error exporting feedback")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error exporting feedback")
		return
	}

	filename := fmt.Sprintf("feedback_%s_%s.csv", period, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// QRCode renders the public feedback URL as a printable PNG.
func (e *ExportController) QRCode(c *gin.Context) {
	businessID, ok := currentBusinessID(c)
	if !ok {
		return
	}

	var business models.Business
	if err := e.DB.First(&business, "id = ?", businessID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	png, err := qrcode.Encode(strings.TrimRight(e.Cfg.PublicURL, "/"), qrcode.Low, 512)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Error generating QR code")
		return
	}

	filename := strings.ToLower(strings.ReplaceAll(business.Name, " ", "_")) + "_feedback_qr.png"
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "image/png", png)
}

func optionalField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func commentField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
