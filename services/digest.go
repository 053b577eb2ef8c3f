package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"feedback-hero/models"
	"feedback-hero/utils"
)

// DigestService texts each business owner a daily summary of yesterday's
// feedback. It runs outside the request path and only for businesses that
// opted in by storing a digest_phone setting.
type DigestService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
	spec   string
}

func NewDigestService(db *gorm.DB, accountSID, authToken, from, spec string) *DigestService {
	return &DigestService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		spec: spec,
	}
}

// StartScheduler registers the daily cron job and returns the runner so the
// caller can stop it on shutdown.
func (s *DigestService) StartScheduler() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(s.spec, s.SendDailyDigests); err != nil {
		return nil, fmt.Errorf("invalid digest cron spec %q: %w", s.spec, err)
	}
	c.Start()
	logrus.WithField("spec", s.spec).Info("Daily digest scheduler started")
	return c, nil
}

func (s *DigestService) SendDailyDigests() {
	logrus.Info("Starting daily digest processing")

	var businesses []models.Business
	if err := s.db.Find(&businesses).Error; err != nil {
		logrus.WithError(err).Error("Failed to fetch businesses for digest")
		return
	}

	for _, business := range businesses {
		phone, _ := business.Setting("digest_phone").(string)
		if phone == "" {
			continue
		}
		s.sendDigest(business, phone)
	}

	logrus.Info("Daily digest processing completed")
}

func (s *DigestService) sendDigest(business models.Business, phone string) {
	today := utils.BeginningOfDay(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	var records []models.Feedback
	if err := s.db.
		Where("business_id = ? AND timestamp >= ? AND timestamp < ?", business.ID, yesterday, today).
		Find(&records).Error; err != nil {
		logrus.WithError(err).WithField("business", business.ID).Error("Failed to fetch feedback for digest")
		return
	}

	summary := PeriodSummary(records)
	nps := NPSScore(records)
	message := fmt.Sprintf(
		"%s yesterday: %d feedback responses, avg rating %.2f (happy %d / neutral %d / sad %d), NPS %.1f",
		business.Name, summary.Count, summary.AvgRating, summary.Happy, summary.Neutral, summary.Sad, nps,
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		logrus.WithError(err).WithField("to", phone).Error("Failed to send digest")
		return
	}
	if resp.Sid != nil {
		logrus.WithFields(logrus.Fields{"to": phone, "sid": *resp.Sid}).Info("Digest sent")
	}
}
