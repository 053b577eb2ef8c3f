package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"feedback-hero/models"
)

// SubmitFeedback runs the full submission pipeline: cooldown check,
// normalization, and the insert. The insert runs in a transaction so a failed
// commit leaves no partial record, and the session's cooldown stamp is only
// recorded after the record is durably stored.
func SubmitFeedback(ctx context.Context, db *gorm.DB, limiter *RateLimiter, sessionID string, businessID uuid.UUID, input SubmissionInput) (models.Feedback, error) {
	if allowed, minutes := limiter.CanSubmit(ctx, sessionID); !allowed {
		return models.Feedback{}, &RateLimitedError{MinutesRemaining: minutes}
	}

	feedback, err := NormalizeSubmission(input, businessID, time.Now())
	if err != nil {
		return models.Feedback{}, err
	}

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&feedback).Error
	}); err != nil {
		return models.Feedback{}, storeErr(err)
	}

	if err := limiter.RecordSubmission(ctx, sessionID); err != nil {
		// The feedback is stored; a lost cooldown stamp only weakens the
		// advisory limit.
		logrus.WithError(err).Warn("Failed to record submission cooldown")
	}

	return feedback, nil
}
