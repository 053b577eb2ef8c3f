package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"feedback-hero/models"
	"feedback-hero/utils"
)

// MaxCommentLength caps free-text comments.
const MaxCommentLength = 200

// SubmissionInput is the raw, untyped submission payload. Rating fields are
// interface{} so kiosks sending numeric strings are handled the same way as
// ones sending JSON numbers.
type SubmissionInput struct {
	OverallRating     interface{} `json:"overall_rating"`
	FoodRating        interface{} `json:"food_rating"`
	ServiceRating     interface{} `json:"service_rating"`
	StaffRating       interface{} `json:"staff_rating"`
	CleanlinessRating interface{} `json:"cleanliness_rating"`
	ValueRating       interface{} `json:"value_rating"`
	NPSScore          interface{} `json:"nps_score"`
	Comment           string      `json:"comment"`
}

// NormalizeSubmission turns raw input into a Feedback candidate. The overall
// rating is required and must be 1, 2 or 3; every optional field degrades to
// absent on bad input instead of failing the submission.
func NormalizeSubmission(input SubmissionInput, businessID uuid.UUID, now time.Time) (models.Feedback, error) {
	overall, ok := utils.ParseInt(input.OverallRating)
	if !ok || overall < 1 || overall > 3 {
		return models.Feedback{}, fmt.Errorf("%w: overall_rating must be 1, 2 or 3", ErrInvalidInput)
	}

	return models.Feedback{
		BusinessID:        businessID,
		Timestamp:         now,
		OverallRating:     overall,
		FoodRating:        utils.ParseOptionalInRange(input.FoodRating, 1, 5),
		ServiceRating:     utils.ParseOptionalInRange(input.ServiceRating, 1, 5),
		StaffRating:       utils.ParseOptionalInRange(input.StaffRating, 1, 5),
		CleanlinessRating: utils.ParseOptionalInRange(input.CleanlinessRating, 1, 5),
		ValueRating:       utils.ParseOptionalInRange(input.ValueRating, 1, 5),
		NPSScore:          utils.ParseOptionalInRange(input.NPSScore, 0, 10),
		Comment:           utils.NormalizeComment(input.Comment, MaxCommentLength),
	}, nil
}
