package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSubmission(t *testing.T) {
	businessID := uuid.New()
	now := time.Now()

	feedback, err := NormalizeSubmission(SubmissionInput{
		OverallRating: float64(2),
		FoodRating:    float64(4),
		NPSScore:      "9",
		Comment:       "  great place  ",
	}, businessID, now)
	require.NoError(t, err)

	assert.Equal(t, businessID, feedback.BusinessID)
	assert.Equal(t, now, feedback.Timestamp)
	assert.Equal(t, 2, feedback.OverallRating)
	require.NotNil(t, feedback.FoodRating)
	assert.Equal(t, 4, *feedback.FoodRating)
	require.NotNil(t, feedback.NPSScore)
	assert.Equal(t, 9, *feedback.NPSScore)
	require.NotNil(t, feedback.Comment)
	assert.Equal(t, "great place", *feedback.Comment)
}

func TestNormalizeSubmissionRequiresOverallRating(t *testing.T) {
	_, err := NormalizeSubmission(SubmissionInput{}, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormalizeSubmission(SubmissionInput{OverallRating: float64(4)}, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormalizeSubmission(SubmissionInput{OverallRating: "sad"}, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeSubmissionCoercesOutOfRangeToAbsent(t *testing.T) {
	feedback, err := NormalizeSubmission(SubmissionInput{
		OverallRating: float64(2),
		FoodRating:    float64(999),
		ServiceRating: "not a number",
		StaffRating:   float64(0),
		NPSScore:      float64(11),
	}, uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, feedback.OverallRating)
	assert.Nil(t, feedback.FoodRating)
	assert.Nil(t, feedback.ServiceRating)
	assert.Nil(t, feedback.StaffRating)
	assert.Nil(t, feedback.NPSScore)
}

func TestNormalizeSubmissionComment(t *testing.T) {
	feedback, err := NormalizeSubmission(SubmissionInput{
		OverallRating: float64(3),
		Comment:       "   ",
	}, uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, feedback.Comment)

	long := strings.Repeat("x", 300)
	feedback, err = NormalizeSubmission(SubmissionInput{
		OverallRating: float64(3),
		Comment:       long,
	}, uuid.New(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, feedback.Comment)
	assert.Len(t, *feedback.Comment, MaxCommentLength)
}
