package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one anonymous customer submission. The overall rating is the
// coarse sad/neutral/happy scale; the detail ratings and the NPS answer are
// optional and stored as NULL when the customer skipped them.
type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Timestamp  time.Time `gorm:"index;not null" json:"timestamp"`

	OverallRating     int  `gorm:"not null" json:"overall_rating"` // 1=sad, 2=neutral, 3=happy
	FoodRating        *int `json:"food_rating"`                    // 1-5
	ServiceRating     *int `json:"service_rating"`                 // 1-5
	StaffRating       *int `json:"staff_rating"`                   // 1-5
	CleanlinessRating *int `json:"cleanliness_rating"`             // 1-5
	ValueRating       *int `json:"value_rating"`                   // 1-5
	NPSScore          *int `gorm:"column:nps_score" json:"nps_score"` // 0-10

	Comment *string `gorm:"type:text" json:"comment"`

	Reviewed bool `gorm:"default:false" json:"reviewed"`
}
