package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedback-hero/utils"
)

// Business is the tenant that collects feedback. Single-tenant deployments
// have exactly one row; the registration flow can create more.
type Business struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Settings     JSONB     `gorm:"type:text;default:'{}'" json:"settings"`
	CreatedAt    time.Time `json:"created_at"`

	Feedback []Feedback `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// SetPassword stores the bcrypt hash of a plaintext password. The plaintext
// itself is never persisted.
func (b *Business) SetPassword(password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	b.PasswordHash = hashed
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (b *Business) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, b.PasswordHash)
}

// Setting returns a single settings value, nil when absent.
func (b *Business) Setting(key string) interface{} {
	if b.Settings == nil {
		return nil
	}
	return b.Settings[key]
}

// JSONB stores an open-ended string-keyed settings blob as serialized JSON.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(j)
	return string(raw), err
}

func (j *JSONB) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*j = JSONB{}
		return nil
	default:
		return errors.New("unsupported type for JSONB scan")
	}
	if len(raw) == 0 {
		*j = JSONB{}
		return nil
	}
	return json.Unmarshal(raw, j)
}
