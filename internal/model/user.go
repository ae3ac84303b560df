package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`

	// Reputation aggregates across all categories. TotalPoints follows decay;
	// PeakPoints is a permanent high-water mark.
	TotalPoints int `gorm:"default:0" json:"total_points"`
	PeakPoints  int `gorm:"default:0" json:"peak_points"`

	// EquippedBadgeCategoryID, when set, must reference a category where the
	// user holds a badge row (level >= 1 always holds for existing rows).
	EquippedBadgeCategoryID *uuid.UUID `gorm:"type:uuid" json:"equipped_badge_category_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
