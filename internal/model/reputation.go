package model

import (
	"time"

	"github.com/google/uuid"
)

// UserCategoryPoints is the per-(user, category) reputation row. It is created
// lazily on the first qualifying action in a category. Points and
// CurrentBadgeLevel can fall with login decay; PeakPoints and PeakBadgeLevel
// only ever go up.
type UserCategoryPoints struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
	Category   Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Points            int `gorm:"not null;default:0" json:"points"`
	PeakPoints        int `gorm:"not null;default:0" json:"peak_points"`
	CurrentBadgeLevel int `gorm:"not null;default:1" json:"current_badge_level"`
	PeakBadgeLevel    int `gorm:"not null;default:1" json:"peak_badge_level"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PointLog is an append-only audit trail of every point mutation, including
// decay, so balances can be reproduced from stored facts.
type PointLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index:idx_points_user_date,priority:1;not null" json:"user_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null" json:"category_id"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	Amount     int       `gorm:"not null" json:"amount"`
	CreatedAt  time.Time `gorm:"index:idx_points_user_date,priority:2" json:"created_at"`
}
