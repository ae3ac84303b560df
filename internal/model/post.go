package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PostStatusPublished = "published"
	PostStatusDeleted   = "deleted"
)

// Post carries the sentiment counters, the derived aggregates, and the cached
// hot score. Invariants maintained by the vote/comment write paths:
// TotalVotes equals the sum of the five counters, WeightedScore equals the sum
// of signed vote values, and HotScore matches the counters as of the last
// recompute. HotScore decays with wall-clock time, so readers that need an
// exact current ranking must recompute instead of trusting the column.
type Post struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID *uuid.UUID `gorm:"type:uuid" json:"category_id"`
	Category   Category   `gorm:"constraint:OnDelete:SET NULL" json:"category"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	User       User       `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	Status     string     `gorm:"size:20;not null;default:published" json:"status"`

	StronglyDisagreeCount int `gorm:"default:0" json:"strongly_disagree_count"`
	DisagreeCount         int `gorm:"default:0" json:"disagree_count"`
	NeutralCount          int `gorm:"default:0" json:"neutral_count"`
	AgreeCount            int `gorm:"default:0" json:"agree_count"`
	StronglyAgreeCount    int `gorm:"default:0" json:"strongly_agree_count"`

	TotalVotes    int     `gorm:"default:0" json:"total_votes"`
	CommentCount  int     `gorm:"default:0" json:"comment_count"`
	WeightedScore int     `gorm:"default:0" json:"weighted_score"`
	HotScore      float64 `gorm:"default:0" json:"hot_score"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}
