package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is written exactly once per (post, user) and never updated or deleted
// afterwards. There is no change/retract flow.
type Vote struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_voter,priority:1" json:"post_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_voter,priority:2" json:"user_id"`

	VoteType string `gorm:"size:20;not null" json:"vote_type"`
	Value    int    `gorm:"not null" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
