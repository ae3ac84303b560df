package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CommentStatusPublished = "published"
	CommentStatusDeleted   = "deleted"
)

// Comment forms a forest per post: ParentID nil means top-level, otherwise it
// references another comment on the same post. Depth is unbounded. Display
// numbering is computed on read and never stored.
type Comment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	UserID   uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	User     User       `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Content  string     `gorm:"type:text;not null" json:"content"`
	Status   string     `gorm:"size:20;not null;default:published" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
