package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/pkg/apperror"
)

type CommentRepository interface {
	// Create inserts the comment and bumps the post's comment count in one
	// transaction, refreshing the cached hot score through the same step the
	// vote path uses.
	Create(ctx context.Context, comment *model.Comment, now time.Time) (*model.Post, error)

	// FindByPostID returns the post's published comments in creation order.
	// Numbering walks parent links, so the returned set must be parent-closed:
	// nothing writes a deleted status today, which keeps that true. A future
	// delete surface must keep deleted parents visible as placeholders here
	// rather than filtering them out, or their replies become unreachable.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment, now time.Time) (*model.Post, error) {
	var updated *model.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", comment.PostID).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(http.StatusNotFound, "post not found", apperror.ErrNotFound)
			}
			return err
		}
		if post.Status != model.PostStatusPublished {
			return apperror.New(http.StatusNotFound, "post does not accept comments", apperror.ErrNotFound)
		}

		if comment.ParentID != nil {
			var parent model.Comment
			if err := tx.Where("id = ? AND post_id = ?", comment.ParentID, comment.PostID).
				First(&parent).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.New(http.StatusNotFound, "parent comment not found", apperror.ErrNotFound)
				}
				return err
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		engagement.ApplyComment(&post, now)

		if err := tx.Model(&model.Post{}).Where("id = ?", post.ID).
			Updates(map[string]any{
				"comment_count": post.CommentCount,
				"hot_score":     post.HotScore,
			}).Error; err != nil {
			return err
		}

		updated = &post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *commentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND status = ?", postID, model.CommentStatusPublished).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
