package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/pkg/apperror"
)

type VoteRepository interface {
	// CastVote inserts the vote and folds it into the post's aggregates in one
	// transaction. The post row is locked for the duration, so two concurrent
	// votes on the same post serialize instead of losing an increment.
	CastVote(ctx context.Context, vote *model.Vote, now time.Time) (*model.Post, error)
	FindByPostAndUser(ctx context.Context, postID, userID string) (*model.Vote, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) CastVote(ctx context.Context, vote *model.Vote, now time.Time) (*model.Post, error) {
	var updated *model.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", vote.PostID).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.New(http.StatusNotFound, "post not found", apperror.ErrNotFound)
			}
			return err
		}
		if post.Status != model.PostStatusPublished {
			return apperror.New(http.StatusNotFound, "post is not votable", apperror.ErrNotFound)
		}
		if post.UserID == vote.UserID {
			return apperror.New(http.StatusForbidden, "owner cannot vote on own post", apperror.ErrForbidden)
		}

		var existing int64
		if err := tx.Model(&model.Vote{}).
			Where("post_id = ? AND user_id = ?", vote.PostID, vote.UserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperror.New(http.StatusConflict, "already voted", apperror.ErrConflict)
		}

		if err := tx.Create(vote).Error; err != nil {
			// The unique index backs up the check above under concurrency.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.New(http.StatusConflict, "already voted", apperror.ErrConflict)
			}
			return err
		}

		engagement.ApplyVote(&post, engagement.VoteType(vote.VoteType), now)

		if err := tx.Model(&model.Post{}).Where("id = ?", post.ID).
			Updates(map[string]any{
				"strongly_disagree_count": post.StronglyDisagreeCount,
				"disagree_count":          post.DisagreeCount,
				"neutral_count":           post.NeutralCount,
				"agree_count":             post.AgreeCount,
				"strongly_agree_count":    post.StronglyAgreeCount,
				"total_votes":             post.TotalVotes,
				"weighted_score":          post.WeightedScore,
				"hot_score":               post.HotScore,
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

func (r *voteRepository) FindByPostAndUser(ctx context.Context, postID, userID string) (*model.Vote, error) {
	var vote model.Vote
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}
