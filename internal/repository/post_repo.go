package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ruangpendapat.com/forum/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindRecent(ctx context.Context, since int, limit int) ([]*model.Post, error)
	FindTopByHotScore(ctx context.Context, limit int) ([]*model.Post, error)
	UpdateHotScore(ctx context.Context, id uuid.UUID, score float64) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindRecent returns published posts created in the last `since` days.
func (r *postRepository) FindRecent(ctx context.Context, since int, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	q := r.db.WithContext(ctx).
		Where("status = ?", model.PostStatusPublished).
		Where("created_at >= NOW() - (? * INTERVAL '1 day')", since).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&posts).Error
	return posts, err
}

func (r *postRepository) FindTopByHotScore(ctx context.Context, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Where("status = ?", model.PostStatusPublished).
		Order("hot_score DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) UpdateHotScore(ctx context.Context, id uuid.UUID, score float64) error {
	return r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("hot_score", score).Error
}

func (r *postRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var posts []*model.Post
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Where("id IN ?", ids).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	// Preserve the caller's ranking order.
	byID := make(map[uuid.UUID]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
