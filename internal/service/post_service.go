package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/internal/repository"
	"ruangpendapat.com/forum/pkg/apperror"
)

type CreatePostInput struct {
	Title      string     `json:"title" binding:"required,min=3,max=255"`
	Content    string     `json:"content" binding:"required,min=1"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// PostView is a post with its derived display fields: the consensus breakdown
// and the score recomputed for the instant of the read, since the stored one
// is only a cache.
type PostView struct {
	*model.Post
	Consensus       engagement.Consensus `json:"consensus"`
	CurrentHotScore float64              `json:"current_hot_score"`
}

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, input CreatePostInput) (*model.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*PostView, error)
	HotFeed(ctx context.Context, limit int) ([]*PostView, error)
	Search(ctx context.Context, query string, limit int) ([]*PostView, error)
}

type postService struct {
	postRepo          repository.PostRepository
	categoryRepo      repository.CategoryRepository
	reputationService ReputationService
	rankingService    RankingService
	searchService     SearchService
}

func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, reputationService ReputationService, rankingService RankingService, searchService SearchService) PostService {
	return &postService{
		postRepo:          postRepo,
		categoryRepo:      categoryRepo,
		reputationService: reputationService,
		rankingService:    rankingService,
		searchService:     searchService,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, input CreatePostInput) (*model.Post, error) {
	if input.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperror.New(http.StatusNotFound, "category not found", apperror.ErrNotFound)
		}
	}

	post := &model.Post{
		UserID:     userID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Content:    input.Content,
		Status:     model.PostStatusPublished,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	go s.afterCreate(userID, post)

	return post, nil
}

func (s *postService) afterCreate(userID uuid.UUID, post *model.Post) {
	ctx := context.Background()

	if s.reputationService != nil && post.CategoryID != nil {
		if _, err := s.reputationService.AwardPoints(ctx, userID, *post.CategoryID, PointsPostCreate, ActionPostCreate); err != nil {
			log.Printf("failed to award post points to user %s: %v", userID, err)
		}
	}

	if s.searchService != nil {
		if err := s.searchService.IndexPost(post); err != nil {
			log.Printf("failed to index post %s: %v", post.ID, err)
		}
	}
}

func (s *postService) GetPost(ctx context.Context, id uuid.UUID) (*PostView, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "post not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return viewOf(post, time.Now()), nil
}

func (s *postService) HotFeed(ctx context.Context, limit int) ([]*PostView, error) {
	posts, err := s.rankingService.HotPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	return viewsOf(posts), nil
}

func (s *postService) Search(ctx context.Context, query string, limit int) ([]*PostView, error) {
	if s.searchService == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "search is not available", nil)
	}

	rawIDs, err := s.searchService.Search(query, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	posts, err := s.postRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return viewsOf(posts), nil
}

func viewOf(post *model.Post, now time.Time) *PostView {
	return &PostView{
		Post:            post,
		Consensus:       engagement.ConsensusFor(post),
		CurrentHotScore: engagement.HotScore(post.TotalVotes, post.CommentCount, post.CreatedAt, now),
	}
}

func viewsOf(posts []*model.Post) []*PostView {
	now := time.Now()
	views := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, viewOf(p, now))
	}
	return views
}
