package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/internal/repository"
)

type CreateCommentInput struct {
	Content  string     `json:"content" binding:"required,min=1,max=10000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

type CommentService interface {
	CreateComment(ctx context.Context, userID, postID uuid.UUID, input CreateCommentInput) (*model.Comment, error)
	// GetThread returns the post's comment forest with display numbers
	// assigned. Numbering happens on every read, so it always matches the
	// current comment set.
	GetThread(ctx context.Context, postID uuid.UUID) ([]*engagement.CommentNode, error)
}

type commentService struct {
	commentRepo         repository.CommentRepository
	reputationService   ReputationService
	rankingService      RankingService
	notificationService NotificationService
}

func NewCommentService(commentRepo repository.CommentRepository, reputationService ReputationService, rankingService RankingService, notificationService NotificationService) CommentService {
	return &commentService{
		commentRepo:         commentRepo,
		reputationService:   reputationService,
		rankingService:      rankingService,
		notificationService: notificationService,
	}
}

func (s *commentService) CreateComment(ctx context.Context, userID, postID uuid.UUID, input CreateCommentInput) (*model.Comment, error) {
	comment := &model.Comment{
		PostID:   postID,
		ParentID: input.ParentID,
		UserID:   userID,
		Content:  input.Content,
		Status:   model.CommentStatusPublished,
	}

	post, err := s.commentRepo.Create(ctx, comment, time.Now())
	if err != nil {
		return nil, err
	}

	go s.afterComment(userID, comment, post)

	return comment, nil
}

func (s *commentService) afterComment(userID uuid.UUID, comment *model.Comment, post *model.Post) {
	ctx := context.Background()

	if s.reputationService != nil && post.CategoryID != nil {
		if _, err := s.reputationService.AwardPoints(ctx, userID, *post.CategoryID, PointsCommentCreate, ActionCommentCreate); err != nil {
			log.Printf("failed to award comment points to user %s: %v", userID, err)
		}
	}

	if s.rankingService != nil {
		s.rankingService.RefreshPost(ctx, post)
	}

	if s.notificationService != nil && post.UserID != userID {
		notification := &model.Notification{
			UserID:     post.UserID,
			ActorID:    userID,
			EntityID:   post.ID,
			EntityType: "post",
			Type:       "comment",
			Message:    fmt.Sprintf("Someone commented on your post: %s", truncate(post.Title, 40)),
		}
		if err := s.notificationService.Notify(ctx, notification); err != nil {
			log.Printf("failed to notify post author %s: %v", post.UserID, err)
		}
	}
}

func (s *commentService) GetThread(ctx context.Context, postID uuid.UUID) ([]*engagement.CommentNode, error) {
	comments, err := s.commentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return engagement.NumberComments(comments), nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
