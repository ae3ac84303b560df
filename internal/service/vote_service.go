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

// VoteResult is the snapshot returned to the caller after a successful vote:
// the immutable vote row, the post with its refreshed aggregates, and the
// display consensus derived from them.
type VoteResult struct {
	Vote      *model.Vote          `json:"vote"`
	Post      *model.Post          `json:"post"`
	Consensus engagement.Consensus `json:"consensus"`
}

type VoteService interface {
	CastVote(ctx context.Context, voterID, postID uuid.UUID, rawType string) (*VoteResult, error)
}

type voteService struct {
	voteRepo            repository.VoteRepository
	reputationService   ReputationService
	rankingService      RankingService
	notificationService NotificationService
}

func NewVoteService(voteRepo repository.VoteRepository, reputationService ReputationService, rankingService RankingService, notificationService NotificationService) VoteService {
	return &voteService{
		voteRepo:            voteRepo,
		reputationService:   reputationService,
		rankingService:      rankingService,
		notificationService: notificationService,
	}
}

func (s *voteService) CastVote(ctx context.Context, voterID, postID uuid.UUID, rawType string) (*VoteResult, error) {
	// Validate the sentiment once at the boundary; past this point only the
	// closed enum travels.
	voteType, err := engagement.ParseVoteType(rawType)
	if err != nil {
		return nil, err
	}

	vote := &model.Vote{
		PostID:   postID,
		UserID:   voterID,
		VoteType: string(voteType),
		Value:    voteType.Value(),
	}

	post, err := s.voteRepo.CastVote(ctx, vote, time.Now())
	if err != nil {
		return nil, err
	}

	go s.afterVote(voterID, voteType, post)

	return &VoteResult{
		Vote:      vote,
		Post:      post,
		Consensus: engagement.ConsensusFor(post),
	}, nil
}

// afterVote runs the non-transactional side effects: reputation for the voter,
// the ranking cache, and a notification to the post author. Failures here are
// logged, never surfaced — the vote is already committed.
func (s *voteService) afterVote(voterID uuid.UUID, voteType engagement.VoteType, post *model.Post) {
	ctx := context.Background()

	if s.reputationService != nil && post.CategoryID != nil {
		if _, err := s.reputationService.AwardPoints(ctx, voterID, *post.CategoryID, PointsVoteCast, ActionVoteCast); err != nil {
			log.Printf("failed to award vote points to user %s: %v", voterID, err)
		}
	}

	if s.rankingService != nil {
		s.rankingService.RefreshPost(ctx, post)
	}

	if s.notificationService != nil {
		notification := &model.Notification{
			UserID:     post.UserID,
			ActorID:    voterID,
			EntityID:   post.ID,
			EntityType: "post",
			Type:       "vote",
			Message:    fmt.Sprintf("Someone voted %s on your post", voteType),
		}
		if err := s.notificationService.Notify(ctx, notification); err != nil {
			log.Printf("failed to notify post author %s: %v", post.UserID, err)
		}
	}
}
