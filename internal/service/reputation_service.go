package service

import (
	"context"
	"errors"
	"fmt"
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

// Qualifying actions and their fixed award amounts. Configuration, not
// business meaning: handlers pass these in, the ledger just applies deltas.
const (
	ActionVoteCast      = "cast_vote"
	ActionPostCreate    = "create_post"
	ActionCommentCreate = "create_comment"

	PointsVoteCast      = 1
	PointsCommentCreate = 2
	PointsPostCreate    = 5
)

// CategoryBadge pairs a reputation row with its display status.
type CategoryBadge struct {
	CategoryID   uuid.UUID              `json:"category_id"`
	CategoryName string                 `json:"category_name"`
	Points       int                    `json:"points"`
	PeakPoints   int                    `json:"peak_points"`
	Status       engagement.BadgeStatus `json:"status"`
	PeakLevel    int                    `json:"peak_level"`
	PeakName     string                 `json:"peak_name"`
}

type ReputationService interface {
	AwardPoints(ctx context.Context, userID, categoryID uuid.UUID, amount int, action string) (*model.UserCategoryPoints, error)
	ApplyLoginDecay(ctx context.Context, userID uuid.UUID, now time.Time) error
	EquipBadge(ctx context.Context, userID, categoryID uuid.UUID) error
	UserBadges(ctx context.Context, userID uuid.UUID) ([]*CategoryBadge, error)
	Leaderboard(ctx context.Context, limit int) ([]*repository.LeaderboardEntry, error)
	PointHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.PointLog, error)
}

type reputationService struct {
	repo                repository.ReputationRepository
	userRepo            repository.UserRepository
	notificationService NotificationService
}

func NewReputationService(repo repository.ReputationRepository, userRepo repository.UserRepository, notificationService NotificationService) ReputationService {
	return &reputationService{
		repo:                repo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *reputationService) AwardPoints(ctx context.Context, userID, categoryID uuid.UUID, amount int, action string) (*model.UserCategoryPoints, error) {
	// Remember the level before the award so we can detect a badge-up.
	previousLevel := engagement.BadgeLevelMin
	if current, err := s.repo.FindByUserAndCategory(ctx, userID, categoryID); err == nil {
		previousLevel = current.CurrentBadgeLevel
	}

	row, err := s.repo.AwardPoints(ctx, userID, categoryID, amount, action)
	if err != nil {
		return nil, err
	}

	if row.CurrentBadgeLevel > previousLevel && s.notificationService != nil {
		s.sendBadgeUpNotification(userID, categoryID, previousLevel, row.CurrentBadgeLevel)
	}

	return row, nil
}

func (s *reputationService) sendBadgeUpNotification(userID, categoryID uuid.UUID, previousLevel, newLevel int) {
	notification := &model.Notification{
		UserID:     userID,
		ActorID:    userID, // self-triggered
		EntityID:   categoryID,
		EntityType: "badge",
		Type:       "badge_up",
		Message: fmt.Sprintf("Congratulations! You advanced from %s to %s in this category",
			engagement.BadgeName(previousLevel), engagement.BadgeName(newLevel)),
	}
	if err := s.notificationService.Notify(context.Background(), notification); err != nil {
		log.Printf("failed to send badge up notification to user %s: %v", userID, err)
	}
}

// ApplyLoginDecay must run at most once per login session: every call stamps
// the decay clock, so calling it again mid-session would shorten the next
// measured absence.
func (s *reputationService) ApplyLoginDecay(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return s.repo.ApplyLoginDecay(ctx, userID, now)
}

func (s *reputationService) EquipBadge(ctx context.Context, userID, categoryID uuid.UUID) error {
	// Any existing row holds at least a Rookie badge, so holding a badge
	// reduces to the row existing.
	if _, err := s.repo.FindByUserAndCategory(ctx, userID, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusBadRequest, "no badge held in this category", apperror.ErrInvalidInput)
		}
		return err
	}
	return s.userRepo.SetEquippedBadge(ctx, userID, &categoryID)
}

func (s *reputationService) UserBadges(ctx context.Context, userID uuid.UUID) ([]*CategoryBadge, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	badges := make([]*CategoryBadge, 0, len(rows))
	for _, row := range rows {
		badges = append(badges, &CategoryBadge{
			CategoryID:   row.CategoryID,
			CategoryName: row.Category.Name,
			Points:       row.Points,
			PeakPoints:   row.PeakPoints,
			Status:       engagement.StatusForPoints(row.Points),
			PeakLevel:    row.PeakBadgeLevel,
			PeakName:     engagement.BadgeName(row.PeakBadgeLevel),
		})
	}
	return badges, nil
}

func (s *reputationService) Leaderboard(ctx context.Context, limit int) ([]*repository.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.TopUsers(ctx, limit)
}

func (s *reputationService) PointHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.PointLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.PointHistory(ctx, userID, limit)
}
