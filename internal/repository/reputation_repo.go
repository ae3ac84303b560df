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

type LeaderboardEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	TotalPoints int       `json:"total_points"`
	PeakPoints  int       `json:"peak_points"`
}

type ReputationRepository interface {
	// AwardPoints upserts the (user, category) row, applies the point delta
	// with a zero floor, recomputes badge levels and peaks, appends a point
	// log entry, and refreshes the user's aggregate totals — all in one
	// transaction with the row locked.
	AwardPoints(ctx context.Context, userID, categoryID uuid.UUID, amount int, action string) (*model.UserCategoryPoints, error)

	// ApplyLoginDecay decays every category row of the user based on time
	// since the stored last login, stamps lastLoginAt = now on all of them,
	// and refreshes aggregates. One transaction per user: a failed write rolls
	// back the whole pass so nobody observes a half-decayed reputation.
	ApplyLoginDecay(ctx context.Context, userID uuid.UUID, now time.Time) error

	FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.UserCategoryPoints, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserCategoryPoints, error)
	TopUsers(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
	PointHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.PointLog, error)
}

type reputationRepository struct {
	db *gorm.DB
}

func NewReputationRepository(db *gorm.DB) ReputationRepository {
	return &reputationRepository{db: db}
}

func (r *reputationRepository) AwardPoints(ctx context.Context, userID, categoryID uuid.UUID, amount int, action string) (*model.UserCategoryPoints, error) {
	var row model.UserCategoryPoints

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categories int64
		if err := tx.Model(&model.Category{}).Where("id = ?", categoryID).Count(&categories).Error; err != nil {
			return err
		}
		if categories == 0 {
			return apperror.New(http.StatusNotFound, "category not found", apperror.ErrNotFound)
		}

		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND category_id = ?", userID, categoryID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lazy creation on the first qualifying action in this category.
			row = model.UserCategoryPoints{
				UserID:            userID,
				CategoryID:        categoryID,
				CurrentBadgeLevel: engagement.BadgeLevelMin,
				PeakBadgeLevel:    engagement.BadgeLevelMin,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
				DoNothing: true,
			}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
			// A concurrent first award can win the insert; DO NOTHING leaves
			// this row zero-valued, so lock and re-read the committed one
			// instead of computing a delta against stale zeros.
			if res.RowsAffected == 0 {
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("user_id = ? AND category_id = ?", userID, categoryID).
					First(&row).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		applyAward(&row, amount)

		if err := tx.Model(&model.UserCategoryPoints{}).
			Where("user_id = ? AND category_id = ?", userID, categoryID).
			Updates(map[string]any{
				"points":              row.Points,
				"peak_points":         row.PeakPoints,
				"current_badge_level": row.CurrentBadgeLevel,
				"peak_badge_level":    row.PeakBadgeLevel,
			}).Error; err != nil {
			return err
		}

		entry := model.PointLog{
			UserID:     userID,
			CategoryID: categoryID,
			Action:     action,
			Amount:     amount,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		return refreshUserTotals(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reputationRepository) ApplyLoginDecay(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []*model.UserCategoryPoints
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Find(&rows).Error; err != nil {
			return err
		}

		for _, row := range rows {
			decayed := engagement.DecayedPoints(row.Points, row.LastLoginAt, now)
			if decayed != row.Points {
				entry := model.PointLog{
					UserID:     userID,
					CategoryID: row.CategoryID,
					Action:     ActionInactivityDecay,
					Amount:     decayed - row.Points,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}

			row.Points = decayed
			row.CurrentBadgeLevel = engagement.BadgeLevelForPoints(decayed)
			stamp := now
			row.LastLoginAt = &stamp

			// Peaks are a permanent high-water mark; decay never touches them.
			if err := tx.Model(&model.UserCategoryPoints{}).
				Where("user_id = ? AND category_id = ?", row.UserID, row.CategoryID).
				Updates(map[string]any{
					"points":              row.Points,
					"current_badge_level": row.CurrentBadgeLevel,
					"last_login_at":       row.LastLoginAt,
				}).Error; err != nil {
				return err
			}
		}

		if len(rows) == 0 {
			return nil
		}
		return refreshUserTotals(tx, userID)
	})
}

// ActionInactivityDecay labels the point log entries the decay pass writes.
const ActionInactivityDecay = "inactivity_decay"

// applyAward folds one point delta into a locked reputation row: zero floor,
// badge level recompute, peaks kept monotone. The row must be the committed
// current one, never a fresh zero value, or a concurrent first award is lost.
func applyAward(row *model.UserCategoryPoints, amount int) {
	points := row.Points + amount
	if points < 0 {
		points = 0
	}
	row.Points = points
	row.CurrentBadgeLevel = engagement.BadgeLevelForPoints(points)
	if points > row.PeakPoints {
		row.PeakPoints = points
	}
	if row.CurrentBadgeLevel > row.PeakBadgeLevel {
		row.PeakBadgeLevel = row.CurrentBadgeLevel
	}
}

// refreshUserTotals recomputes the user's aggregate balances from the category
// rows, keeping the aggregate peak monotone.
func refreshUserTotals(tx *gorm.DB, userID uuid.UUID) error {
	var totals struct {
		Points     int
		PeakPoints int
	}
	if err := tx.Model(&model.UserCategoryPoints{}).
		Select("COALESCE(SUM(points), 0) AS points, COALESCE(SUM(peak_points), 0) AS peak_points").
		Where("user_id = ?", userID).
		Scan(&totals).Error; err != nil {
		return err
	}

	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"total_points": totals.Points,
			"peak_points":  gorm.Expr("GREATEST(peak_points, ?)", totals.PeakPoints),
		}).Error
}

func (r *reputationRepository) FindByUserAndCategory(ctx context.Context, userID, categoryID uuid.UUID) (*model.UserCategoryPoints, error) {
	var row model.UserCategoryPoints
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *reputationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserCategoryPoints, error) {
	var rows []*model.UserCategoryPoints
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("points DESC").
		Find(&rows).Error
	return rows, err
}

func (r *reputationRepository) TopUsers(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	var entries []*LeaderboardEntry
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("id AS user_id, username, total_points, peak_points").
		Order("total_points DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

func (r *reputationRepository) PointHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*model.PointLog, error) {
	var logs []*model.PointLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
