package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/internal/repository"
)

const (
	hotRankingKey = "hot_ranking"

	// Refresh window: posts younger than this plus the current top slice.
	// Older posts have decayed far enough that their relative order is stable.
	refreshWindowDays = 7
	refreshTopCount   = 30
)

// RankingService maintains the redis sorted set that backs the hot feed. The
// zset is a cache of the per-post hot score; ranked reads recompute scores
// from stored facts and rewrite it, so a stale member can cost a post a few
// positions at most until the next refresh, never its ranking ground truth.
type RankingService interface {
	RefreshPost(ctx context.Context, post *model.Post)
	HotPosts(ctx context.Context, limit int) ([]*model.Post, error)
	RefreshAll(ctx context.Context)
	StartScheduler() error
}

type rankingService struct {
	postRepo    repository.PostRepository
	redisClient *redis.Client
}

func NewRankingService(postRepo repository.PostRepository, redisClient *redis.Client) RankingService {
	return &rankingService{
		postRepo:    postRepo,
		redisClient: redisClient,
	}
}

// RefreshPost pushes a post's just-recomputed cached score into the zset.
func (s *rankingService) RefreshPost(ctx context.Context, post *model.Post) {
	if s.redisClient == nil {
		return
	}
	err := s.redisClient.ZAdd(ctx, hotRankingKey, redis.Z{
		Score:  post.HotScore,
		Member: post.ID.String(),
	}).Err()
	if err != nil {
		log.Printf("failed to update hot ranking for post %s: %v", post.ID, err)
	}
}

// HotPosts returns the current hot feed. Scores are recomputed at read time
// from the stored counters and creation timestamps; the database column and
// the zset are then refreshed as a side effect.
func (s *rankingService) HotPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	candidates, err := s.candidates(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, p := range candidates {
		p.HotScore = engagement.HotScore(p.TotalVotes, p.CommentCount, p.CreatedAt, now)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].HotScore > candidates[j].HotScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	s.writeBack(ctx, candidates)

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, p := range candidates {
		ids = append(ids, p.ID)
	}
	return s.postRepo.FindByIDs(ctx, ids)
}

// RefreshAll recomputes scores for recent and currently-top posts. Cron target.
func (s *rankingService) RefreshAll(ctx context.Context) {
	candidates, err := s.candidates(ctx)
	if err != nil {
		log.Printf("hot score refresh failed: %v", err)
		return
	}

	now := time.Now()
	for _, p := range candidates {
		p.HotScore = engagement.HotScore(p.TotalVotes, p.CommentCount, p.CreatedAt, now)
	}
	s.writeBack(ctx, candidates)

	log.Printf("refreshed hot scores for %d posts", len(candidates))
}

// StartScheduler runs the nightly refresh at 03:00.
func (s *rankingService) StartScheduler() error {
	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		s.RefreshAll(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	return nil
}

// candidates gathers recent posts plus the reigning top slice, deduplicated.
func (s *rankingService) candidates(ctx context.Context) ([]*model.Post, error) {
	recent, err := s.postRepo.FindRecent(ctx, refreshWindowDays, 0)
	if err != nil {
		return nil, err
	}
	top, err := s.postRepo.FindTopByHotScore(ctx, refreshTopCount)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(recent))
	out := make([]*model.Post, 0, len(recent)+len(top))
	for _, p := range recent {
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, p := range top {
		if !seen[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *rankingService) writeBack(ctx context.Context, posts []*model.Post) {
	var members []redis.Z
	for _, p := range posts {
		if err := s.postRepo.UpdateHotScore(ctx, p.ID, p.HotScore); err != nil {
			log.Printf("failed to persist hot score for post %s: %v", p.ID, err)
		}
		members = append(members, redis.Z{Score: p.HotScore, Member: p.ID.String()})
	}
	if s.redisClient != nil && len(members) > 0 {
		if err := s.redisClient.ZAdd(ctx, hotRankingKey, members...).Err(); err != nil {
			log.Printf("failed to rewrite hot ranking: %v", err)
		}
	}
}
