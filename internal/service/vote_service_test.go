package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/pkg/apperror"
)

// memVoteRepo honors the vote ledger contract in memory: one vote per
// (post, voter), no self-votes, aggregates applied through the shared step.
type memVoteRepo struct {
	posts map[uuid.UUID]*model.Post
	votes map[[2]uuid.UUID]*model.Vote
}

func newMemVoteRepo(posts ...*model.Post) *memVoteRepo {
	r := &memVoteRepo{
		posts: make(map[uuid.UUID]*model.Post),
		votes: make(map[[2]uuid.UUID]*model.Vote),
	}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *memVoteRepo) CastVote(ctx context.Context, vote *model.Vote, now time.Time) (*model.Post, error) {
	post, ok := r.posts[vote.PostID]
	if !ok || post.Status != model.PostStatusPublished {
		return nil, apperror.New(http.StatusNotFound, "post not found", apperror.ErrNotFound)
	}
	if post.UserID == vote.UserID {
		return nil, apperror.New(http.StatusForbidden, "owner cannot vote on own post", apperror.ErrForbidden)
	}
	key := [2]uuid.UUID{vote.PostID, vote.UserID}
	if _, dup := r.votes[key]; dup {
		return nil, apperror.New(http.StatusConflict, "already voted", apperror.ErrConflict)
	}
	r.votes[key] = vote
	engagement.ApplyVote(post, engagement.VoteType(vote.VoteType), now)
	snapshot := *post
	return &snapshot, nil
}

func (r *memVoteRepo) FindByPostAndUser(ctx context.Context, postID, userID string) (*model.Vote, error) {
	return nil, errors.New("not implemented")
}

func publishedPost(author uuid.UUID) *model.Post {
	return &model.Post{
		ID:        uuid.New(),
		UserID:    author,
		Status:    model.PostStatusPublished,
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCastVote(t *testing.T) {
	author := uuid.New()
	voter := uuid.New()
	post := publishedPost(author)
	svc := NewVoteService(newMemVoteRepo(post), nil, nil, nil)

	result, err := svc.CastVote(context.Background(), voter, post.ID, "strongly_agree")
	if err != nil {
		t.Fatalf("CastVote: %v", err)
	}
	if result.Vote.Value != 2 || result.Vote.VoteType != "strongly_agree" {
		t.Errorf("vote = %+v", result.Vote)
	}
	if result.Post.StronglyAgreeCount != 1 || result.Post.TotalVotes != 1 {
		t.Errorf("post counters = %+v", result.Post)
	}
	if result.Post.WeightedScore != 2 {
		t.Errorf("weighted score = %d, want 2", result.Post.WeightedScore)
	}
	if result.Post.HotScore <= 0 {
		t.Errorf("hot score not refreshed: %f", result.Post.HotScore)
	}
	if result.Consensus.AgreePct != 100 {
		t.Errorf("consensus = %+v", result.Consensus)
	}
}

func TestCastVoteInvalidType(t *testing.T) {
	post := publishedPost(uuid.New())
	svc := NewVoteService(newMemVoteRepo(post), nil, nil, nil)

	_, err := svc.CastVote(context.Background(), uuid.New(), post.ID, "upvote")
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCastVoteDuplicate(t *testing.T) {
	post := publishedPost(uuid.New())
	repo := newMemVoteRepo(post)
	svc := NewVoteService(repo, nil, nil, nil)
	voter := uuid.New()

	if _, err := svc.CastVote(context.Background(), voter, post.ID, "agree"); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	_, err := svc.CastVote(context.Background(), voter, post.ID, "disagree")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second vote err = %v, want ErrConflict", err)
	}

	// Counters must have moved exactly once.
	if post.TotalVotes != 1 || post.AgreeCount != 1 || post.DisagreeCount != 0 {
		t.Fatalf("counters changed more than once: %+v", post)
	}
}

func TestCastVoteOwnPost(t *testing.T) {
	author := uuid.New()
	post := publishedPost(author)
	svc := NewVoteService(newMemVoteRepo(post), nil, nil, nil)

	_, err := svc.CastVote(context.Background(), author, post.ID, "agree")
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCastVoteMissingPost(t *testing.T) {
	svc := NewVoteService(newMemVoteRepo(), nil, nil, nil)

	_, err := svc.CastVote(context.Background(), uuid.New(), uuid.New(), "agree")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCastVoteCounterInvariant(t *testing.T) {
	post := publishedPost(uuid.New())
	svc := NewVoteService(newMemVoteRepo(post), nil, nil, nil)

	types := []string{"strongly_disagree", "disagree", "neutral", "agree", "strongly_agree"}
	for i, raw := range types {
		if _, err := svc.CastVote(context.Background(), uuid.New(), post.ID, raw); err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}
	}

	sum := post.StronglyDisagreeCount + post.DisagreeCount + post.NeutralCount +
		post.AgreeCount + post.StronglyAgreeCount
	if sum != post.TotalVotes || post.TotalVotes != len(types) {
		t.Fatalf("counter sum %d, total %d, want %d", sum, post.TotalVotes, len(types))
	}
	if post.WeightedScore != 0 {
		t.Fatalf("balanced votes should net zero, got %d", post.WeightedScore)
	}
}
