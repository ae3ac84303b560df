package engagement

import (
	"errors"
	"testing"
	"time"

	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/pkg/apperror"
)

func TestParseVoteType(t *testing.T) {
	cases := map[string]int{
		"strongly_disagree": -2,
		"disagree":          -1,
		"neutral":           0,
		"agree":             1,
		"strongly_agree":    2,
	}
	for raw, want := range cases {
		vt, err := ParseVoteType(raw)
		if err != nil {
			t.Fatalf("ParseVoteType(%q): %v", raw, err)
		}
		if vt.Value() != want {
			t.Errorf("%q value = %d, want %d", raw, vt.Value(), want)
		}
	}
}

func TestParseVoteTypeRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "upvote", "AGREE", "strongly agree"} {
		if _, err := ParseVoteType(raw); !errors.Is(err, apperror.ErrInvalidInput) {
			t.Errorf("ParseVoteType(%q) = %v, want ErrInvalidInput", raw, err)
		}
	}
}

func TestApplyVoteKeepsCountersConsistent(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	post := &model.Post{CreatedAt: t0}

	seq := []VoteType{
		VoteAgree, VoteAgree, VoteStronglyAgree, VoteNeutral,
		VoteDisagree, VoteStronglyDisagree, VoteAgree,
	}
	wantWeighted := 0
	for _, vt := range seq {
		ApplyVote(post, vt, t0)
		wantWeighted += vt.Value()

		sum := post.StronglyDisagreeCount + post.DisagreeCount + post.NeutralCount +
			post.AgreeCount + post.StronglyAgreeCount
		if sum != post.TotalVotes {
			t.Fatalf("counter sum %d != total votes %d", sum, post.TotalVotes)
		}
	}

	if post.TotalVotes != len(seq) {
		t.Errorf("total votes = %d, want %d", post.TotalVotes, len(seq))
	}
	if post.WeightedScore != wantWeighted {
		t.Errorf("weighted score = %d, want %d", post.WeightedScore, wantWeighted)
	}
	if post.AgreeCount != 3 || post.StronglyAgreeCount != 1 {
		t.Errorf("agree buckets = %d/%d, want 3/1", post.AgreeCount, post.StronglyAgreeCount)
	}

	want := HotScore(post.TotalVotes, post.CommentCount, t0, t0)
	if post.HotScore != want {
		t.Errorf("hot score not refreshed: got %f, want %f", post.HotScore, want)
	}
}

func TestApplyCommentRefreshesScore(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	post := &model.Post{CreatedAt: t0}

	ApplyVote(post, VoteAgree, t0)
	scoreAfterVote := post.HotScore

	ApplyComment(post, t0)
	if post.CommentCount != 1 {
		t.Fatalf("comment count = %d, want 1", post.CommentCount)
	}
	if post.HotScore <= scoreAfterVote {
		t.Fatalf("comment should raise the fresh score: %f <= %f", post.HotScore, scoreAfterVote)
	}
	want := HotScore(post.TotalVotes, post.CommentCount, t0, t0)
	if post.HotScore != want {
		t.Fatalf("comment path must land on the shared recompute: got %f, want %f", post.HotScore, want)
	}
}

func TestConsensusFor(t *testing.T) {
	post := &model.Post{
		StronglyDisagreeCount: 1,
		DisagreeCount:         1,
		NeutralCount:          1,
		AgreeCount:            1,
		StronglyAgreeCount:    1,
		TotalVotes:            5,
	}
	c := ConsensusFor(post)
	if c.AgreePct != 40 || c.DisagreePct != 40 || c.NeutralPct != 20 {
		t.Fatalf("consensus = %+v, want 40/20/40", c)
	}

	empty := ConsensusFor(&model.Post{})
	if empty.AgreePct != 0 || empty.NeutralPct != 0 || empty.DisagreePct != 0 {
		t.Fatalf("empty post consensus should be all zero, got %+v", empty)
	}
}
