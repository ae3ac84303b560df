package engagement

import (
	"time"

	"ruangpendapat.com/forum/internal/model"
	"ruangpendapat.com/forum/pkg/apperror"
)

// VoteType is the closed set of sentiment buckets. Request payloads are parsed
// into it once at the boundary; everything past that point works with the enum.
type VoteType string

const (
	VoteStronglyDisagree VoteType = "strongly_disagree"
	VoteDisagree         VoteType = "disagree"
	VoteNeutral          VoteType = "neutral"
	VoteAgree            VoteType = "agree"
	VoteStronglyAgree    VoteType = "strongly_agree"
)

var voteValues = map[VoteType]int{
	VoteStronglyDisagree: -2,
	VoteDisagree:         -1,
	VoteNeutral:          0,
	VoteAgree:            1,
	VoteStronglyAgree:    2,
}

// ParseVoteType validates a raw string against the five buckets.
func ParseVoteType(raw string) (VoteType, error) {
	vt := VoteType(raw)
	if _, ok := voteValues[vt]; !ok {
		return "", apperror.New(400, "unknown vote type: "+raw, apperror.ErrInvalidInput)
	}
	return vt, nil
}

// Value returns the signed weight of the bucket (-2..+2).
func (vt VoteType) Value() int {
	return voteValues[vt]
}

// ApplyVote folds one new vote into the post's aggregates: the matching
// sentiment counter, the vote total, the weighted score, and the cached hot
// score. Every vote write must go through here so the counters and the cached
// score can never drift apart. The comment path uses ApplyComment, which ends
// in the same recompute.
func ApplyVote(post *model.Post, vt VoteType, now time.Time) {
	switch vt {
	case VoteStronglyDisagree:
		post.StronglyDisagreeCount++
	case VoteDisagree:
		post.DisagreeCount++
	case VoteNeutral:
		post.NeutralCount++
	case VoteAgree:
		post.AgreeCount++
	case VoteStronglyAgree:
		post.StronglyAgreeCount++
	}
	post.TotalVotes++
	post.WeightedScore += vt.Value()
	post.HotScore = HotScore(post.TotalVotes, post.CommentCount, post.CreatedAt, now)
}

// ApplyComment folds one new comment into the post's aggregates and refreshes
// the cached hot score through the same calculation as ApplyVote.
func ApplyComment(post *model.Post, now time.Time) {
	post.CommentCount++
	post.HotScore = HotScore(post.TotalVotes, post.CommentCount, post.CreatedAt, now)
}

// Consensus groups the five buckets into the three display percentages.
// It is derived for display and never stored.
type Consensus struct {
	AgreePct    float64 `json:"agree_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	DisagreePct float64 `json:"disagree_pct"`
	TotalVotes  int     `json:"total_votes"`
}

func ConsensusFor(post *model.Post) Consensus {
	c := Consensus{TotalVotes: post.TotalVotes}
	if post.TotalVotes == 0 {
		return c
	}
	total := float64(post.TotalVotes)
	c.AgreePct = float64(post.AgreeCount+post.StronglyAgreeCount) / total * 100
	c.NeutralPct = float64(post.NeutralCount) / total * 100
	c.DisagreePct = float64(post.DisagreeCount+post.StronglyDisagreeCount) / total * 100
	return c
}
