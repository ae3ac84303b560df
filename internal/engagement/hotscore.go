package engagement

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity       float64 // decay steepness; higher means recency dominates faster
	WeightVote    float64
	WeightComment float64
	AgeOffset     float64 // hours added to age; keeps brand-new posts finite
}

var DefaultRankConfig = RankConfig{
	Gravity:       1.8,
	WeightVote:    1.0,
	WeightComment: 2.0,
	AgeOffset:     2.0,
}

// HotScore computes the time-decaying popularity score for a post from its
// engagement counts and age. It is pure: the same inputs always produce the
// same score, and the score keeps falling as now advances even with zero new
// engagement, which is why cached values can only be treated as a cache.
func HotScore(totalVotes, commentCount int, createdAt, now time.Time) float64 {
	engagement := float64(totalVotes)*DefaultRankConfig.WeightVote +
		float64(commentCount)*DefaultRankConfig.WeightComment

	if engagement == 0 {
		return 0
	}

	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		// Clock skew between writers; treat the post as brand new.
		ageHours = 0
	}

	decay := math.Pow(ageHours+DefaultRankConfig.AgeOffset, DefaultRankConfig.Gravity)

	return engagement / decay
}
