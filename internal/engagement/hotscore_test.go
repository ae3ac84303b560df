package engagement

import (
	"math"
	"testing"
	"time"
)

func TestHotScoreZeroEngagement(t *testing.T) {
	now := time.Now()
	if got := HotScore(0, 0, now, now); got != 0 {
		t.Fatalf("expected 0 for zero engagement, got %f", got)
	}
}

func TestHotScoreNewPost(t *testing.T) {
	// 3 votes + 2 comments at age zero: 7 / 2^1.8
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := HotScore(3, 2, t0, t0)
	want := 7 / math.Pow(2, 1.8)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %f, want %f", got, want)
	}
	if math.Abs(got-2.01) > 0.01 {
		t.Fatalf("expected roughly 2.01 at age zero, got %f", got)
	}
}

func TestHotScoreDecaysWithAge(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := HotScore(3, 2, t0, t0)
	aged := HotScore(3, 2, t0, t0.Add(time.Hour))
	want := 7 / math.Pow(3, 1.8)

	if math.Abs(aged-want) > 1e-9 {
		t.Fatalf("after 1h got %f, want %f", aged, want)
	}
	if aged >= fresh {
		t.Fatalf("score must fall with age: fresh=%f aged=%f", fresh, aged)
	}
}

func TestHotScoreStrictlyDecreasing(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	prev := HotScore(10, 5, t0, t0)
	for h := 1; h <= 72; h++ {
		cur := HotScore(10, 5, t0, t0.Add(time.Duration(h)*time.Hour))
		if cur >= prev {
			t.Fatalf("score not strictly decreasing at hour %d: %f >= %f", h, cur, prev)
		}
		prev = cur
	}
}

func TestHotScoreClampsNegativeAge(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Writer clock behind the post's creation timestamp.
	skewed := HotScore(3, 2, t0, t0.Add(-time.Hour))
	atZero := HotScore(3, 2, t0, t0)
	if skewed != atZero {
		t.Fatalf("negative age must clamp to 0: got %f, want %f", skewed, atZero)
	}
	if math.IsInf(skewed, 0) || math.IsNaN(skewed) {
		t.Fatalf("score must stay finite, got %f", skewed)
	}
}

func TestHotScoreCommentsWeighDouble(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	byVotes := HotScore(4, 0, t0, t0)
	byComments := HotScore(0, 2, t0, t0)
	if math.Abs(byVotes-byComments) > 1e-9 {
		t.Fatalf("2 comments should equal 4 votes: %f vs %f", byComments, byVotes)
	}
}
