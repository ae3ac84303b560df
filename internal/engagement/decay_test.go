package engagement

import (
	"testing"
	"time"
)

func daysAgo(now time.Time, d int) *time.Time {
	t := now.AddDate(0, 0, -d)
	return &t
}

func TestDecayedPointsFirstLogin(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if got := DecayedPoints(500, nil, now); got != 500 {
		t.Fatalf("nil last login must not decay: got %d", got)
	}
}

func TestDecayedPointsGracePeriod(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for d := 0; d < DecayGraceDays; d++ {
		if got := DecayedPoints(500, daysAgo(now, d), now); got != 500 {
			t.Fatalf("day %d is inside the grace period, got %d", d, got)
		}
	}
}

func TestDecayedPointsThirtyDayScenario(t *testing.T) {
	// 80 points, away 30 days: 23 decay days, floor(80 * 0.98^23) = 50.
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	if got := DecayedPoints(80, daysAgo(now, 30), now); got != 50 {
		t.Fatalf("got %d, want 50", got)
	}
}

func TestDecayedPointsCapped(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	yearAway := DecayedPoints(1000, daysAgo(now, 365), now)
	capAway := DecayedPoints(1000, daysAgo(now, DecayGraceDays+MaxDecayDays), now)
	if yearAway != capAway {
		t.Fatalf("decay days must cap at %d: %d vs %d", MaxDecayDays, yearAway, capAway)
	}
}

func TestDecayedPointsFloor(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	long := daysAgo(now, 300)

	// Pre-decay balance at/above the floor clamps to the floor.
	if got := DecayedPoints(12, long, now); got != DecayFloor {
		t.Fatalf("got %d, want floor %d", got, DecayFloor)
	}
	if got := DecayedPoints(DecayFloor, long, now); got != DecayFloor {
		t.Fatalf("balance at the floor must stay there, got %d", got)
	}

	// Balances already below the floor are left untouched.
	if got := DecayedPoints(5, long, now); got != 5 {
		t.Fatalf("sub-floor balance must not decay, got %d", got)
	}
	if got := DecayedPoints(0, long, now); got != 0 {
		t.Fatalf("zero balance must stay zero, got %d", got)
	}
}

func TestDecayedPointsMonotoneInAbsence(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	prev := 1000
	for d := DecayGraceDays; d <= DecayGraceDays+MaxDecayDays; d++ {
		got := DecayedPoints(1000, daysAgo(now, d), now)
		if got > prev {
			t.Fatalf("longer absence must not yield more points: day %d: %d > %d", d, got, prev)
		}
		prev = got
	}
}
