package repository

import (
	"testing"

	"ruangpendapat.com/forum/internal/engagement"
	"ruangpendapat.com/forum/internal/model"
)

func TestApplyAwardAccumulates(t *testing.T) {
	row := model.UserCategoryPoints{
		CurrentBadgeLevel: engagement.BadgeLevelMin,
		PeakBadgeLevel:    engagement.BadgeLevelMin,
	}

	// Two awards landing on the same row must both count; the second applies
	// on top of the first, never against a fresh zero row.
	applyAward(&row, 5)
	applyAward(&row, 1)
	if row.Points != 6 {
		t.Fatalf("points = %d, want 6", row.Points)
	}
	if row.PeakPoints != 6 {
		t.Fatalf("peak points = %d, want 6", row.PeakPoints)
	}
}

func TestApplyAwardZeroFloor(t *testing.T) {
	row := model.UserCategoryPoints{Points: 3, PeakPoints: 3}

	applyAward(&row, -10)
	if row.Points != 0 {
		t.Fatalf("points = %d, want 0", row.Points)
	}
	if row.PeakPoints != 3 {
		t.Fatalf("peak points = %d, want 3", row.PeakPoints)
	}
}

func TestApplyAwardBadgeAndPeaks(t *testing.T) {
	row := model.UserCategoryPoints{
		CurrentBadgeLevel: engagement.BadgeLevelMin,
		PeakBadgeLevel:    engagement.BadgeLevelMin,
	}

	applyAward(&row, 520)
	if row.CurrentBadgeLevel != 3 || row.PeakBadgeLevel != 3 {
		t.Fatalf("levels = %d/%d, want 3/3", row.CurrentBadgeLevel, row.PeakBadgeLevel)
	}

	// Losing points lowers the current level but never the peak.
	applyAward(&row, -500)
	if row.Points != 20 || row.CurrentBadgeLevel != 1 {
		t.Fatalf("points/level = %d/%d, want 20/1", row.Points, row.CurrentBadgeLevel)
	}
	if row.PeakPoints != 520 || row.PeakBadgeLevel != 3 {
		t.Fatalf("peaks moved: %d/%d", row.PeakPoints, row.PeakBadgeLevel)
	}
}
