package engagement

import "math"

// Badge thresholds per category. Points at or above a threshold grant the
// corresponding level; everyone with a reputation row holds at least level 1.
const (
	PointsLegend      = 5000 // level 5
	PointsExpert      = 1500 // level 4
	PointsRegular     = 500  // level 3
	PointsContributor = 100  // level 2
	PointsRookie      = 0    // level 1 - the unconditional floor
)

const (
	BadgeLevelMin = 1
	BadgeLevelMax = 5
)

var badgeNames = [...]string{"Rookie", "Contributor", "Regular", "Expert", "Legend"}

// BadgeLevelForPoints maps a point balance to a badge level 1..5. The result
// is never 0: a row that exists is at least a Rookie, whatever its balance.
func BadgeLevelForPoints(points int) int {
	switch {
	case points >= PointsLegend:
		return 5
	case points >= PointsExpert:
		return 4
	case points >= PointsRegular:
		return 3
	case points >= PointsContributor:
		return 2
	default:
		return BadgeLevelMin
	}
}

// BadgeName returns the display name for a level; out-of-range levels clamp.
func BadgeName(level int) string {
	if level < BadgeLevelMin {
		level = BadgeLevelMin
	}
	if level > BadgeLevelMax {
		level = BadgeLevelMax
	}
	return badgeNames[level-1]
}

// BadgeStatus is the profile-facing view of a category badge: current level,
// the next level to chase, and the progress toward it.
type BadgeStatus struct {
	Level        int     `json:"level"`
	LevelName    string  `json:"level_name"`
	NextLevel    string  `json:"next_level"`
	Points       int     `json:"points"`
	TargetPoints int     `json:"target_points"`
	Progress     float64 `json:"progress"` // 0-100
}

func StatusForPoints(points int) BadgeStatus {
	level := BadgeLevelForPoints(points)
	status := BadgeStatus{
		Level:     level,
		LevelName: BadgeName(level),
		Points:    points,
	}

	switch level {
	case 5:
		status.NextLevel = "Max Level"
		status.TargetPoints = PointsLegend
		status.Progress = 100
	case 4:
		status.NextLevel = BadgeName(5)
		status.TargetPoints = PointsLegend
	case 3:
		status.NextLevel = BadgeName(4)
		status.TargetPoints = PointsExpert
	case 2:
		status.NextLevel = BadgeName(3)
		status.TargetPoints = PointsRegular
	default:
		status.NextLevel = BadgeName(2)
		status.TargetPoints = PointsContributor
	}

	if level < BadgeLevelMax {
		status.Progress = float64(points) / float64(status.TargetPoints) * 100
	}

	// Round progress to 2 decimal places
	status.Progress = math.Round(status.Progress*100) / 100

	return status
}
