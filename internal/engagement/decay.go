package engagement

import (
	"math"
	"time"
)

// Inactivity decay tunables. Decay starts after the grace period, compounds
// daily, is capped per pass so a long absence cannot zero a balance in one
// login, and respects a floor for balances that were at or above it.
const (
	DecayGraceDays = 7
	DecayRate      = 0.02
	MaxDecayDays   = 30
	DecayFloor     = 10
)

// DecayedPoints returns the balance after applying inactivity decay for the
// time elapsed between lastLogin and now. A nil lastLogin (first login ever)
// and an absence inside the grace period both leave the balance untouched.
// Balances already below the floor are left alone: the floor is a parachute,
// not a magnet.
func DecayedPoints(points int, lastLogin *time.Time, now time.Time) int {
	if lastLogin == nil {
		return points
	}

	daysSince := int(math.Floor(now.Sub(*lastLogin).Hours() / 24))
	if daysSince < DecayGraceDays {
		return points
	}

	decayDays := daysSince - DecayGraceDays
	if decayDays > MaxDecayDays {
		decayDays = MaxDecayDays
	}

	decayed := int(math.Floor(float64(points) * math.Pow(1-DecayRate, float64(decayDays))))

	if points >= DecayFloor && decayed < DecayFloor {
		return DecayFloor
	}
	if points < DecayFloor {
		return points
	}
	return decayed
}
