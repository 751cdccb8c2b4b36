package conflict

import (
	"math"

	"airport-simulator/internal/game/aircraft"
	"airport-simulator/pkg/types"
)

const (
	MIN_HORIZONTAL_SEPARATION = 3.0
	MIN_VERTICAL_SEPARATION   = 1000.0
)

// CheckSeparation reports whether two airborne aircraft are closer than
// the separation minima. Aircraft on the ground never conflict here; the
// terminal reservation keeps them apart.
func CheckSeparation(ac1, ac2 *aircraft.Aircraft) bool {
	if !ac1.IsAirborne() || !ac2.IsAirborne() {
		return false
	}
	if math.Abs(ac1.Altitude-ac2.Altitude) >= MIN_VERTICAL_SEPARATION {
		return false
	}
	return ac1.Position.DistanceTo(ac2.Position) < MIN_HORIZONTAL_SEPARATION*types.NM_TO_PIXEL
}

// FindConflicts checks every pair once and returns the conflicting pairs
// in the order given.
func FindConflicts(acs []*aircraft.Aircraft) [][2]*aircraft.Aircraft {
	var pairs [][2]*aircraft.Aircraft
	for i := 0; i < len(acs); i++ {
		for j := i + 1; j < len(acs); j++ {
			if CheckSeparation(acs[i], acs[j]) {
				pairs = append(pairs, [2]*aircraft.Aircraft{acs[i], acs[j]})
			}
		}
	}
	return pairs
}
