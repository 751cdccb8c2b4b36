package aircraft

import (
	"math"

	"airport-simulator/internal/game/flightplan"
	"airport-simulator/pkg/types"
)

type AircraftState int

const (
	INBOUND AircraftState = iota
	HOLDING
	TAXI_IN
	PARKED
	TAXI_OUT
	DEPARTED
	CRASHED
)

var StateStringMap = map[AircraftState]string{
	INBOUND:  "INBOUND",
	HOLDING:  "HOLDING",
	TAXI_IN:  "TAXI_IN",
	PARKED:   "PARKED",
	TAXI_OUT: "TAXI_OUT",
	DEPARTED: "DEPARTED",
	CRASHED:  "CRASHED",
}

func (s AircraftState) String() string {
	return StateStringMap[s]
}

const (
	// ArrivalRadius is how close an aircraft must get to a waypoint, in
	// world units, before moving on to the next one.
	ArrivalRadius = 10.0
	groundRadius  = 1.5
)

type Aircraft struct {
	ID        types.AircraftID
	Position  types.Vec2
	Altitude  float64
	Heading   float64
	Speed     float64
	ClimbRate float64

	TargetAltitude float64
	TargetSpeed    float64
	TargetHeading  float64

	State AircraftState

	Fuel         int
	FuelCapacity int
	FuelBurn     int // per tick while airborne

	MaxTurnRateDegPerSec        float64
	MaxClimbRateFPM             float64
	MaxDescentRateFPM           float64
	AccelerationRateKnotsPerSec float64

	IsConflicting bool
	FlightPlan    *flightplan.FlightPlan

	GroundTicks int
}

func NewAircraft(id types.AircraftID, pos types.Vec2, heading, speed, altitude float64, fuel, capacity, burn int) *Aircraft {
	return &Aircraft{
		ID:                          id,
		Position:                    pos,
		Altitude:                    altitude,
		Heading:                     heading,
		Speed:                       speed,
		TargetAltitude:              altitude,
		TargetSpeed:                 speed,
		TargetHeading:               heading,
		State:                       INBOUND,
		Fuel:                        types.Clamp(fuel, 0, capacity),
		FuelCapacity:                capacity,
		FuelBurn:                    burn,
		MaxTurnRateDegPerSec:        6.0,
		MaxClimbRateFPM:             3000.0,
		MaxDescentRateFPM:           -2500.0,
		AccelerationRateKnotsPerSec: 5.0,
	}
}

func (ac *Aircraft) Callsign() types.AircraftID {
	return ac.ID
}

func (ac *Aircraft) FuelNeeded() int {
	return ac.FuelCapacity - ac.Fuel
}

func (ac *Aircraft) Refuel(q int) {
	ac.Fuel = types.Clamp(ac.Fuel+q, 0, ac.FuelCapacity)
}

func (ac *Aircraft) ParkedTick() {
	ac.GroundTicks++
}

func (ac *Aircraft) SetFlightPlan(fp *flightplan.FlightPlan) {
	ac.FlightPlan = fp
	if seg, ok := fp.Current(); ok {
		ac.TargetSpeed = seg.TargetSpeed
	}
}

// RouteComplete reports whether the aircraft has reached the last waypoint
// of its flight plan.
func (ac *Aircraft) RouteComplete() bool {
	return ac.FlightPlan == nil || ac.FlightPlan.Done()
}

// IsAirborne is true while the aircraft is burning fuel in the air.
func (ac *Aircraft) IsAirborne() bool {
	switch ac.State {
	case INBOUND, HOLDING, DEPARTED:
		return true
	case TAXI_IN:
		seg, ok := ac.FlightPlan.Current()
		return ok && !seg.Waypoint.IsOnGround()
	default:
		return false
	}
}

func (ac *Aircraft) Update(dt float64) {
	switch ac.State {
	case PARKED, CRASHED:
		ac.Speed = 0
		return
	}

	if ac.IsAirborne() {
		ac.Fuel -= ac.FuelBurn
		if ac.Fuel <= 0 {
			ac.Fuel = 0
			ac.State = CRASHED
			ac.Speed = 0
			return
		}
	}

	ac.updateAltitude(dt)

	ground := false
	if seg, ok := ac.FlightPlan.Current(); ok && ac.State != HOLDING {
		ground = seg.Waypoint.IsOnGround()
		ac.TargetSpeed = seg.TargetSpeed
		ac.TargetHeading = ac.Position.HeadingTo(seg.Waypoint.Position)
	}

	switch {
	case ac.State == HOLDING:
		ac.TargetHeading = math.Mod(ac.Heading+90, 360)
	case ground:
		// Taxiing aircraft point straight at the next node.
		ac.Heading = ac.TargetHeading
		ac.Speed = ac.TargetSpeed
		ac.Altitude, ac.TargetAltitude, ac.ClimbRate = 0, 0, 0
	}

	if ac.Heading != ac.TargetHeading {
		diff := math.Mod(ac.TargetHeading-ac.Heading+360, 360)
		var turnAmount float64
		if diff > 180 {
			turnAmount = -ac.MaxTurnRateDegPerSec * dt
			diff = 360 - diff
		} else {
			turnAmount = ac.MaxTurnRateDegPerSec * dt
		}

		if diff < math.Abs(turnAmount) {
			ac.Heading = ac.TargetHeading
		} else {
			ac.Heading = math.Mod(ac.Heading+turnAmount+360, 360)
		}
	}

	if ac.Speed < ac.TargetSpeed {
		ac.Speed = math.Min(ac.TargetSpeed, ac.Speed+ac.AccelerationRateKnotsPerSec*dt)
	} else if ac.Speed > ac.TargetSpeed {
		ac.Speed = math.Max(ac.TargetSpeed, ac.Speed-ac.AccelerationRateKnotsPerSec*dt)
	}

	step := ac.Speed / 3600.0 * types.NM_TO_PIXEL * dt
	if seg, ok := ac.FlightPlan.Current(); ok && ac.State != HOLDING {
		dist := ac.Position.DistanceTo(seg.Waypoint.Position)
		radius := ArrivalRadius
		if ground {
			radius = groundRadius
		}
		if ground && step >= dist {
			ac.Position = seg.Waypoint.Position
			ac.FlightPlan.Advance()
			return
		}
		if dist < radius {
			ac.FlightPlan.Advance()
		}
	}

	radians := ac.Heading * math.Pi / 180.0
	ac.Position.X += step * math.Sin(radians)
	ac.Position.Y -= step * math.Cos(radians)
}

func (ac *Aircraft) SetAltitude(alt float64) {
	ac.TargetAltitude = math.Max(0, alt)
}

func (ac *Aircraft) updateAltitude(dt float64) {
	rateScale := dt / 60.0
	switch {
	case ac.Altitude < ac.TargetAltitude:
		ac.ClimbRate = math.Min(ac.MaxClimbRateFPM, (ac.TargetAltitude-ac.Altitude)/rateScale)
	case ac.Altitude > ac.TargetAltitude:
		ac.ClimbRate = math.Max(ac.MaxDescentRateFPM, (ac.TargetAltitude-ac.Altitude)/rateScale)
	default:
		ac.ClimbRate = 0
	}
	ac.Altitude += ac.ClimbRate * rateScale
}
