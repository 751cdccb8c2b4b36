package flightplan

import "airport-simulator/pkg/types"

type FlightPlanSegment struct {
	Waypoint    types.Waypoint
	TargetSpeed float64
}

type FlightPlan struct {
	Callsign            types.AircraftID
	Route               []FlightPlanSegment // Sequence of segments
	CurrentSegmentIndex int
}

// FromWaypoints builds a plan that flies air waypoints at airSpeed and
// taxis ground waypoints at taxiSpeed.
func FromWaypoints(callsign types.AircraftID, wps []types.Waypoint, airSpeed, taxiSpeed float64) *FlightPlan {
	fp := &FlightPlan{Callsign: callsign, Route: make([]FlightPlanSegment, 0, len(wps))}
	for _, wp := range wps {
		spd := airSpeed
		if wp.IsOnGround() {
			spd = taxiSpeed
		}
		fp.Route = append(fp.Route, FlightPlanSegment{Waypoint: wp, TargetSpeed: spd})
	}
	return fp
}

func (fp *FlightPlan) Current() (FlightPlanSegment, bool) {
	if fp == nil || fp.Done() {
		return FlightPlanSegment{}, false
	}
	return fp.Route[fp.CurrentSegmentIndex], true
}

func (fp *FlightPlan) Advance() {
	if !fp.Done() {
		fp.CurrentSegmentIndex++
	}
}

func (fp *FlightPlan) Done() bool {
	return fp.CurrentSegmentIndex >= len(fp.Route)
}

func (fp *FlightPlan) Remaining() int {
	return len(fp.Route) - fp.CurrentSegmentIndex
}
