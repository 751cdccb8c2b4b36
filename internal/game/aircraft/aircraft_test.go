package aircraft

import (
	"testing"

	"airport-simulator/internal/game/flightplan"
	"airport-simulator/pkg/types"
)

func TestRefuelClampsToCapacity(t *testing.T) {
	ac := NewAircraft("AAL1", types.Vec2{}, 0, 200, 5000, 1000, 3000, 1)
	if got := ac.FuelNeeded(); got != 2000 {
		t.Errorf("FuelNeeded: got %d, want 2000", got)
	}
	ac.Refuel(1500)
	if ac.Fuel != 2500 {
		t.Errorf("fuel: got %d, want 2500", ac.Fuel)
	}
	ac.Refuel(1500)
	if ac.Fuel != 3000 || ac.FuelNeeded() != 0 {
		t.Errorf("fuel: got %d need %d, want full tanks", ac.Fuel, ac.FuelNeeded())
	}
}

func TestAirborneAircraftBurnsAndCrashes(t *testing.T) {
	ac := NewAircraft("SWA2", types.Vec2{}, 90, 200, 5000, 3, 3000, 1)
	ac.State = HOLDING

	ac.Update(1)
	if ac.Fuel != 2 {
		t.Errorf("fuel after one tick: got %d, want 2", ac.Fuel)
	}
	ac.Update(1)
	ac.Update(1)
	if ac.State != CRASHED {
		t.Errorf("state: got %s, want CRASHED", ac.State)
	}
	if ac.Fuel != 0 {
		t.Errorf("fuel: got %d, want 0", ac.Fuel)
	}
}

func TestTaxiFollowsPlan(t *testing.T) {
	ac := NewAircraft("DAL3", types.Vec2{}, 0, 0, 0, 100, 3000, 1)
	ac.State = TAXI_OUT
	wps := []types.Waypoint{
		{Name: "ENTRY", Position: types.NewVec2(0, -10), Kind: types.WaypointGround},
		{Name: "EXIT", Position: types.NewVec2(10, -10), Kind: types.WaypointGround},
	}
	// 3600 kts covers NM_TO_PIXEL units per second.
	ac.SetFlightPlan(flightplan.FromWaypoints(ac.ID, wps, 3600, 3600))

	ac.Update(1)
	if ac.Position != wps[0].Position {
		t.Errorf("after first tick at %v, want %v", ac.Position, wps[0].Position)
	}
	ac.Update(1)
	if ac.Position != wps[1].Position {
		t.Errorf("after second tick at %v, want %v", ac.Position, wps[1].Position)
	}
	if !ac.RouteComplete() {
		t.Error("route should be complete")
	}
	if ac.Fuel != 100 {
		t.Errorf("taxiing burned fuel: %d left", ac.Fuel)
	}
}

func TestParkedAircraftStaysPut(t *testing.T) {
	pos := types.NewVec2(5, 5)
	ac := NewAircraft("JBU4", pos, 0, 20, 0, 100, 3000, 1)
	ac.State = PARKED
	for i := 0; i < 10; i++ {
		ac.Update(1)
		ac.ParkedTick()
	}
	if ac.Position != pos || ac.Speed != 0 {
		t.Errorf("parked aircraft moved to %v at speed %.1f", ac.Position, ac.Speed)
	}
	if ac.GroundTicks != 10 {
		t.Errorf("ground ticks: got %d, want 10", ac.GroundTicks)
	}
	if ac.Fuel != 100 {
		t.Errorf("parked aircraft burned fuel: %d left", ac.Fuel)
	}
}
