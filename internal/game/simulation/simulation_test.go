package simulation

import (
	"errors"
	"reflect"
	"testing"

	"airport-simulator/internal/game/aircraft"
	"airport-simulator/pkg/config"
	"airport-simulator/pkg/types"
)

// quietConfig spawns nothing on its own so tests control the traffic.
func quietConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Simulation.MaxAircraft = 0
	cfg.Simulation.TaxiSpeed = 600
	cfg.Airport.ServiceCycles = 5
	return cfg
}

func newTestSimulation(t *testing.T, cfg *config.Config) *Simulation {
	t.Helper()
	s, err := NewSimulation(cfg, nil)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	return s
}

func atFix(s *Simulation, id string, fuel int) *aircraft.Aircraft {
	ac := aircraft.NewAircraft(types.AircraftID(id), s.ApproachFix().Position, 90, 220, 2000, fuel, 3000, 1)
	s.AddAircraft(ac)
	return ac
}

func TestFullTurnaround(t *testing.T) {
	s := newTestSimulation(t, quietConfig())
	ac := atFix(s, "TST001", 1000)

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if ac.State != aircraft.TAXI_IN {
		t.Fatalf("state = %s, want TAXI_IN", ac.State)
	}
	res, ok := s.Reservation(ac.ID)
	if !ok || res.Terminal() != 0 {
		t.Fatalf("reservation = %v (terminal %d), want terminal 0", ok, res.Terminal())
	}

	for i := 0; i < 3000 && ac.State != aircraft.DEPARTED; i++ {
		if err := s.Update(); err != nil {
			t.Fatalf("tick %d: %v", s.Tick, err)
		}
	}
	if ac.State != aircraft.DEPARTED {
		t.Fatalf("state = %s, want DEPARTED", ac.State)
	}
	if s.Landed != 1 || s.Departed != 1 {
		t.Errorf("landed %d departed %d, want 1 and 1", s.Landed, s.Departed)
	}
	if ac.Fuel != ac.FuelCapacity {
		t.Errorf("fuel = %d, want full tank %d", ac.Fuel, ac.FuelCapacity)
	}
	if _, ok := s.Reservation(ac.ID); ok {
		t.Error("reservation kept after departure")
	}
	if free := s.Airport.Snapshot().FreeTerminals(); free != 3 {
		t.Errorf("free terminals = %d, want 3", free)
	}
}

func TestHoldWhenStandsAreFull(t *testing.T) {
	s := newTestSimulation(t, quietConfig())
	acs := []*aircraft.Aircraft{
		atFix(s, "A", 2000),
		atFix(s, "B", 2000),
		atFix(s, "C", 2000),
		atFix(s, "D", 2000),
	}

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	for i, ac := range acs[:3] {
		if ac.State != aircraft.TAXI_IN {
			t.Errorf("%s: state = %s, want TAXI_IN", ac.ID, ac.State)
		}
		if res, _ := s.Reservation(ac.ID); res.Terminal() != i {
			t.Errorf("%s: terminal = %d, want %d", ac.ID, res.Terminal(), i)
		}
	}
	d := acs[3]
	if d.State != aircraft.HOLDING {
		t.Fatalf("D: state = %s, want HOLDING", d.State)
	}
	if d.TargetAltitude != holdingBase {
		t.Errorf("D: holding at %.0f, want %.0f", d.TargetAltitude, holdingBase)
	}
	if got := s.Holding(); len(got) != 1 || got[0] != "D" {
		t.Errorf("holding stack = %v, want [D]", got)
	}

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if s.HoldingRetries != 1 {
		t.Errorf("got %d retries, want 1", s.HoldingRetries)
	}
}

func TestHoldingAircraftGetsFreedStand(t *testing.T) {
	cfg := quietConfig()
	s := newTestSimulation(t, cfg)
	for _, id := range []string{"A", "B", "C"} {
		atFix(s, id, 3000)
	}
	d := atFix(s, "D", 2500)

	for i := 0; i < 5000 && d.State != aircraft.TAXI_IN; i++ {
		if err := s.Update(); err != nil {
			t.Fatalf("tick %d: %v", s.Tick, err)
		}
	}
	if d.State != aircraft.TAXI_IN {
		t.Fatalf("D never left the hold: %s", d.State)
	}
	if len(s.Holding()) != 0 {
		t.Errorf("holding stack = %v, want empty", s.Holding())
	}
}

func TestTotalRequiredFuelCountsReservedAircraft(t *testing.T) {
	cfg := quietConfig()
	cfg.Airport.MaxOrder = 500
	s := newTestSimulation(t, cfg)
	ac := atFix(s, "TST001", 1000)

	if got := s.TotalRequiredFuel(); got != 0 {
		t.Errorf("before reservation: got %d, want 0", got)
	}
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	// 1 burned on the way in, 500 delivered by the capped first order.
	if got, want := s.TotalRequiredFuel(), 3000-999-500; got != want {
		t.Errorf("got %d, want %d", got, want)
	}
	if got := ac.FuelNeeded(); got != s.TotalRequiredFuel() {
		t.Errorf("aircraft needs %d, demand says %d", got, s.TotalRequiredFuel())
	}
	if got := s.Airport.FuelStock(); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
}

func TestCrashReleasesTerminal(t *testing.T) {
	s := newTestSimulation(t, quietConfig())
	ac := atFix(s, "TST001", 3000)
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if ac.State != aircraft.TAXI_IN {
		t.Fatalf("state = %s, want TAXI_IN", ac.State)
	}

	ac.State = aircraft.CRASHED
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if s.Crashed != 1 {
		t.Errorf("got %d crashes, want 1", s.Crashed)
	}
	if _, ok := s.Aircrafts[ac.ID]; ok {
		t.Error("crashed aircraft still tracked")
	}
	if free := s.Airport.Snapshot().FreeTerminals(); free != 3 {
		t.Errorf("free terminals = %d, want 3", free)
	}
}

func TestSameSeedSameRun(t *testing.T) {
	run := func() *Simulation {
		cfg := config.DefaultConfig()
		cfg.Simulation.Seed = 7
		cfg.Simulation.SpawnIntervalTicks = 50
		s := newTestSimulation(t, cfg)
		for range 600 {
			if err := s.Update(); err != nil {
				t.Fatal(err)
			}
		}
		return s
	}

	a, b := run(), run()
	if a.Landed != b.Landed || a.Departed != b.Departed || a.HoldingRetries != b.HoldingRetries {
		t.Errorf("counters differ: %d/%d/%d vs %d/%d/%d",
			a.Landed, a.Departed, a.HoldingRetries, b.Landed, b.Departed, b.HoldingRetries)
	}
	if !reflect.DeepEqual(a.Airport.Snapshot(), b.Airport.Snapshot()) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a.Airport.Snapshot(), b.Airport.Snapshot())
	}
	if len(a.Aircrafts) != len(b.Aircrafts) {
		t.Errorf("got %d and %d aircraft", len(a.Aircrafts), len(b.Aircrafts))
	}
}

func TestRadioLogIsBounded(t *testing.T) {
	s := newTestSimulation(t, quietConfig())
	for i := range 80 {
		s.Tick = uint64(i)
		s.AddRadioMessage("TST001", "check", false)
	}
	if len(s.RadioLog) != s.maxRadioLogSize {
		t.Fatalf("got %d messages, want %d", len(s.RadioLog), s.maxRadioLogSize)
	}
	if s.RadioLog[0].Tick != 30 {
		t.Errorf("oldest kept tick = %d, want 30", s.RadioLog[0].Tick)
	}
}

func TestIssueAltitude(t *testing.T) {
	s := newTestSimulation(t, quietConfig())
	ac := aircraft.NewAircraft("TST001", types.NewVec2(100, 100), 90, 220, 9000, 2000, 3000, 1)
	s.AddAircraft(ac)

	if err := s.IssueAltitude("TST001", 6000); err != nil {
		t.Fatal(err)
	}
	if ac.TargetAltitude != 6000 {
		t.Errorf("got %.0f, want 6000", ac.TargetAltitude)
	}
	if err := s.IssueAltitude("NOPE", 6000); !errors.Is(err, ErrUnknownAircraft) {
		t.Errorf("got %v, want %v", err, ErrUnknownAircraft)
	}
	ac.State = aircraft.PARKED
	if err := s.IssueAltitude("TST001", 6000); !errors.Is(err, ErrNotAirborne) {
		t.Errorf("got %v, want %v", err, ErrNotAirborne)
	}
}
