package simulation

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"slices"

	"airport-simulator/internal/game/aircraft"
	"airport-simulator/internal/game/airport"
	"airport-simulator/internal/game/airspace"
	"airport-simulator/internal/game/conflict"
	"airport-simulator/internal/game/flightplan"
	ilog "airport-simulator/internal/log"
	"airport-simulator/pkg/config"
	"airport-simulator/pkg/types"

	"github.com/labstack/gommon/log"
)

var (
	ErrUnknownAircraft = errors.New("unknown aircraft")
	ErrNotAirborne     = errors.New("aircraft is not an airborne arrival")
)

const (
	approachAltitude = 2000.0
	holdingBase      = 3000.0
	holdingStep      = 1000.0
	departureAlt     = 10000.0
)

type Simulation struct {
	Aircrafts map[types.AircraftID]*aircraft.Aircraft
	Airspace  *airspace.Airspace
	Airport   *airport.Airport
	TickRate  float64
	Tick      uint64

	Landed         int
	Departed       int
	Crashed        int
	HoldingRetries int
	Conflicts      int

	RadioLog        []RadioMessage
	maxRadioLogSize int

	cfg            config.SimulationConfig
	reservations   map[types.AircraftID]airport.Reservation
	holdingStack   []types.AircraftID
	nextSpawnTick  uint64
	nextAircraftID int
	rng            *rand.Rand
	lg             *log.Logger
	err            error
}

func NewSimulation(cfg *config.Config, lg *log.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lg == nil {
		lg = ilog.Discard()
	}

	sc := cfg.Simulation
	as := airspace.NewAirspace(sc.Width, sc.Height)
	center := types.NewVec2(sc.Width/2, sc.Height/2)
	if err := as.SetAirport("KSIM", "Simulated International", center, airspace.DefaultAirportType()); err != nil {
		return nil, err
	}

	s := &Simulation{
		Aircrafts:       make(map[types.AircraftID]*aircraft.Aircraft),
		Airspace:        as,
		TickRate:        sc.TickRate,
		maxRadioLogSize: 50,
		cfg:             sc,
		reservations:    make(map[types.AircraftID]airport.Reservation),
		nextAircraftID:  100,
		rng:             rand.New(rand.NewPCG(sc.Seed, sc.Seed^0x9e3779b97f4a7c15)),
		lg:              lg,
	}

	ap, err := airport.NewAirport(as.Site.Type, as.Site.Position, s, cfg.AirportSettings(), lg)
	if err != nil {
		return nil, fmt.Errorf("airport %s: %w", as.Site.ID, err)
	}
	s.Airport = ap
	return s, nil
}

// TotalRequiredFuel is the fuel still owed to aircraft holding a terminal.
func (s *Simulation) TotalRequiredFuel() int {
	total := 0
	for id := range s.reservations {
		if ac, ok := s.Aircrafts[id]; ok {
			total += ac.FuelNeeded()
		}
	}
	return total
}

// Update advances the whole simulation by one tick. Once an invariant
// error has been returned, every later call returns it again.
func (s *Simulation) Update() error {
	if s.err != nil {
		return s.err
	}

	if s.Tick >= s.nextSpawnTick && len(s.Aircrafts) < s.cfg.MaxAircraft {
		s.SpawnAircraft()
		s.nextSpawnTick = s.Tick + uint64(s.cfg.SpawnIntervalTicks)
	}

	for _, ac := range s.sortedAircraft() {
		ac.Update(s.cfg.SecondsPerTick)
		ac.IsConflicting = false

		if err := s.control(ac); err != nil {
			s.err = fmt.Errorf("tick %d: %s: %w", s.Tick, ac.ID, err)
			s.lg.Errorj(log.JSON{"tick": s.Tick, "aircraft": ac.ID, "error": err.Error()})
			return s.err
		}
	}
	s.CheckForConflicts()

	if _, err := s.Airport.Tick(); err != nil {
		s.err = err
		s.lg.Errorj(log.JSON{"tick": s.Tick, "error": err.Error()})
		return err
	}

	s.CleanupAircraft()
	s.Tick++
	return nil
}

func (s *Simulation) sortedAircraft() []*aircraft.Aircraft {
	ids := slices.Sorted(maps.Keys(s.Aircrafts))
	acs := make([]*aircraft.Aircraft, len(ids))
	for i, id := range ids {
		acs[i] = s.Aircrafts[id]
	}
	return acs
}

// control is the ground controller: it moves each aircraft through the
// reservation protocol as it reaches the end of its current route.
func (s *Simulation) control(ac *aircraft.Aircraft) error {
	tower := s.Airport.Tower()

	switch ac.State {
	case aircraft.INBOUND:
		if ac.RouteComplete() {
			s.requestTerminal(ac)
		}

	case aircraft.HOLDING:
		s.requestTerminal(ac)

	case aircraft.TAXI_IN:
		if !ac.RouteComplete() {
			return nil
		}
		res := s.reservations[ac.ID]
		if err := tower.ArrivedAtTerminal(res); err != nil {
			return err
		}
		ac.State = aircraft.PARKED
		s.Landed++
		s.AddRadioMessage(ac.ID, fmt.Sprintf("on blocks at terminal %d", res.Terminal()), false)

	case aircraft.PARKED:
		res := s.reservations[ac.ID]
		done, err := tower.ServiceComplete(res)
		if err != nil {
			return err
		}
		if !done || ac.FuelNeeded() > 0 {
			return nil
		}
		path, err := tower.DeparturePath(res)
		if err != nil {
			return err
		}
		if err := tower.ReleaseTerminal(res); err != nil {
			return err
		}
		delete(s.reservations, ac.ID)
		ac.SetFlightPlan(flightplan.FromWaypoints(ac.ID, path, s.cfg.AirSpeed, s.cfg.TaxiSpeed))
		ac.State = aircraft.TAXI_OUT
		s.AddRadioMessage(ac.ID, "taxi to runway, cleared for takeoff", false)

	case aircraft.TAXI_OUT:
		if ac.RouteComplete() {
			ac.State = aircraft.DEPARTED
			ac.TargetSpeed = s.cfg.AirSpeed
			ac.SetAltitude(departureAlt)
			s.Departed++
			s.AddRadioMessage(ac.ID, "good day, contact departure", false)
		}

	case aircraft.CRASHED:
		if res, ok := s.reservations[ac.ID]; ok {
			if err := tower.ReleaseTerminal(res); err != nil {
				return err
			}
			delete(s.reservations, ac.ID)
		}
		s.leaveHolding(ac.ID)
	}
	return nil
}

func (s *Simulation) requestTerminal(ac *aircraft.Aircraft) {
	res, ok := s.Airport.Tower().RequestTerminal(ac)
	if !ok {
		if ac.State == aircraft.HOLDING {
			s.HoldingRetries++
			return
		}
		ac.State = aircraft.HOLDING
		ac.SetAltitude(holdingBase + holdingStep*float64(len(s.holdingStack)))
		s.holdingStack = append(s.holdingStack, ac.ID)
		s.AddRadioMessage(ac.ID, fmt.Sprintf("no stand available, hold at %.0f", ac.TargetAltitude), false)
		return
	}

	s.leaveHolding(ac.ID)
	s.reservations[ac.ID] = res
	ac.SetFlightPlan(flightplan.FromWaypoints(ac.ID, res.Path(), s.cfg.AirSpeed, s.cfg.TaxiSpeed))
	ac.SetAltitude(approachAltitude)
	ac.State = aircraft.TAXI_IN
	s.AddRadioMessage(ac.ID, fmt.Sprintf("cleared to land, taxi to terminal %d", res.Terminal()), false)
}

func (s *Simulation) leaveHolding(id types.AircraftID) {
	s.holdingStack = slices.DeleteFunc(s.holdingStack, func(h types.AircraftID) bool { return h == id })
}

// ApproachFix is where inbound aircraft ask the tower for a stand.
func (s *Simulation) ApproachFix() types.Waypoint {
	site := s.Airspace.Site
	wps, err := site.Type.PathToTerminal(site.Position, s.Airport.RunwayEnd(), 0)
	if err != nil || len(wps) == 0 {
		return types.Waypoint{Name: site.ID, Position: site.Position, Kind: types.WaypointAir}
	}
	return wps[0]
}

// AddAircraft puts ac under control, inbound to the approach fix.
func (s *Simulation) AddAircraft(ac *aircraft.Aircraft) {
	fix := s.ApproachFix()
	ac.State = aircraft.INBOUND
	ac.SetFlightPlan(flightplan.FromWaypoints(ac.ID, []types.Waypoint{fix}, s.cfg.AirSpeed, s.cfg.TaxiSpeed))
	s.Aircrafts[ac.ID] = ac
}

func (s *Simulation) randomFloatInRange(minF, maxF float64) float64 {
	return minF + s.rng.Float64()*(maxF-minF)
}

func (s *Simulation) SpawnAircraft() {
	acID := types.AircraftID(fmt.Sprintf("%s%03d", s.randomAirlinePrefix(), s.nextAircraftID))
	s.nextAircraftID++

	startPos := s.Airspace.Site.Position
	if n := len(s.Airspace.EntryWaypoints); n > 0 {
		name := s.Airspace.EntryWaypoints[s.rng.IntN(n)]
		if wp, ok := s.Airspace.Waypoints[name]; ok {
			startPos = wp.Position
		}
	} else {
		s.lg.Warn("no entry waypoints defined, spawning over the airport")
	}

	capacity := s.cfg.FuelCapacity
	fuel := capacity/3 + s.rng.IntN(capacity-capacity/3)
	altitude := math.Round(s.randomFloatInRange(8000, 12000)/100) * 100

	fix := s.ApproachFix()
	ac := aircraft.NewAircraft(acID, startPos, startPos.HeadingTo(fix.Position), s.cfg.AirSpeed, altitude,
		fuel, capacity, s.cfg.FuelBurn)
	ac.SetAltitude(holdingBase)
	s.AddAircraft(ac)

	s.lg.Infoj(log.JSON{"event": "spawn", "tick": s.Tick, "aircraft": acID, "fuel": fuel,
		"x": startPos.X, "y": startPos.Y})
}

func (s *Simulation) randomAirlinePrefix() string {
	prefixes := []string{"AAL", "SWA", "DAL", "UAL", "JBU", "ASA", "FFT", "AI", "JAL"}
	return prefixes[s.rng.IntN(len(prefixes))]
}

func (s *Simulation) CheckForConflicts() {
	for _, pair := range conflict.FindConflicts(s.sortedAircraft()) {
		s.lg.Warnf("CONFLICT: %s and %s", pair[0].ID, pair[1].ID)
		pair[0].IsConflicting = true
		pair[1].IsConflicting = true
		s.Conflicts++
	}
}

// CleanupAircraft drops crashed aircraft and departures that have left
// the sector.
func (s *Simulation) CleanupAircraft() {
	for id, ac := range s.Aircrafts {
		switch {
		case ac.State == aircraft.CRASHED:
			s.lg.Warnj(log.JSON{"event": "crash", "tick": s.Tick, "aircraft": id})
			s.AddRadioMessage(id, "out of fuel", true)
			s.Crashed++
			delete(s.Aircrafts, id)
		case ac.State == aircraft.DEPARTED && !s.Airspace.Sector.Contains(ac.Position):
			s.lg.Infof("Aircraft %s left airspace and removed.", id)
			delete(s.Aircrafts, id)
		}
	}
}

// IssueAltitude clears an inbound or holding aircraft to a new altitude.
// Aircraft on the runway or the ground stay under tower control.
func (s *Simulation) IssueAltitude(id types.AircraftID, alt float64) error {
	ac, ok := s.Aircrafts[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrUnknownAircraft)
	}
	if ac.State != aircraft.INBOUND && ac.State != aircraft.HOLDING {
		return fmt.Errorf("%s is %s: %w", id, ac.State, ErrNotAirborne)
	}
	ac.SetAltitude(alt)
	s.AddRadioMessage(id, fmt.Sprintf("maintain %.0f", ac.TargetAltitude), false)
	return nil
}

// Holding returns the aircraft waiting for a stand, lowest first.
func (s *Simulation) Holding() []types.AircraftID {
	return slices.Clone(s.holdingStack)
}

func (s *Simulation) Reservation(id types.AircraftID) (airport.Reservation, bool) {
	r, ok := s.reservations[id]
	return r, ok
}
