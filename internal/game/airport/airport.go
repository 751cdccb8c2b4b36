// Package airport manages an airport's shared resources: the pool of
// parking terminals, the taxi paths between runway and stand, and the
// periodic fuel resupply that feeds every terminal from one stock.
//
// Everything advances on a single discrete timeline. The Airport guards its
// state with a mutex so that Tower calls made from another goroutine never
// see the terminal pool or the fuel counters half-updated.
package airport

import (
	"fmt"
	"sync"

	ilog "airport-simulator/internal/log"
	"airport-simulator/pkg/types"

	"github.com/labstack/gommon/log"
)

// FuelDemand reports how much fuel the fleet currently needs. It is owned
// by the caller; the airport only queries it, at most once per refill
// period.
type FuelDemand interface {
	TotalRequiredFuel() int
}

// RoutePlanner is the airport layout: how many stands there are and how
// to taxi between a runway end and a stand.
type RoutePlanner interface {
	TerminalCount() int
	PathToTerminal(pos types.Vec2, runwayEnd, terminal int) ([]types.Waypoint, error)
	PathFromTerminal(pos types.Vec2, runwayEnd, terminal int) ([]types.Waypoint, error)
}

type Airport struct {
	mu sync.Mutex

	layout    RoutePlanner
	pos       types.Vec2
	terminals []*Terminal
	tower     Tower
	demand    FuelDemand
	cfg       Config

	fuelStock      int
	orderedFuel    int
	nextRefillTime int

	tick    uint64
	epoch   uint64
	lg      *log.Logger
	onEvent EventHandler
}

func NewAirport(layout RoutePlanner, pos types.Vec2, demand FuelDemand, cfg Config, lg *log.Logger) (*Airport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, fmt.Errorf("airport at %v: nil layout", pos)
	}
	if demand == nil {
		return nil, fmt.Errorf("airport at %v: nil fuel demand", pos)
	}
	n := layout.TerminalCount()
	if n <= 0 {
		return nil, fmt.Errorf("airport at %v: layout has %d terminals", pos, n)
	}
	// Surface a bad runway end now rather than on the first reservation.
	if _, err := layout.PathToTerminal(pos, cfg.RunwayEnd, 0); err != nil {
		return nil, fmt.Errorf("airport at %v: %w", pos, err)
	}
	if lg == nil {
		lg = ilog.Discard()
	}

	a := &Airport{
		layout:    layout,
		pos:       pos,
		terminals: make([]*Terminal, n),
		demand:    demand,
		cfg:       cfg,
		lg:        lg,
	}
	for i := range a.terminals {
		a.terminals[i] = newTerminal(i, cfg.ServiceCycles)
	}
	a.tower = Tower{airport: a}
	return a, nil
}

func (a *Airport) Tower() *Tower {
	return &a.tower
}

func (a *Airport) Position() types.Vec2 {
	return a.pos
}

// RunwayEnd is the landing direction every reservation path starts from.
func (a *Airport) RunwayEnd() int {
	return a.cfg.RunwayEnd
}

func (a *Airport) TerminalCount() int {
	return len(a.terminals)
}

// SetEventHandler installs h; the handler must not call back into the
// airport or its tower.
func (a *Airport) SetEventHandler(h EventHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onEvent = h
}

func (a *Airport) FuelStock() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fuelStock
}

func (a *Airport) OrderedFuel() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.orderedFuel
}

func (a *Airport) NextRefillTime() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nextRefillTime
}

// Tick advances the airport by one step: place a fuel order if one is
// due, age the refill timer, then let every terminal, in collection order,
// draw its aircraft's fuel from the stock and advance. It always reports
// that the airport is still active unless an invariant is broken.
func (a *Airport) Tick() (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.nextRefillTime < 0 {
		return false, fmt.Errorf("tick %d: timer at %d: %w", a.tick, a.nextRefillTime, ErrRefillTimerNegative)
	}

	if a.nextRefillTime == 0 {
		demand := max(0, a.demand.TotalRequiredFuel())
		a.orderedFuel = min(a.cfg.MaxOrder, demand)
		a.fuelStock += a.orderedFuel
		a.nextRefillTime = a.cfg.RefillPeriod
		a.emit(Event{Type: EventFuelOrdered, Terminal: -1, Demand: demand, Quantity: a.orderedFuel})
	}
	a.nextRefillTime--

	for _, t := range a.terminals {
		t.RefillIfNeeded(&a.fuelStock)
		if t.IsOccupied() && a.fuelStock == 0 && t.aircraft.FuelNeeded() > 0 {
			a.emit(Event{Type: EventTerminalStarved, Terminal: t.index, Aircraft: t.aircraft.Callsign()})
		}
		t.AdvanceTick()
	}

	a.tick++
	return true, nil
}

// reserveTerminal assigns the first free terminal to ac. No terminal is
// touched when none is free.
func (a *Airport) reserveTerminal(ac ParkedAircraft) (Reservation, bool) {
	if ac == nil {
		return Reservation{}, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, t := range a.terminals {
		if t.IsOccupied() {
			continue
		}

		path, err := a.layout.PathToTerminal(a.pos, a.cfg.RunwayEnd, t.index)
		if err != nil || len(path) == 0 {
			a.lg.Errorf("terminal %d: no path from runway end %d: %v", t.index, a.cfg.RunwayEnd, err)
			return Reservation{}, false
		}
		if err := t.Assign(ac); err != nil {
			a.lg.Errorf("%v", err)
			return Reservation{}, false
		}
		a.epoch++
		t.epoch = a.epoch

		a.emit(Event{Type: EventTerminalReserved, Terminal: t.index, Aircraft: ac.Callsign()})
		return Reservation{airport: a, terminal: t.index, epoch: t.epoch, path: path}, true
	}

	a.emit(Event{Type: EventNoTerminal, Terminal: -1, Aircraft: ac.Callsign()})
	return Reservation{}, false
}

// terminalFor resolves r to the terminal it currently holds. The caller
// must hold a.mu.
func (a *Airport) terminalFor(r Reservation) (*Terminal, error) {
	if !r.Valid() {
		return nil, ErrInvalidReservation
	}
	if r.airport != a {
		return nil, ErrForeignReservation
	}
	if r.terminal < 0 || r.terminal >= len(a.terminals) {
		return nil, fmt.Errorf("terminal %d of %d: %w", r.terminal, len(a.terminals), ErrTerminalOutOfRange)
	}
	t := a.terminals[r.terminal]
	if t.epoch != r.epoch {
		return nil, fmt.Errorf("terminal %d: %w", r.terminal, ErrStaleReservation)
	}
	return t, nil
}

func (a *Airport) freeTerminal(r Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.terminalFor(r)
	if err != nil {
		return err
	}
	callsign := t.aircraft.Callsign()
	if err := t.Release(); err != nil {
		return err
	}
	a.emit(Event{Type: EventTerminalReleased, Terminal: t.index, Aircraft: callsign})
	return nil
}

func (a *Airport) startPath(r Reservation) ([]types.Waypoint, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.terminalFor(r)
	if err != nil {
		return nil, err
	}
	return a.layout.PathFromTerminal(a.pos, a.cfg.RunwayEnd, t.index)
}

func (a *Airport) startService(r Reservation) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.terminalFor(r)
	if err != nil {
		return err
	}
	if err := t.StartService(); err != nil {
		return err
	}
	a.emit(Event{Type: EventServiceStarted, Terminal: t.index, Aircraft: t.aircraft.Callsign()})
	return nil
}

func (a *Airport) serviceDone(r Reservation) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, err := a.terminalFor(r)
	if err != nil {
		return false, err
	}
	return t.ServiceDone(), nil
}

type TerminalStatus struct {
	Index     int
	Occupied  bool
	Servicing bool
	Aircraft  types.AircraftID
}

type Snapshot struct {
	Tick           uint64
	FuelStock      int
	OrderedFuel    int
	NextRefillTime int
	Terminals      []TerminalStatus
}

// Snapshot returns a consistent copy of the airport state for display.
func (a *Airport) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Snapshot{
		Tick:           a.tick,
		FuelStock:      a.fuelStock,
		OrderedFuel:    a.orderedFuel,
		NextRefillTime: a.nextRefillTime,
		Terminals:      make([]TerminalStatus, len(a.terminals)),
	}
	for i, t := range a.terminals {
		s.Terminals[i] = TerminalStatus{Index: i, Occupied: t.IsOccupied(), Servicing: t.IsServicing()}
		if t.IsOccupied() {
			s.Terminals[i].Aircraft = t.aircraft.Callsign()
		}
	}
	return s
}

// FreeTerminals returns the number of terminals currently unassigned.
func (s Snapshot) FreeTerminals() int {
	n := 0
	for _, t := range s.Terminals {
		if !t.Occupied {
			n++
		}
	}
	return n
}
