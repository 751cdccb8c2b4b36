package airport

import (
	"fmt"

	"airport-simulator/pkg/types"
)

// ParkedAircraft is what a terminal needs from the aircraft it hosts.
// Implementations are called with the airport lock held and must not call
// back into the Tower.
type ParkedAircraft interface {
	Callsign() types.AircraftID
	// FuelNeeded is the quantity still missing to fill the tanks.
	FuelNeeded() int
	Refuel(quantity int)
	// ParkedTick advances the aircraft's own state while at the stand.
	ParkedTick()
}

// Terminal is a single parking stand.
type Terminal struct {
	index    int
	aircraft ParkedAircraft
	epoch    uint64

	serviceCycles   int
	serviceProgress int
	serviceStarted  bool
}

func newTerminal(index, serviceCycles int) *Terminal {
	return &Terminal{
		index:           index,
		serviceCycles:   serviceCycles,
		serviceProgress: serviceCycles,
	}
}

func (t *Terminal) Index() int {
	return t.index
}

func (t *Terminal) IsOccupied() bool {
	return t.aircraft != nil
}

func (t *Terminal) Aircraft() ParkedAircraft {
	return t.aircraft
}

func (t *Terminal) Assign(ac ParkedAircraft) error {
	if ac == nil {
		return fmt.Errorf("terminal %d: %w", t.index, ErrNilAircraft)
	}
	if t.IsOccupied() {
		return fmt.Errorf("terminal %d held by %s: %w", t.index, t.aircraft.Callsign(), ErrTerminalOccupied)
	}
	t.aircraft = ac
	t.serviceProgress = t.serviceCycles
	t.serviceStarted = false
	return nil
}

func (t *Terminal) Release() error {
	if !t.IsOccupied() {
		return fmt.Errorf("terminal %d: %w", t.index, ErrTerminalNotOccupied)
	}
	t.aircraft = nil
	t.epoch = 0
	t.serviceProgress = t.serviceCycles
	t.serviceStarted = false
	return nil
}

// StartService begins the turnaround of the aircraft that just reached the
// stand.
func (t *Terminal) StartService() error {
	if !t.IsOccupied() {
		return fmt.Errorf("terminal %d: %w", t.index, ErrTerminalNotOccupied)
	}
	t.serviceProgress = 0
	t.serviceStarted = true
	return nil
}

func (t *Terminal) IsServicing() bool {
	return t.IsOccupied() && t.serviceStarted && t.serviceProgress < t.serviceCycles
}

// ServiceDone reports whether the hosted aircraft has been through a full
// service cycle.
func (t *Terminal) ServiceDone() bool {
	return t.IsOccupied() && t.serviceStarted && !t.IsServicing()
}

// RefillIfNeeded moves fuel from the shared stock into the hosted aircraft,
// never more than it needs nor more than the stock holds, and returns the
// quantity drawn.
func (t *Terminal) RefillIfNeeded(stock *int) int {
	if !t.IsOccupied() || stock == nil || *stock <= 0 {
		return 0
	}
	need := t.aircraft.FuelNeeded()
	if need <= 0 {
		return 0
	}
	drawn := min(need, *stock)
	*stock -= drawn
	t.aircraft.Refuel(drawn)
	return drawn
}

func (t *Terminal) AdvanceTick() {
	if !t.IsOccupied() {
		return
	}
	if t.IsServicing() {
		t.serviceProgress++
	}
	t.aircraft.ParkedTick()
}
