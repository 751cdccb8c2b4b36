package airport

import (
	"slices"

	"airport-simulator/pkg/types"
)

// Reservation is the handle to a terminal held by one aircraft. It is only
// produced by a successful Tower.RequestTerminal and stays valid until it
// is passed to ReleaseTerminal; the zero value is never valid.
type Reservation struct {
	airport  *Airport
	terminal int
	epoch    uint64
	path     []types.Waypoint
}

func (r Reservation) Valid() bool {
	return r.airport != nil && r.epoch != 0
}

// Terminal is the index of the reserved terminal, or -1 for an invalid
// reservation.
func (r Reservation) Terminal() int {
	if !r.Valid() {
		return -1
	}
	return r.terminal
}

// Path is the taxi path from the approach fix to the reserved stand.
func (r Reservation) Path() []types.Waypoint {
	return slices.Clone(r.path)
}

// Tower is the only entry point aircraft use to deal with the airport.
// It holds a plain back-reference and lives exactly as long as its Airport.
type Tower struct {
	airport *Airport
}

// RequestTerminal reserves the first free terminal for ac. When every
// terminal is taken it returns false and changes nothing; the caller is
// expected to ask again on a later tick.
func (t *Tower) RequestTerminal(ac ParkedAircraft) (Reservation, bool) {
	return t.airport.reserveTerminal(ac)
}

func (t *Tower) ReleaseTerminal(r Reservation) error {
	return t.airport.freeTerminal(r)
}

// DeparturePath returns the path from the reserved stand back to the
// runway. Ask for it before releasing the terminal.
func (t *Tower) DeparturePath(r Reservation) ([]types.Waypoint, error) {
	return t.airport.startPath(r)
}

// ArrivedAtTerminal starts the turnaround of an aircraft that reached its
// stand.
func (t *Tower) ArrivedAtTerminal(r Reservation) error {
	return t.airport.startService(r)
}

func (t *Tower) ServiceComplete(r Reservation) (bool, error) {
	return t.airport.serviceDone(r)
}
