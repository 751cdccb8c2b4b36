package airport

import (
	"airport-simulator/pkg/types"

	"github.com/labstack/gommon/log"
)

type EventType string

const (
	EventFuelOrdered      EventType = "FUEL_ORDERED"
	EventTerminalStarved  EventType = "TERMINAL_STARVED"
	EventTerminalReserved EventType = "TERMINAL_RESERVED"
	EventTerminalReleased EventType = "TERMINAL_RELEASED"
	EventNoTerminal       EventType = "NO_TERMINAL"
	EventServiceStarted   EventType = "SERVICE_STARTED"
)

// Event is emitted at well-defined points of the reservation protocol and
// the fuel cycle. Fields that do not apply to a given type are zero;
// Terminal is -1 when no terminal is involved.
type Event struct {
	Type     EventType
	Tick     uint64
	Terminal int
	Aircraft types.AircraftID
	Demand   int
	Quantity int
	Stock    int
}

// EventHandler receives events synchronously, with the airport lock held.
type EventHandler func(Event)

func (ev Event) record() log.JSON {
	j := log.JSON{
		"event": ev.Type,
		"tick":  ev.Tick,
		"stock": ev.Stock,
	}
	if ev.Terminal >= 0 {
		j["terminal"] = ev.Terminal
	}
	if ev.Aircraft != "" {
		j["aircraft"] = ev.Aircraft
	}
	if ev.Type == EventFuelOrdered {
		j["demand"] = ev.Demand
		j["ordered"] = ev.Quantity
	}
	return j
}

func (a *Airport) emit(ev Event) {
	ev.Tick = a.tick
	ev.Stock = a.fuelStock

	switch ev.Type {
	case EventTerminalStarved, EventNoTerminal:
		a.lg.Debugj(ev.record())
	default:
		a.lg.Infoj(ev.record())
	}

	if a.onEvent != nil {
		a.onEvent(ev)
	}
}
