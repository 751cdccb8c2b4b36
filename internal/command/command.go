// Package command parses the controller command line shared by the
// graphical and headless clients.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"airport-simulator/pkg/types"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
)

type CommandType int

const (
	CmdSpawn CommandType = iota
	CmdDump
	CmdPause
	CmdAltitude
)

// Command is one parsed command line.
//
//	SPAWN [n]              spawn n arrivals now (default 1)
//	DUMP [callsign]        dump the airport, or one aircraft
//	PAUSE                  toggle the tick loop
//	[callsign] A <feet>    new altitude for a holding or inbound aircraft
type Command struct {
	Type     CommandType
	Aircraft types.AircraftID
	Count    int
	Value    float64
}

// ParseCommand parses cmd. When the line carries no callsign the selected
// aircraft, if any, is used.
func ParseCommand(cmd string, selected types.AircraftID) (Command, error) {
	parts := strings.Fields(strings.ToUpper(cmd))
	if len(parts) == 0 {
		return Command{}, ErrEmptyCommand
	}

	switch parts[0] {
	case "SPAWN":
		c := Command{Type: CmdSpawn, Count: 1}
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n <= 0 {
				return Command{}, fmt.Errorf("spawn count %q: %w", parts[1], ErrBadArgument)
			}
			c.Count = n
		}
		return c, nil
	case "DUMP":
		c := Command{Type: CmdDump}
		if len(parts) > 1 {
			c.Aircraft = types.AircraftID(parts[1])
		}
		return c, nil
	case "PAUSE", "P":
		return Command{Type: CmdPause}, nil
	}

	id := selected
	if len(parts) == 3 {
		id = types.AircraftID(parts[0])
		parts = parts[1:]
	}
	if len(parts) != 2 {
		return Command{}, fmt.Errorf("%q: %w", cmd, ErrUnknownCommand)
	}
	if id == "" {
		return Command{}, fmt.Errorf("%q: no aircraft selected: %w", cmd, ErrBadArgument)
	}

	switch parts[0] {
	case "A", "ALT", "ALTITUDE":
		alt, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || alt < 0 {
			return Command{}, fmt.Errorf("altitude %q: %w", parts[1], ErrBadArgument)
		}
		return Command{Type: CmdAltitude, Aircraft: id, Value: alt}, nil
	default:
		return Command{}, fmt.Errorf("%q: %w", parts[0], ErrUnknownCommand)
	}
}
