package airspace

import (
	"errors"
	"fmt"
	"slices"

	"airport-simulator/pkg/types"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrTerminalOutOfRange = errors.New("terminal index out of range")
	ErrUnknownRunwayEnd   = errors.New("unknown runway end")
	ErrNoTerminals        = errors.New("airport layout has no terminals")
)

const pathCacheSize = 64

// RunwayEnd is one usable direction of a runway. Offsets are relative to
// the airport reference position.
type RunwayEnd struct {
	Name      string
	Threshold types.Vec2
	Exit      types.Vec2 // first taxiway node after rollout
}

type Runway struct {
	Name string
	Ends [2]RunwayEnd
}

func (r Runway) Heading(end int) float64 {
	return r.Ends[end].Threshold.HeadingTo(r.Ends[1-end].Threshold)
}

type TerminalLayout struct {
	Name     string
	Position types.Vec2
	Entry    types.Vec2 // taxiway node in front of the stand
}

// AirportType is an immutable airport layout. A single AirportType may be
// shared by several airports placed at different positions.
type AirportType struct {
	Name             string
	Runway           Runway
	Terminals        []TerminalLayout
	ApproachDistance float64

	paths *lru.Cache[pathKey, []types.Waypoint]
}

type pathKey struct {
	pos      types.Vec2
	end      int
	terminal int
	outbound bool
}

func NewAirportType(name string, runway Runway, terminals []TerminalLayout, approachDistance float64) (*AirportType, error) {
	if len(terminals) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoTerminals)
	}
	cache, err := lru.New[pathKey, []types.Waypoint](pathCacheSize)
	if err != nil {
		return nil, err
	}
	return &AirportType{
		Name:             name,
		Runway:           runway,
		Terminals:        slices.Clone(terminals),
		ApproachDistance: approachDistance,
		paths:            cache,
	}, nil
}

// DefaultAirportType is a single runway with three stands along a parallel
// taxiway.
func DefaultAirportType() *AirportType {
	runway := Runway{
		Name: "09/27",
		Ends: [2]RunwayEnd{
			{Name: "09", Threshold: types.NewVec2(-120, 0), Exit: types.NewVec2(90, 30)},
			{Name: "27", Threshold: types.NewVec2(120, 0), Exit: types.NewVec2(-90, 30)},
		},
	}
	terminals := []TerminalLayout{
		{Name: "A1", Position: types.NewVec2(-60, 80), Entry: types.NewVec2(-60, 45)},
		{Name: "A2", Position: types.NewVec2(0, 80), Entry: types.NewVec2(0, 45)},
		{Name: "A3", Position: types.NewVec2(60, 80), Entry: types.NewVec2(60, 45)},
	}
	at, err := NewAirportType("one-runway", runway, terminals, 25*types.NM_TO_PIXEL)
	if err != nil {
		panic(err)
	}
	return at
}

func (at *AirportType) TerminalCount() int {
	return len(at.Terminals)
}

// TerminalPosition returns the world position of a stand for an airport
// placed at pos.
func (at *AirportType) TerminalPosition(pos types.Vec2, terminal int) (types.Vec2, error) {
	if terminal < 0 || terminal >= len(at.Terminals) {
		return types.Vec2{}, fmt.Errorf("terminal %d of %d: %w", terminal, len(at.Terminals), ErrTerminalOutOfRange)
	}
	return pos.Add(at.Terminals[terminal].Position), nil
}

// PathToTerminal returns the waypoints from the approach fix of the given
// runway end, through touchdown and the taxiway, to the stand.
func (at *AirportType) PathToTerminal(pos types.Vec2, runwayEnd, terminal int) ([]types.Waypoint, error) {
	return at.path(pathKey{pos: pos, end: runwayEnd, terminal: terminal})
}

// PathFromTerminal is the exact reverse of PathToTerminal.
func (at *AirportType) PathFromTerminal(pos types.Vec2, runwayEnd, terminal int) ([]types.Waypoint, error) {
	return at.path(pathKey{pos: pos, end: runwayEnd, terminal: terminal, outbound: true})
}

func (at *AirportType) path(key pathKey) ([]types.Waypoint, error) {
	if key.end < 0 || key.end >= len(at.Runway.Ends) {
		return nil, fmt.Errorf("runway end %d: %w", key.end, ErrUnknownRunwayEnd)
	}
	if key.terminal < 0 || key.terminal >= len(at.Terminals) {
		return nil, fmt.Errorf("terminal %d of %d: %w", key.terminal, len(at.Terminals), ErrTerminalOutOfRange)
	}

	if wps, ok := at.paths.Get(key); ok {
		return slices.Clone(wps), nil
	}

	wps := at.inbound(key.pos, key.end, key.terminal)
	if key.outbound {
		slices.Reverse(wps)
	}
	at.paths.Add(key, wps)
	return slices.Clone(wps), nil
}

func (at *AirportType) inbound(pos types.Vec2, end, terminal int) []types.Waypoint {
	re := at.Runway.Ends[end]
	other := at.Runway.Ends[1-end]
	term := at.Terminals[terminal]

	// The approach fix sits on the extended centerline before the threshold.
	dir := re.Threshold.Sub(other.Threshold)
	if l := dir.DistanceTo(types.Vec2{}); l > 0 {
		dir = dir.Scale(1 / l)
	}
	fix := re.Threshold.Add(dir.Scale(at.ApproachDistance))

	return []types.Waypoint{
		{Name: re.Name + "-FIX", Position: pos.Add(fix), Kind: types.WaypointAir},
		{Name: re.Name, Position: pos.Add(re.Threshold), Kind: types.WaypointGround},
		{Name: re.Name + "-EXIT", Position: pos.Add(re.Exit), Kind: types.WaypointGround},
		{Name: term.Name + "-ENTRY", Position: pos.Add(term.Entry), Kind: types.WaypointGround},
		{Name: term.Name, Position: pos.Add(term.Position), Kind: types.WaypointTerminal},
	}
}
