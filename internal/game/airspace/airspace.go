package airspace

import (
	"fmt"

	"airport-simulator/pkg/types"
)

type Sector struct {
	Name   string
	Bounds []types.Vec2
}

// Contains reports whether p lies inside the sector's axis-aligned extent.
func (s *Sector) Contains(p types.Vec2) bool {
	if len(s.Bounds) == 0 {
		return false
	}
	minX, maxX := s.Bounds[0].X, s.Bounds[0].X
	minY, maxY := s.Bounds[0].Y, s.Bounds[0].Y
	for _, b := range s.Bounds[1:] {
		minX, maxX = min(minX, b.X), max(maxX, b.X)
		minY, maxY = min(minY, b.Y), max(maxY, b.Y)
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Site is an airport layout placed at a fixed position.
type Site struct {
	ID       string
	Name     string
	Position types.Vec2
	Type     *AirportType
}

type Airspace struct {
	Waypoints map[string]*types.Waypoint
	Sector    *Sector
	Site      *Site

	EntryWaypoints []string
}

func NewAirspace(width, height float64) *Airspace {
	ap := &Airspace{
		Waypoints:      make(map[string]*types.Waypoint),
		EntryWaypoints: []string{"APIPO", "BISKET", "EMETI", "FILKA"},
	}

	ap.addWaypoint("APIPO", width*0.1, height*0.14)
	ap.addWaypoint("BISKET", width*0.64, height*0.10)
	ap.addWaypoint("EMETI", width*0.25, height*0.90)
	ap.addWaypoint("FILKA", width*0.90, height*0.75)

	ap.Sector = &Sector{
		Name: "SECTOR1",
		Bounds: []types.Vec2{
			types.NewVec2(0, 0),
			types.NewVec2(width, 0),
			types.NewVec2(width, height),
			types.NewVec2(0, height),
		},
	}
	return ap
}

func (ap *Airspace) addWaypoint(name string, x, y float64) {
	ap.Waypoints[name] = &types.Waypoint{Name: name, Position: types.NewVec2(x, y), Kind: types.WaypointAir}
}

// SetAirport places the airspace's single airport.
func (ap *Airspace) SetAirport(id, name string, pos types.Vec2, at *AirportType) error {
	if at == nil {
		return fmt.Errorf("airport %s: nil layout", id)
	}
	ap.Site = &Site{ID: id, Name: name, Position: pos, Type: at}
	return nil
}
