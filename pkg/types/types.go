package types

import (
	"math"

	"golang.org/x/exp/constraints"
)

// NM_TO_PIXEL converts nautical miles to world units on the scope.
const NM_TO_PIXEL = 10.0

type AircraftID string

type Vec2 struct {
	X float64
	Y float64
}

func NewVec2(x, y float64) Vec2 {
	return Vec2{x, y}
}

func (v1 Vec2) Add(v2 Vec2) Vec2 {
	return Vec2{v1.X + v2.X, v1.Y + v2.Y}
}

func (v1 Vec2) Sub(v2 Vec2) Vec2 {
	return Vec2{v1.X - v2.X, v1.Y - v2.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v1 Vec2) DistanceTo(v2 Vec2) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// HeadingTo returns the bearing in degrees (0 = up, clockwise) from v1 to v2.
func (v1 Vec2) HeadingTo(v2 Vec2) float64 {
	dx := v2.X - v1.X
	dy := v2.Y - v1.Y
	h := math.Atan2(dx, -dy) * 180.0 / math.Pi
	return math.Mod(h+360, 360)
}

type WaypointKind int

const (
	WaypointAir WaypointKind = iota
	WaypointGround
	WaypointTerminal
)

func (k WaypointKind) String() string {
	switch k {
	case WaypointAir:
		return "AIR"
	case WaypointGround:
		return "GROUND"
	case WaypointTerminal:
		return "TERMINAL"
	default:
		return "UNKNOWN"
	}
}

type Waypoint struct {
	Name     string
	Position Vec2
	Kind     WaypointKind
}

func (wp Waypoint) IsOnGround() bool {
	return wp.Kind != WaypointAir
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
