package airspace

import (
	"errors"
	"math"
	"testing"

	"airport-simulator/pkg/types"
)

func TestPathRoundTrip(t *testing.T) {
	at := DefaultAirportType()
	pos := types.NewVec2(512, 384)

	for end := 0; end < 2; end++ {
		for term := 0; term < at.TerminalCount(); term++ {
			in, err := at.PathToTerminal(pos, end, term)
			if err != nil {
				t.Fatalf("PathToTerminal(%d, %d): %v", end, term, err)
			}
			out, err := at.PathFromTerminal(pos, end, term)
			if err != nil {
				t.Fatalf("PathFromTerminal(%d, %d): %v", end, term, err)
			}
			if len(in) == 0 || len(in) != len(out) {
				t.Fatalf("end %d terminal %d: lengths %d and %d", end, term, len(in), len(out))
			}
			if in[0] != out[len(out)-1] || in[len(in)-1] != out[0] {
				t.Errorf("end %d terminal %d: endpoints do not swap", end, term)
			}
			for i := range in {
				if in[i] != out[len(out)-1-i] {
					t.Errorf("end %d terminal %d: waypoint %d differs", end, term, i)
				}
			}

			want, _ := at.TerminalPosition(pos, term)
			if last := in[len(in)-1]; last.Position != want || last.Kind != types.WaypointTerminal {
				t.Errorf("end %d terminal %d: path ends at %+v, want terminal at %v", end, term, last, want)
			}
			if in[0].Kind != types.WaypointAir {
				t.Errorf("end %d terminal %d: path starts on the ground", end, term)
			}
		}
	}
}

func TestPathIsDeterministicAndCopied(t *testing.T) {
	at := DefaultAirportType()
	pos := types.NewVec2(10, 20)

	first, err := at.PathToTerminal(pos, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := append([]types.Waypoint(nil), first...)
	first[0].Name = "SCRIBBLED"

	second, err := at.PathToTerminal(pos, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if second[i] != want[i] {
			t.Errorf("waypoint %d: got %+v, want %+v", i, second[i], want[i])
		}
	}

	// The same layout placed elsewhere yields a translated path.
	moved, _ := at.PathToTerminal(pos.Add(types.NewVec2(100, 0)), 0, 1)
	for i := range want {
		if d := moved[i].Position.X - want[i].Position.X; math.Abs(d-100) > 1e-9 {
			t.Errorf("waypoint %d not translated: %v vs %v", i, moved[i].Position, want[i].Position)
		}
	}
}

func TestPathErrors(t *testing.T) {
	at := DefaultAirportType()
	if _, err := at.PathToTerminal(types.Vec2{}, 0, at.TerminalCount()); !errors.Is(err, ErrTerminalOutOfRange) {
		t.Errorf("out of range terminal: got %v", err)
	}
	if _, err := at.PathFromTerminal(types.Vec2{}, 0, -1); !errors.Is(err, ErrTerminalOutOfRange) {
		t.Errorf("negative terminal: got %v", err)
	}
	if _, err := at.PathToTerminal(types.Vec2{}, 2, 0); !errors.Is(err, ErrUnknownRunwayEnd) {
		t.Errorf("bad runway end: got %v", err)
	}
	if _, err := NewAirportType("empty", at.Runway, nil, 10); !errors.Is(err, ErrNoTerminals) {
		t.Errorf("no terminals: got %v", err)
	}
}

func TestSectorContains(t *testing.T) {
	as := NewAirspace(1024, 768)
	if !as.Sector.Contains(types.NewVec2(500, 500)) {
		t.Error("center should be inside the sector")
	}
	if as.Sector.Contains(types.NewVec2(-10, 500)) {
		t.Error("point left of the sector should be outside")
	}
}
