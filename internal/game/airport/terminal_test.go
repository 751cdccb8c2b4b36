package airport

import (
	"errors"
	"testing"

	"airport-simulator/pkg/types"
)

type fakeAircraft struct {
	id       types.AircraftID
	need     int
	received int
	ticks    int
}

func (f *fakeAircraft) Callsign() types.AircraftID { return f.id }
func (f *fakeAircraft) FuelNeeded() int             { return f.need }
func (f *fakeAircraft) ParkedTick()                 { f.ticks++ }

func (f *fakeAircraft) Refuel(q int) {
	f.need -= q
	f.received += q
}

func TestTerminalAssignRelease(t *testing.T) {
	term := newTerminal(0, DefaultServiceCycles)
	if term.IsOccupied() {
		t.Fatal("new terminal should be free")
	}

	ac := &fakeAircraft{id: "AAL100"}
	if err := term.Assign(ac); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !term.IsOccupied() {
		t.Error("terminal should be occupied after Assign")
	}
	if err := term.Assign(&fakeAircraft{id: "DAL200"}); !errors.Is(err, ErrTerminalOccupied) {
		t.Errorf("double assign: got %v, want ErrTerminalOccupied", err)
	}
	if term.Aircraft() != ac {
		t.Error("double assign replaced the aircraft")
	}

	if err := term.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if term.IsOccupied() {
		t.Error("terminal should be free after Release")
	}
	if err := term.Release(); !errors.Is(err, ErrTerminalNotOccupied) {
		t.Errorf("double release: got %v, want ErrTerminalNotOccupied", err)
	}
	if err := term.Assign(nil); !errors.Is(err, ErrNilAircraft) {
		t.Errorf("nil assign: got %v, want ErrNilAircraft", err)
	}
}

func TestTerminalRefillIfNeeded(t *testing.T) {
	for _, tc := range []struct {
		name      string
		occupied  bool
		need      int
		stock     int
		wantDrawn int
		wantStock int
	}{
		{"enough stock", true, 300, 1000, 300, 700},
		{"short stock", true, 300, 100, 100, 0},
		{"empty stock", true, 300, 0, 0, 0},
		{"no need", true, 0, 1000, 0, 1000},
		{"unoccupied", false, 300, 1000, 0, 1000},
	} {
		t.Run(tc.name, func(t *testing.T) {
			term := newTerminal(0, DefaultServiceCycles)
			ac := &fakeAircraft{id: "UAL1", need: tc.need}
			if tc.occupied {
				if err := term.Assign(ac); err != nil {
					t.Fatal(err)
				}
			}
			stock := tc.stock
			drawn := term.RefillIfNeeded(&stock)
			if drawn != tc.wantDrawn {
				t.Errorf("drawn: got %d, want %d", drawn, tc.wantDrawn)
			}
			if stock != tc.wantStock {
				t.Errorf("stock: got %d, want %d", stock, tc.wantStock)
			}
			if tc.occupied && ac.received != drawn {
				t.Errorf("aircraft received %d, terminal drew %d", ac.received, drawn)
			}
		})
	}
}

func TestTerminalService(t *testing.T) {
	const cycles = 3
	term := newTerminal(0, cycles)
	ac := &fakeAircraft{id: "JBU7"}

	if err := term.StartService(); !errors.Is(err, ErrTerminalNotOccupied) {
		t.Errorf("StartService on free terminal: got %v", err)
	}
	if err := term.Assign(ac); err != nil {
		t.Fatal(err)
	}
	if term.IsServicing() || term.ServiceDone() {
		t.Error("service should not run before StartService")
	}
	if err := term.StartService(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < cycles; i++ {
		if !term.IsServicing() {
			t.Fatalf("tick %d: expected servicing", i)
		}
		term.AdvanceTick()
	}
	if term.IsServicing() {
		t.Error("service should be over")
	}
	if !term.ServiceDone() {
		t.Error("ServiceDone should be true")
	}
	if ac.ticks != cycles {
		t.Errorf("ParkedTick calls: got %d, want %d", ac.ticks, cycles)
	}

	// Occupancy is unaffected by ticking.
	term.AdvanceTick()
	if !term.IsOccupied() {
		t.Error("AdvanceTick freed the terminal")
	}
}
