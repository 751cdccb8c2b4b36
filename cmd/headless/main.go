// Command headless runs the airport simulation without a window and prints
// a summary of the run.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"airport-simulator/internal/game/airport"
	"airport-simulator/internal/game/simulation"
	ilog "airport-simulator/internal/log"
	"airport-simulator/pkg/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/goforj/godump"
	"github.com/labstack/gommon/log"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(22)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	freeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	busyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func main() {
	configPath := flag.String("config", "airport.json", "configuration file")
	ticks := flag.Int("ticks", 5000, "number of ticks to run")
	dump := flag.Bool("dump", false, "dump the final airport state")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	lg, err := ilog.New("headless", cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		log.Fatal(err)
	}

	sim, err := simulation.NewSimulation(cfg, lg)
	if err != nil {
		lg.Fatal(err)
	}

	events := make(map[airport.EventType]int)
	sim.Airport.SetEventHandler(func(ev airport.Event) {
		events[ev.Type]++
	})

	var runErr error
	for range *ticks {
		if runErr = sim.Update(); runErr != nil {
			lg.Error(runErr)
			break
		}
	}

	fmt.Println(report(sim, events, runErr))
	if *dump {
		godump.Fdump(os.Stdout, sim.Airport.Snapshot())
	}
	if runErr != nil {
		os.Exit(1)
	}
}

func report(sim *simulation.Simulation, events map[airport.EventType]int, runErr error) string {
	snap := sim.Airport.Snapshot()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s after %d ticks", sim.Airspace.Site.Name, sim.Tick)))
	b.WriteString("\n")

	row := func(label string, v any) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(v)) + "\n")
	}
	row("Landed", sim.Landed)
	row("Departed", sim.Departed)
	row("Crashed", sim.Crashed)
	row("Holding retries", sim.HoldingRetries)
	row("Conflicts", sim.Conflicts)
	row("Aircraft in sector", len(sim.Aircrafts))
	row("Fuel stock", snap.FuelStock)
	row("Last order", snap.OrderedFuel)
	row("Next order in", snap.NextRefillTime)

	var stands []string
	for _, ts := range snap.Terminals {
		switch {
		case !ts.Occupied:
			stands = append(stands, freeStyle.Render(fmt.Sprintf("%d free", ts.Index)))
		case ts.Servicing:
			stands = append(stands, busyStyle.Render(fmt.Sprintf("%d %s (servicing)", ts.Index, ts.Aircraft)))
		default:
			stands = append(stands, busyStyle.Render(fmt.Sprintf("%d %s", ts.Index, ts.Aircraft)))
		}
	}
	b.WriteString("\n" + lipgloss.JoinVertical(lipgloss.Left, stands...) + "\n")

	kinds := slices.Sorted(maps.Keys(events))
	if len(kinds) > 0 {
		b.WriteString("\n")
	}
	for _, t := range kinds {
		row(string(t), events[t])
	}

	if runErr != nil {
		b.WriteString("\n" + warnStyle.Render(runErr.Error()))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
