package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"airport-simulator/internal/command"
	"airport-simulator/internal/game/aircraft"
	"airport-simulator/internal/game/airport"
	"airport-simulator/internal/game/simulation"
	ilog "airport-simulator/internal/log"
	"airport-simulator/internal/ui"
	"airport-simulator/pkg/config"
	"airport-simulator/pkg/types"

	"github.com/goforj/godump"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/labstack/gommon/log"
)

type Camera struct {
	X, Y                 float64
	PanStartX, PanStartY int
	Scale                float64
}

type Game struct {
	width, height int
	camera        *Camera
	sim           *simulation.Simulation
	lg            *log.Logger
	paused        bool

	selectedAircraftID types.AircraftID
	commandInput       *ui.TextInput
}

func NewGame(sim *simulation.Simulation, lg *log.Logger, screenWidth, screenHeight int) *Game {
	game := &Game{
		sim:    sim,
		lg:     lg,
		camera: &Camera{Scale: 1.0},
		width:  screenWidth,
		height: screenHeight,
	}

	game.commandInput = ui.NewTextInput(10, screenHeight-48, screenWidth/2, 30, func(cmd string) {
		game.parseAndExecuteCommand(cmd)
	})

	return game
}

func (g *Game) Update() error {
	g.handleInput()
	g.commandInput.Update()

	if g.paused {
		return nil
	}
	return g.sim.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0, 0, 0, 255})

	g.drawAirspace(screen)
	g.drawAirport(screen)

	for _, ac := range g.sim.Aircrafts {
		g.drawAircraft(screen, ac)
	}

	g.drawUI(screen)
	ebitenutil.DebugPrint(screen, "FPS: "+strconv.FormatFloat(ebiten.ActualFPS(), 'f', 2, 64))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.width, g.height
}

func (g *Game) handleInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()

		if g.commandInput.IsClicked(x, y) {
			g.commandInput.IsActive = true
			return
		}
		g.commandInput.IsActive = false

		wx, wy := g.screenToWorld(float64(x), float64(y))
		clicked := types.NewVec2(wx, wy)
		g.selectedAircraftID = ""

		for _, ac := range g.sim.Aircrafts {
			if ac.Position.DistanceTo(clicked) <= 8/g.camera.Scale {
				g.selectedAircraftID = ac.ID
				g.lg.Debugf("Selected aircraft: %s", g.selectedAircraftID)
				break
			}
		}
	}

	if !g.commandInput.IsActive && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}

	_, wy := ebiten.Wheel()
	if wy != 0 {
		cursorX, cursorY := ebiten.CursorPosition()
		worldX, worldY := g.screenToWorld(float64(cursorX), float64(cursorY))

		scale := g.camera.Scale
		if wy > 0 {
			scale *= 1.1
		} else {
			scale /= 1.1
		}
		g.camera.Scale = types.Clamp(scale, 0.5, 4.0)

		newWorldX, newWorldY := g.screenToWorld(float64(cursorX), float64(cursorY))
		g.camera.X -= (newWorldX - worldX)
		g.camera.Y -= (newWorldY - worldY)
	}

	// Right mouse button for pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		dx, dy := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		} else {
			g.camera.X -= float64(dx-g.camera.PanStartX) / g.camera.Scale
			g.camera.Y -= float64(dy-g.camera.PanStartY) / g.camera.Scale
			g.camera.PanStartX, g.camera.PanStartY = dx, dy
		}
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	g.lg.Infof("paused: %v", g.paused)
}

func (g *Game) screenToWorld(sx, sy float64) (wx, wy float64) {
	wx = sx/g.camera.Scale + g.camera.X
	wy = sy/g.camera.Scale + g.camera.Y
	return
}

func (g *Game) worldToScreen(p types.Vec2) (sx, sy float32) {
	sx = float32((p.X - g.camera.X) * g.camera.Scale)
	sy = float32((p.Y - g.camera.Y) * g.camera.Scale)
	return
}

func (g *Game) drawAircraft(screen *ebiten.Image, ac *aircraft.Aircraft) {
	sx, sy := g.worldToScreen(ac.Position)
	size := float32(6 * g.camera.Scale)

	c := color.RGBA{0, 255, 0, 255}
	switch ac.State {
	case aircraft.HOLDING:
		c = color.RGBA{255, 200, 0, 255}
	case aircraft.TAXI_IN, aircraft.PARKED, aircraft.TAXI_OUT:
		c = color.RGBA{180, 180, 180, 255}
	}

	// Nose, left wing, right wing.
	var pts [3][2]float32
	for i, off := range []float64{0, 140, 220} {
		r := (ac.Heading + off) * math.Pi / 180.0
		l := size
		if i > 0 {
			l = size * 0.7
		}
		pts[i] = [2]float32{sx + l*float32(math.Sin(r)), sy - l*float32(math.Cos(r))}
	}
	for i := range pts {
		j := (i + 1) % len(pts)
		vector.StrokeLine(screen, pts[i][0], pts[i][1], pts[j][0], pts[j][1], 1, c, false)
	}

	if g.selectedAircraftID == ac.ID {
		vector.StrokeRect(screen, sx-10, sy-10, 20, 20, 1, color.White, false)
	}

	tagText := fmt.Sprintf("%s\nALT:%.0f (%.0f)\nSPD:%.0f\nFUEL:%d/%d\nSTS: %s",
		ac.ID, ac.Altitude, ac.TargetAltitude, ac.Speed,
		ac.Fuel, ac.FuelCapacity, ac.State)
	if res, ok := g.sim.Reservation(ac.ID); ok {
		tagText += fmt.Sprintf("\nSTAND:%d", res.Terminal())
	}
	ebitenutil.DebugPrintAt(screen, tagText, int(sx)+10, int(sy)-20)

	if ac.IsConflicting {
		vector.DrawFilledCircle(screen, sx, sy, float32(10*g.camera.Scale), color.RGBA{255, 0, 0, 100}, false)
	}
}

func (g *Game) drawAirspace(screen *ebiten.Image) {
	for _, wp := range g.sim.Airspace.Waypoints {
		sx, sy := g.worldToScreen(wp.Position)
		vector.DrawFilledCircle(screen, sx, sy, float32(3*g.camera.Scale), color.RGBA{0, 255, 255, 255}, false)
		ebitenutil.DebugPrintAt(screen, wp.Name, int(sx)+5, int(sy)+5)
	}

	bounds := g.sim.Airspace.Sector.Bounds
	for i := range bounds {
		x1, y1 := g.worldToScreen(bounds[i])
		x2, y2 := g.worldToScreen(bounds[(i+1)%len(bounds)])
		vector.StrokeLine(screen, x1, y1, x2, y2, float32(g.camera.Scale), color.RGBA{0, 100, 0, 255}, false)
	}
}

func (g *Game) drawAirport(screen *ebiten.Image) {
	site := g.sim.Airspace.Site
	at := site.Type
	end := g.sim.Airport.RunwayEnd()

	r0, r1 := at.Runway.Ends[0].Threshold, at.Runway.Ends[1].Threshold
	x1, y1 := g.worldToScreen(site.Position.Add(r0))
	x2, y2 := g.worldToScreen(site.Position.Add(r1))
	vector.StrokeLine(screen, x1, y1, x2, y2, float32(4*g.camera.Scale), color.RGBA{90, 90, 90, 255}, false)

	snap := g.sim.Airport.Snapshot()
	for i, ts := range snap.Terminals {
		path, err := at.PathToTerminal(site.Position, end, i)
		if err != nil {
			continue
		}
		// Ground legs only, the approach leg is drawn with the fixes.
		for j := 1; j+1 < len(path); j++ {
			ax, ay := g.worldToScreen(path[j].Position)
			bx, by := g.worldToScreen(path[j+1].Position)
			vector.StrokeLine(screen, ax, ay, bx, by, 1, color.RGBA{60, 60, 120, 255}, false)
		}

		sx, sy := g.worldToScreen(path[len(path)-1].Position)
		vector.DrawFilledRect(screen, sx-6, sy-6, 12, 12, terminalColor(ts), false)
		ebitenutil.DebugPrintAt(screen, at.Terminals[i].Name, int(sx)-6, int(sy)+8)
	}
}

func terminalColor(ts airport.TerminalStatus) color.Color {
	switch {
	case ts.Servicing:
		return color.RGBA{255, 160, 0, 255}
	case ts.Occupied:
		return color.RGBA{200, 0, 0, 255}
	default:
		return color.RGBA{0, 160, 0, 255}
	}
}

func (g *Game) drawUI(screen *ebiten.Image) {
	g.commandInput.Draw(screen)

	snap := g.sim.Airport.Snapshot()
	hud := fmt.Sprintf("TICK %d  FUEL %d  LAST ORDER %d  NEXT ORDER IN %d\nSTANDS FREE %d/%d  HOLDING %d\nLANDED %d  DEPARTED %d  CRASHED %d",
		snap.Tick, snap.FuelStock, snap.OrderedFuel, snap.NextRefillTime,
		snap.FreeTerminals(), len(snap.Terminals), len(g.sim.Holding()),
		g.sim.Landed, g.sim.Departed, g.sim.Crashed)
	if g.paused {
		hud += "\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, 20)

	y := 90
	logStart := max(0, len(g.sim.RadioLog)-6)
	for _, m := range g.sim.RadioLog[logStart:] {
		prefix := ""
		if m.IsUrgent {
			prefix = "!! "
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s[%d] %s, %s", prefix, m.Tick, m.Callsign, m.Message), 10, y)
		y += 16
	}

	selectedAcText := "Selected: None"
	if g.selectedAircraftID != "" {
		selectedAcText = "Selected: " + string(g.selectedAircraftID)
	}
	ebitenutil.DebugPrintAt(screen, selectedAcText, 10, g.height-68)
}

func (g *Game) parseAndExecuteCommand(cmd string) {
	c, err := command.ParseCommand(cmd, g.selectedAircraftID)
	if err != nil {
		g.lg.Warnf("%v", err)
		return
	}

	switch c.Type {
	case command.CmdSpawn:
		for range c.Count {
			g.sim.SpawnAircraft()
		}
	case command.CmdPause:
		g.togglePause()
	case command.CmdDump:
		if c.Aircraft == "" {
			godump.Dump(g.sim.Airport.Snapshot())
			return
		}
		ac, ok := g.sim.Aircrafts[c.Aircraft]
		if !ok {
			g.lg.Warnf("Aircraft %s not found.", c.Aircraft)
			return
		}
		godump.Dump(ac)
	case command.CmdAltitude:
		if err := g.sim.IssueAltitude(c.Aircraft, c.Value); err != nil {
			g.lg.Warnf("%v", err)
			return
		}
		g.lg.Infof("Issued A %.0f to %s", c.Value, c.Aircraft)
	}
}

func main() {
	configPath := flag.String("config", "airport.json", "configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	lg, err := ilog.New("client", cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		log.Fatal(err)
	}

	sim, err := simulation.NewSimulation(cfg, lg)
	if err != nil {
		lg.Fatal(err)
	}

	w, h := int(cfg.Simulation.Width), int(cfg.Simulation.Height)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Airport Simulator")
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(int(math.Max(1, cfg.Simulation.TickRate)))

	game := NewGame(sim, lg, w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		lg.Fatal(err)
	}
}
