package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilegrav/camera"
	"github.com/pthm-cable/tilegrav/telemetry"
	"github.com/pthm-cable/tilegrav/ui"
)

var backgroundColor = rl.Color{R: 12, G: 14, B: 20, A: 255}

// Draw renders one frame. Must be called after Update returns.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(backgroundColor)

	grid := g.sim.Grid()
	if g.overlays.IsEnabled(ui.OverlayTileMass) {
		g.tiles.DrawMass(grid)
	}
	if g.overlays.IsEnabled(ui.OverlayTileForce) {
		g.tiles.DrawForce(grid)
	}

	g.sim.Draw(camera.View{Cam: g.camera, Target: g.screen}, int(g.screenWidth), int(g.screenHeight))

	g.hud.Draw(ui.HUDData{
		Title:     "tilegrav",
		Backend:   g.sim.BackendName(),
		Particles: g.sim.Field().Len(),
		Rows:      grid.Rows(),
		Cols:      grid.Cols(),
		Tick:      g.sim.Tick(),
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
	})

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		stats := g.perfCollector.Stats()
		g.hud.DrawPerf(10, 100, ui.PerfPanelData{
			Phases: telemetry.Phases(),
			Avg:    stats.PhaseAvg,
			Pct:    stats.PhasePct,
			Total:  stats.AvgTickDuration,
		})
	}

	g.hud.DrawControls(g.screenWidth, g.overlays)
	g.syncGridOverlay()
	g.hud.DrawKeys(g.screenHeight, "SPACE pause | , . speed | arrows/wheel camera | HOME reset | G grid | M mass | F force | P perf")

	g.perfCollector.RecordFrame()
}
