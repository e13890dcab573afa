package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	Backend   string
	Particles int
	Rows      int
	Cols      int
	Tick      int64
	FPS       int32
	Paused    bool
}

// HUD renders the main heads-up display and the overlay controls.
type HUD struct {
	panel *panel
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{panel: newPanel()}
}

// Draw renders the status lines.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Grid: %dx%d | Backend: %s", data.Particles, data.Rows, data.Cols, data.Backend),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders one raygui checkbox per overlay in the top-right
// corner and applies clicks to the registry.
func (h *HUD) DrawControls(screenWidth int32, overlays *OverlayRegistry) {
	const (
		width = 170
		box   = 14
	)
	t := h.panel.Theme
	all := overlays.All()
	x := screenWidth - width - t.Padding
	y := t.Padding
	height := int32(len(all))*(box+6) + t.Padding*2 + t.LineHeight

	h.panel.drawBackground(x, y, width, height)
	rl.DrawText("Overlays", x+t.Padding, y+t.Padding, 14, t.SectionHeader)

	row := y + t.Padding + t.LineHeight + 2
	for _, desc := range all {
		bounds := rl.Rectangle{X: float32(x + t.Padding), Y: float32(row), Width: box, Height: box}
		label := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
		was := overlays.IsEnabled(desc.ID)
		if now := gui.CheckBox(bounds, label, was); now != was {
			overlays.SetEnabled(desc.ID, now)
		}
		row += box + 6
	}
}

// DrawKeys renders the key legend at the bottom of the screen.
func (h *HUD) DrawKeys(screenHeight int32, keys string) {
	rl.DrawText(keys, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds per-phase timings for display.
type PerfPanelData struct {
	Phases []string
	Avg    map[string]time.Duration
	Pct    map[string]float64
	Total  time.Duration
}

// DrawPerf renders the phase timing panel at (x, y).
func (h *HUD) DrawPerf(x, y int32, data PerfPanelData) {
	t := h.panel.Theme
	height := int32(len(data.Phases)+2)*t.LineHeight + t.Padding*2
	h.panel.drawBackground(x, y, 220, height)

	y += t.Padding
	rl.DrawText("Frame Phases", x+t.Padding, y, 14, t.SectionHeader)
	y += t.LineHeight
	y = h.panel.drawLabelValue(x+t.Padding, y, "total", data.Total.Round(time.Microsecond).String())

	for _, phase := range data.Phases {
		value := fmt.Sprintf("%s %5.1f%%", data.Avg[phase].Round(time.Microsecond), data.Pct[phase])
		y = h.panel.drawLabelValue(x+t.Padding, y, phase, value)
	}
}
