// Package ui draws the heads-up display and tracks which debug overlays are on.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	FontSize      int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,
		Padding:       10,
		LineHeight:    16,
		LabelWidth:    90,
		FontSize:      12,
	}
}

// panel handles panel drawing with consistent styling.
type panel struct {
	Theme Theme
}

func newPanel() *panel {
	return &panel{Theme: DefaultTheme()}
}

// drawBackground draws a panel background with border.
func (p *panel) drawBackground(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, p.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, p.Theme.PanelBorder)
}

// drawLabelValue draws a label and value on the same line and returns the next Y.
func (p *panel) drawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, p.Theme.FontSize, p.Theme.LabelColor)
	rl.DrawText(value, x+p.Theme.LabelWidth, y, p.Theme.FontSize, p.Theme.ValueColor)
	return y + p.Theme.LineHeight
}
