// Package renderer draws the simulation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Screen draws particles and overlay lines. It satisfies sim.Renderer and
// must only be used between rl.BeginDrawing and rl.EndDrawing.
type Screen struct {
	PointColor rl.Color
	LineColor  rl.Color
	PointSize  float32
}

// NewScreen creates a screen renderer with the default palette.
func NewScreen() *Screen {
	return &Screen{
		PointColor: rl.Color{R: 235, G: 235, B: 245, A: 255},
		LineColor:  rl.Color{R: 70, G: 90, B: 110, A: 200},
		PointSize:  1.5,
	}
}

// DrawPoint draws one particle.
func (s *Screen) DrawPoint(x, y int32) {
	if s.PointSize <= 1 {
		rl.DrawPixel(x, y, s.PointColor)
		return
	}
	rl.DrawCircle(x, y, s.PointSize, s.PointColor)
}

// DrawLine draws one overlay segment.
func (s *Screen) DrawLine(x0, y0, x1, y1 int32) {
	rl.DrawLine(x0, y0, x1, y1, s.LineColor)
}
