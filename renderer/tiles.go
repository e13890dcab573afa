package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tilegrav/camera"
	"github.com/pthm-cable/tilegrav/field"
)

// TileRenderer shades tiles by aggregated mass and draws per-tile force arrows.
// The world is the width×height image of the unit square, viewed through a camera.
type TileRenderer struct {
	width, height float32
	cam           *camera.Camera
}

// NewTileRenderer creates a tile renderer for a width×height world.
func NewTileRenderer(width, height int32, cam *camera.Camera) *TileRenderer {
	return &TileRenderer{width: float32(width), height: float32(height), cam: cam}
}

// Resize updates the world dimensions and camera.
func (r *TileRenderer) Resize(width, height int32, cam *camera.Camera) {
	r.width = float32(width)
	r.height = float32(height)
	r.cam = cam
}

// tileRect returns the screen rectangle of tile i.
func (r *TileRenderer) tileRect(g *field.Grid, i int) (x, y, w, h int32) {
	tw, th := g.TileSize()
	p := g.Pos[i]
	sx, sy := r.cam.WorldToScreen(p.X*r.width, p.Y*r.height)
	x = int32(sx)
	y = int32(sy)
	w = int32(tw*r.width*r.cam.Zoom) + 1
	h = int32(th*r.height*r.cam.Zoom) + 1
	return x, y, w, h
}

// DrawMass shades each tile in proportion to its share of the heaviest tile.
func (r *TileRenderer) DrawMass(g *field.Grid) {
	var heaviest float32
	for _, m := range g.Mass {
		heaviest = max(heaviest, m)
	}
	if heaviest == 0 {
		return
	}

	for i, m := range g.Mass {
		if m == 0 {
			continue
		}
		x, y, w, h := r.tileRect(g, i)
		alpha := uint8(20 + 140*m/heaviest)
		rl.DrawRectangle(x, y, w, h, rl.Color{R: 60, G: 120, B: 200, A: alpha})
	}
}

// DrawForce draws an arrow from each tile's top-left corner along its net
// force. Lengths are normalized so the strongest arrow spans one tile.
func (r *TileRenderer) DrawForce(g *field.Grid) {
	var strongest float64
	for _, f := range g.Force {
		strongest = math.Max(strongest, math.Hypot(float64(f.X), float64(f.Y)))
	}
	if strongest == 0 {
		return
	}

	tw, th := g.TileSize()
	zoom := float64(r.cam.Zoom)
	sx := float64(tw*r.width) * zoom / strongest
	sy := float64(th*r.height) * zoom / strongest
	color := rl.Color{R: 230, G: 160, B: 60, A: 220}

	for i, f := range g.Force {
		x, y, _, _ := r.tileRect(g, i)
		ex := x + int32(float64(f.X)*sx)
		ey := y + int32(float64(f.Y)*sy)
		rl.DrawLine(x, y, ex, ey, color)
		rl.DrawCircle(ex, ey, 2, color)
	}
}
