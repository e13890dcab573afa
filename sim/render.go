package sim

import "github.com/pthm-cable/tilegrav/field"

// Renderer receives screen-space draw calls.
type Renderer interface {
	DrawPoint(x, y int32)
	DrawLine(x0, y0, x1, y1 int32)
}

// Segment is a line in normalized world space.
type Segment struct {
	A, B field.Vec2
}

// tileEdges returns the top and left edge of every tile, in tile order.
func tileEdges(g *field.Grid) []Segment {
	w, h := g.TileSize()
	segs := make([]Segment, 0, 2*g.Len())
	for _, p := range g.Pos {
		segs = append(segs,
			Segment{A: p, B: field.Vec2{X: p.X + w, Y: p.Y}},
			Segment{A: p, B: field.Vec2{X: p.X, Y: p.Y + h}},
		)
	}
	return segs
}

// toScreen maps a normalized position onto a width×height surface.
func toScreen(p field.Vec2, width, height int) (int32, int32) {
	return int32(p.X * float32(width)), int32(p.Y * float32(height))
}

// Draw emits one point per particle and, while the grid overlay is on,
// the emitted tile edges.
func (s *Simulation) Draw(r Renderer, width, height int) {
	for _, p := range s.field.Pos {
		x, y := toScreen(p, width, height)
		r.DrawPoint(x, y)
	}

	if !s.showGrid {
		return
	}
	for _, seg := range s.overlay {
		x0, y0 := toScreen(seg.A, width, height)
		x1, y1 := toScreen(seg.B, width, height)
		r.DrawLine(x0, y0, x1, y1)
	}
}
