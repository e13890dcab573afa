package camera

// Target receives screen-space draw calls.
type Target interface {
	DrawPoint(x, y int32)
	DrawLine(x0, y0, x1, y1 int32)
}

// View projects draw calls in world pixels through a camera onto a Target.
// Points outside the viewport are culled, as are lines lying entirely to one
// side of it; partially visible lines are left to the target to clip.
type View struct {
	Cam    *Camera
	Target Target
}

// DrawPoint projects and forwards a point.
func (v View) DrawPoint(x, y int32) {
	wx, wy := float32(x), float32(y)
	if !v.Cam.IsVisible(wx, wy, 2) {
		return
	}
	sx, sy := v.Cam.WorldToScreen(wx, wy)
	v.Target.DrawPoint(int32(sx), int32(sy))
}

// DrawLine projects and forwards a line.
func (v View) DrawLine(x0, y0, x1, y1 int32) {
	minX, minY, maxX, maxY := v.Cam.VisibleWorldBounds()
	ax, ay, bx, by := float32(x0), float32(y0), float32(x1), float32(y1)
	if (ax < minX && bx < minX) || (ax > maxX && bx > maxX) ||
		(ay < minY && by < minY) || (ay > maxY && by > maxY) {
		return
	}
	sx0, sy0 := v.Cam.WorldToScreen(float32(x0), float32(y0))
	sx1, sy1 := v.Cam.WorldToScreen(float32(x1), float32(y1))
	v.Target.DrawLine(int32(sx0), int32(sy0), int32(sx1), int32(sy1))
}
