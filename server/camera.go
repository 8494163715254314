package main

// Camera is the viewport into the world. X/Y is the top-left corner in world
// coordinates.
type Camera struct {
	X, Y float64
	W, H float64
}

// Follow centres the camera on (x,y) and clamps it inside the world
func (c *Camera) Follow(x, y, worldW, worldH float64) {
	c.X = Clamp(x-c.W/2, 0, worldW-c.W)
	c.Y = Clamp(y-c.H/2, 0, worldH-c.H)
}

// WorldToScreen maps a world point into viewport coordinates
func (c Camera) WorldToScreen(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}

// ScreenToWorld maps a viewport point into world coordinates
func (c Camera) ScreenToWorld(x, y float64) (float64, float64) {
	return x + c.X, y + c.Y
}

// Visible reports whether a world point lies within the viewport grown by
// margin on every side
func (c Camera) Visible(x, y, margin float64) bool {
	sx, sy := c.WorldToScreen(x, y)
	return sx >= -margin && sx <= c.W+margin && sy >= -margin && sy <= c.H+margin
}
