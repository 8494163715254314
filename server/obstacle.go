package main

import "math"

const (
	ObstacleMinSize  = 40.0
	ObstacleMaxSize  = 100.0
	ObstacleMargin   = 50.0  // keep obstacles off the world edge
	SpawnClearRadius = 200.0 // no obstacles this close to the world centre
)

// Obstacle is a static rectangle that blocks movement and most bullets
type Obstacle struct {
	Rect
}

// World holds the bounds and static geometry of the map
type World struct {
	W, H      float64
	Obstacles []Obstacle
	grid      *SpatialGrid
}

// NewWorld creates an empty world of the given size
func NewWorld(w, h float64) *World {
	return &World{W: w, H: h, grid: NewSpatialGrid(w, h)}
}

// Reset removes all obstacles
func (w *World) Reset() {
	w.Obstacles = w.Obstacles[:0]
	w.grid.Clear()
}

// AddObstacle places an obstacle and indexes it
func (w *World) AddObstacle(r Rect) {
	w.Obstacles = append(w.Obstacles, Obstacle{Rect: r})
	w.grid.InsertRect(r, len(w.Obstacles)-1)
}

// Generate scatters up to count obstacles, skipping any that land near the
// world centre where the player spawns
func (w *World) Generate(rng *Rand, count int) {
	for i := 0; i < count; i++ {
		x := rng.Range(ObstacleMargin, w.W-ObstacleMargin)
		y := rng.Range(ObstacleMargin, w.H-ObstacleMargin)
		ow := rng.Range(ObstacleMinSize, ObstacleMaxSize)
		oh := rng.Range(ObstacleMinSize, ObstacleMaxSize)
		if math.Abs(x-w.W/2) <= SpawnClearRadius && math.Abs(y-w.H/2) <= SpawnClearRadius {
			continue
		}
		// Keep the rectangle inside the world
		ow = math.Min(ow, w.W-x)
		oh = math.Min(oh, w.H-y)
		w.AddObstacle(Rect{X: x, Y: y, W: ow, H: oh})
	}
}

// Blocked reports whether a circle overlaps any obstacle
func (w *World) Blocked(x, y, r float64) bool {
	return blockedByObstacle(w.Obstacles, w.grid, x, y, r)
}

// Move applies velocity to a circle of radius r. A move into an obstacle is
// rejected and the velocity bounced instead. The result is clamped to the
// world bounds minus r.
func (w *World) Move(x, y, vx, vy, r float64) (float64, float64, float64, float64) {
	nx := x + vx
	ny := y + vy
	if w.Blocked(nx, ny, r) {
		vx *= BounceFactor
		vy *= BounceFactor
	} else {
		x, y = nx, ny
	}
	x, y = w.ClampCircle(x, y, r)
	return x, y, vx, vy
}

// ClampCircle keeps a circle of radius r inside the world
func (w *World) ClampCircle(x, y, r float64) (float64, float64) {
	return Clamp(x, r, w.W-r), Clamp(y, r, w.H-r)
}

// Inside reports whether a point is strictly inside the world
func (w *World) Inside(x, y float64) bool {
	return x > 0 && x < w.W && y > 0 && y < w.H
}

// DrawCmd converts to a draw request
func (o Obstacle) DrawCmd(cam Camera) DrawCmd {
	sx, sy := cam.WorldToScreen(o.X, o.Y)
	return DrawCmd{
		Sprite: SpriteObstacle,
		X:      round1(sx),
		Y:      round1(sy),
		W:      round1(o.W),
		H:      round1(o.H),
		Color:  "#666",
	}
}
