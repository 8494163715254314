package main

import "math"

// CheckCollision reports whether two circles overlap.
// Touching circles (distance == r1+r2) do not collide.
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 < radSum*radSum
}

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether the point lies inside r (edges inclusive)
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// CheckRectCircle reports whether a circle overlaps the rectangle.
// The closest point of the rectangle must be strictly inside the circle.
func CheckRectCircle(r Rect, cx, cy, cr float64) bool {
	nx := Clamp(cx, r.X, r.X+r.W)
	ny := Clamp(cy, r.Y, r.Y+r.H)
	dx := cx - nx
	dy := cy - ny
	return dx*dx+dy*dy < cr*cr
}

// CheckBeam reports whether a point sits on a beam fired from (ox,oy) along
// angle: closer than length and within tolerance radians of the beam axis.
func CheckBeam(ox, oy, angle, length, tolerance, px, py float64) bool {
	dx := px - ox
	dy := py - oy
	if dx*dx+dy*dy >= length*length {
		return false
	}
	diff := math.Abs(NormalizeAngle(math.Atan2(dy, dx) - angle))
	return diff < tolerance
}

// blockedByObstacle returns true if a circle at (x,y) overlaps any obstacle.
// grid may be nil, in which case every obstacle is tested.
func blockedByObstacle(obstacles []Obstacle, grid *SpatialGrid, x, y, r float64) bool {
	if grid != nil {
		var buf [16]int
		for _, idx := range grid.QueryBuf(x, y, r, buf[:0]) {
			if CheckRectCircle(obstacles[idx].Rect, x, y, r) {
				return true
			}
		}
		return false
	}
	for i := range obstacles {
		if CheckRectCircle(obstacles[i].Rect, x, y, r) {
			return true
		}
	}
	return false
}
