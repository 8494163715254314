package main

// SpatialCellSize is ~the largest obstacle edge (100)
const SpatialCellSize = 100.0

// SpatialGrid is a fixed-size grid for broad-phase obstacle queries.
// Obstacles never move, so the grid is filled once per map.
type SpatialGrid struct {
	cols, rows int
	cells      [][]int
}

// NewSpatialGrid creates a grid covering a world of the given size
func NewSpatialGrid(worldW, worldH float64) *SpatialGrid {
	cols := int(worldW/SpatialCellSize) + 1
	rows := int(worldH/SpatialCellSize) + 1
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]int, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) span(minX, minY, maxX, maxY float64) (int, int, int, int) {
	minCX := int(minX / SpatialCellSize)
	maxCX := int(maxX / SpatialCellSize)
	minCY := int(minY / SpatialCellSize)
	maxCY := int(maxY / SpatialCellSize)
	if minCX < 0 {
		minCX = 0
	}
	if maxCX >= g.cols {
		maxCX = g.cols - 1
	}
	if minCY < 0 {
		minCY = 0
	}
	if maxCY >= g.rows {
		maxCY = g.rows - 1
	}
	return minCX, minCY, maxCX, maxCY
}

// InsertRect adds an index to all cells overlapping the rectangle
func (g *SpatialGrid) InsertRect(r Rect, idx int) {
	minCX, minCY, maxCX, maxCY := g.span(r.X, r.Y, r.X+r.W, r.Y+r.H)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			i := cy*g.cols + cx
			g.cells[i] = append(g.cells[i], idx)
		}
	}
}

// QueryBuf appends the indices stored in cells overlapping the circle's
// bounding box to buf. An index spanning several cells is reported once.
func (g *SpatialGrid) QueryBuf(x, y, radius float64, buf []int) []int {
	minCX, minCY, maxCX, maxCY := g.span(x-radius, y-radius, x+radius, y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			for _, idx := range g.cells[cy*g.cols+cx] {
				if !containsInt(buf, idx) {
					buf = append(buf, idx)
				}
			}
		}
	}
	return buf
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
