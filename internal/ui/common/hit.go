package common

// HitRegion represents a rectangular hit target in screen coordinates.
type HitRegion struct {
	ID     string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point is within the hit region bounds.
func (h HitRegion) Contains(x, y int) bool {
	return x >= h.X && x < h.X+h.Width && y >= h.Y && y < h.Y+h.Height
}

// Local converts a screen point to region-local coordinates.
func (h HitRegion) Local(x, y int) (int, int) {
	return x - h.X, y - h.Y
}

// Empty reports whether the region covers no cells.
func (h HitRegion) Empty() bool {
	return h.Width <= 0 || h.Height <= 0
}
