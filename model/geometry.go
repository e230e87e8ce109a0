package model

// Point represents a 2D pixel position.
type Point struct {
	X, Y int
}

// BBox represents an axis-aligned bounding box in pixel coordinates.
// X1 < X2 and Y1 < Y2 for any valid box; Y increases downward.
type BBox struct {
	X1 int // Left
	Y1 int // Top
	X2 int // Right
	Y2 int // Bottom
}

// NewBBox creates a bounding box from its corner coordinates.
func NewBBox(x1, y1, x2, y2 int) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the box width in pixels.
func (b BBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b BBox) Height() int {
	return b.Y2 - b.Y1
}

// Area returns the box area in square pixels.
func (b BBox) Area() int {
	return b.Width() * b.Height()
}

// Center returns the center point of the box. For odd dimensions the
// result is truncated toward the top-left corner.
func (b BBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Contains reports whether the point lies inside the box, edges included.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.X1 && p.X <= b.X2 && p.Y >= b.Y1 && p.Y <= b.Y2
}

// Intersects reports whether the two boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return !(b.X2 < other.X1 || b.X1 > other.X2 ||
		b.Y2 < other.Y1 || b.Y1 > other.Y2)
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: minInt(b.X1, other.X1),
		Y1: minInt(b.Y1, other.Y1),
		X2: maxInt(b.X2, other.X2),
		Y2: maxInt(b.Y2, other.Y2),
	}
}

// Shrink returns the box moved inward by margin on all sides. The result
// may be empty if the margin exceeds half of either dimension.
func (b BBox) Shrink(margin int) BBox {
	return BBox{
		X1: b.X1 + margin,
		Y1: b.Y1 + margin,
		X2: b.X2 - margin,
		Y2: b.Y2 - margin,
	}
}

// Translate returns the box offset by (dx, dy).
func (b BBox) Translate(dx, dy int) BBox {
	return BBox{
		X1: b.X1 + dx,
		Y1: b.Y1 + dy,
		X2: b.X2 + dx,
		Y2: b.Y2 + dy,
	}
}

// IsEmpty reports whether the box has zero or negative extent.
func (b BBox) IsEmpty() bool {
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

// IsValid reports whether the box has positive extent on both axes.
func (b BBox) IsValid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
