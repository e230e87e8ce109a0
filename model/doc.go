// Package model provides the data contracts shared by the detection
// pipeline and its callers.
//
// All coordinates are integer pixel positions in the coordinate space of
// the image they were computed against, with the origin at the top-left
// corner and Y increasing downward (scanner/raster convention).
//
// # Geometry
//
//   - [BBox] - axis-aligned bounding box (x1,y1,x2,y2)
//   - [Point] - 2D pixel position
//
// # OCR Input
//
// A [Token] is one OCR-recognized word with its bounding box and optional
// confidence. Tokens are produced by an external OCR engine and normalized
// with [NormalizeTokens] before detection.
//
// # Detection Output
//
// A [TableRegion] describes one detected table: its bounding box, the
// recovered grid boundary positions, and the per-cell content assembled
// from OCR tokens. A region without a recovered grid is still valid; it
// carries zero row/column counts and empty cells.
package model
