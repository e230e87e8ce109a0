package model

import "image"

// Page bundles the per-page inputs handed to a detector: the raster
// image and the normalized OCR tokens for that page. Tokens may be nil
// for detection-only use.
type Page struct {
	Number int // 1-indexed page number
	Image  image.Image
	Tokens []Token
}

// Grid holds the recovered separator positions of a table, in page
// coordinates. Rows are y-positions of the horizontal separators, Cols
// are x-positions of the vertical separators, both strictly increasing.
type Grid struct {
	Rows []int
	Cols []int
}

// RowCount returns the number of row intervals between separators.
func (g *Grid) RowCount() int {
	if len(g.Rows) <= 1 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of column intervals between separators.
func (g *Grid) ColCount() int {
	if len(g.Cols) <= 1 {
		return 0
	}
	return len(g.Cols) - 1
}

// CellBBox returns the bounding box of the cell at (row, col), or an
// empty box for out-of-range indices.
func (g *Grid) CellBBox(row, col int) BBox {
	if row < 0 || row >= g.RowCount() || col < 0 || col >= g.ColCount() {
		return BBox{}
	}
	return BBox{
		X1: g.Cols[col],
		Y1: g.Rows[row],
		X2: g.Cols[col+1],
		Y2: g.Rows[row+1],
	}
}

// TableCell represents one cell of a recovered table. Text is the
// space-joined content of the OCR tokens whose centers fell inside the
// cell, in reading order; it may be empty. Confidence is the arithmetic
// mean of the contributing tokens' reported confidences, or nil when no
// token reported one.
type TableCell struct {
	Row        int
	Col        int
	Text       string
	BBox       BBox
	Confidence *float64
}

// TableRegion describes one detected table on a page. Detectors create
// it with bounding box, page number, and method tag only; grid recovery
// and cell assignment then populate the structural fields in place. Once returned to the caller a region is never mutated.
//
// Invariants when a grid is present:
//
//	RowCount == len(Grid.Rows)-1
//	ColumnCount == len(Grid.Cols)-1
//	len(Cells) == RowCount*ColumnCount
//	Rows[r][c] == Cells entry with Row==r, Col==c
//
// A region whose grid could not be recovered has zero counts and empty
// Cells/Rows, and is still valid.
type TableRegion struct {
	PageNumber  int
	BBox        BBox
	Confidence  *float64
	Method      string
	RowCount    int
	ColumnCount int
	Grid        *Grid
	Cells       []TableCell
	Rows        [][]string
}

// Cell returns a pointer to the cell at (row, col), or nil for
// out-of-range indices or when no grid was recovered.
func (t *TableRegion) Cell(row, col int) *TableCell {
	if row < 0 || row >= t.RowCount || col < 0 || col >= t.ColumnCount {
		return nil
	}
	idx := row*t.ColumnCount + col
	if idx >= len(t.Cells) {
		return nil
	}
	return &t.Cells[idx]
}

// FilledCellCount returns the number of cells with non-empty text.
// Cell text is stored trimmed, so a whitespace-only cell counts as empty.
func (t *TableRegion) FilledCellCount() int {
	count := 0
	for _, cell := range t.Cells {
		if cell.Text != "" {
			count++
		}
	}
	return count
}

// HasGrid reports whether grid recovery succeeded for this region.
func (t *TableRegion) HasGrid() bool {
	return t.Grid != nil && t.RowCount > 0 && t.ColumnCount > 0
}
