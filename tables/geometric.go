package tables

import (
	"math"
	"sort"

	"github.com/tsawler/gridscan/model"
)

// MethodGeometric is the method tag recorded on regions found by the
// token-alignment detector.
const MethodGeometric = "geometric"

// Vertical whitespace beyond which token groups are considered separate
// structures (pixels).
const clusterGapPx = 50

// GeometricDetector infers tables from OCR token alignment rather than
// drawn rulings. It clusters tokens by vertical proximity, derives row
// and column boundaries from the clustered edges of token bounding
// boxes, and scores each candidate grid for regularity, alignment, and
// cell occupancy. It complements [LineDetector] for tables whose rulings
// are absent or too faint to survive the morphological pipeline.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a token-alignment detector with default
// configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("geometric").
func (d *GeometricDetector) Name() string {
	return "geometric"
}

// Configure sets the detector configuration, clamping out-of-range values.
func (d *GeometricDetector) Configure(config Config) error {
	d.config = config.normalized()
	return nil
}

// Detect finds tables on a page from its OCR tokens. Pages without
// tokens yield an empty result.
func (d *GeometricDetector) Detect(page *model.Page) ([]*model.TableRegion, error) {
	if len(page.Tokens) == 0 {
		return nil, nil
	}

	clusters := d.clusterTokens(page.Tokens)

	var regions []*model.TableRegion
	for _, cluster := range clusters {
		if region := d.detectTableInCluster(cluster, page.Number); region != nil {
			regions = append(regions, region)
		}
	}
	return regions, nil
}

// clusterTokens groups tokens that are vertically close. Tokens separated
// by more than clusterGapPx of whitespace start a new cluster.
func (d *GeometricDetector) clusterTokens(tokens []model.Token) [][]model.Token {
	sorted := make([]model.Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y1 < sorted[j].BBox.Y1
	})

	var clusters [][]model.Token
	current := []model.Token{sorted[0]}
	lastBottom := sorted[0].BBox.Y2

	for _, tok := range sorted[1:] {
		if tok.BBox.Y1-lastBottom > clusterGapPx {
			clusters = append(clusters, current)
			current = []model.Token{tok}
		} else {
			current = append(current, tok)
		}
		if tok.BBox.Y2 > lastBottom {
			lastBottom = tok.BBox.Y2
		}
	}
	clusters = append(clusters, current)

	return clusters
}

// detectTableInCluster attempts to recover a table from one token
// cluster: build boundaries from token edges, score the candidate, and
// assign tokens to cells.
func (d *GeometricDetector) detectTableInCluster(tokens []model.Token, pageNumber int) *model.TableRegion {
	if len(tokens) < d.config.MinRows*d.config.MinCols {
		return nil
	}

	grid := d.buildGrid(tokens)
	if grid == nil || grid.RowCount() < d.config.MinRows || grid.ColCount() < d.config.MinCols {
		return nil
	}

	confidence := d.scoreGrid(grid, tokens)
	if confidence < d.config.MinConfidence {
		return nil
	}

	cells, rows := assignTokens(grid, tokens, d.config.CellPadding)

	region := &model.TableRegion{
		PageNumber: pageNumber,
		BBox: model.NewBBox(
			grid.Cols[0], grid.Rows[0],
			grid.Cols[len(grid.Cols)-1], grid.Rows[len(grid.Rows)-1],
		),
		Confidence:  &confidence,
		Method:      MethodGeometric,
		RowCount:    grid.RowCount(),
		ColumnCount: grid.ColCount(),
		Grid:        grid,
		Cells:       cells,
		Rows:        rows,
	}

	if d.config.MinFilledCells > 0 && region.FilledCellCount() < d.config.MinFilledCells {
		return nil
	}
	return region
}

// buildGrid derives separator positions from the clustered top/bottom
// and left/right edges of the token boxes.
func (d *GeometricDetector) buildGrid(tokens []model.Token) *model.Grid {
	yEdges := make([]int, 0, len(tokens)*2)
	xEdges := make([]int, 0, len(tokens)*2)
	for _, tok := range tokens {
		yEdges = append(yEdges, tok.BBox.Y1, tok.BBox.Y2)
		xEdges = append(xEdges, tok.BBox.X1, tok.BBox.X2)
	}

	rows := mergePositions(yEdges, d.config.LineMergeTolerance)
	cols := mergePositions(xEdges, d.config.LineMergeTolerance)

	rows = filterSmallGaps(rows, d.config.MinCellSize)
	cols = filterSmallGaps(cols, d.config.MinCellSize)

	if len(rows) < d.config.MinRows+1 || len(cols) < d.config.MinCols+1 {
		return nil
	}
	return &model.Grid{Rows: rows, Cols: cols}
}

// scoreGrid computes a confidence score (0-1) for a candidate grid from
// grid regularity (40%), token-to-grid alignment (40%), and cell
// occupancy (20%). There are no drawn rulings to score in this detector.
func (d *GeometricDetector) scoreGrid(grid *model.Grid, tokens []model.Token) float64 {
	return d.gridRegularity(grid)*0.4 +
		d.alignmentQuality(grid, tokens)*0.4 +
		d.cellOccupancy(grid, tokens)*0.2
}

// gridRegularity measures spacing uniformity via the coefficient of
// variation of row heights and column widths; lower variation scores
// higher.
func (d *GeometricDetector) gridRegularity(grid *model.Grid) float64 {
	rowHeights := make([]float64, grid.RowCount())
	for i := range rowHeights {
		rowHeights[i] = float64(grid.Rows[i+1] - grid.Rows[i])
	}
	colWidths := make([]float64, grid.ColCount())
	for i := range colWidths {
		colWidths[i] = float64(grid.Cols[i+1] - grid.Cols[i])
	}

	rowScore := math.Max(0, 1-coefficientOfVariation(rowHeights))
	colScore := math.Max(0, 1-coefficientOfVariation(colWidths))
	return (rowScore + colScore) / 2
}

// alignmentQuality measures the fraction of tokens with at least two of
// their four box edges near a grid boundary.
func (d *GeometricDetector) alignmentQuality(grid *model.Grid, tokens []model.Token) float64 {
	if len(tokens) == 0 {
		return 0
	}

	aligned := 0
	for _, tok := range tokens {
		edges := 0
		if d.nearBoundary(tok.BBox.X1, grid.Cols) {
			edges++
		}
		if d.nearBoundary(tok.BBox.X2, grid.Cols) {
			edges++
		}
		if d.nearBoundary(tok.BBox.Y1, grid.Rows) {
			edges++
		}
		if d.nearBoundary(tok.BBox.Y2, grid.Rows) {
			edges++
		}
		if edges >= 2 {
			aligned++
		}
	}
	return float64(aligned) / float64(len(tokens))
}

// nearBoundary reports whether a coordinate lies within twice the merge
// tolerance of any grid boundary.
func (d *GeometricDetector) nearBoundary(value int, boundaries []int) bool {
	for _, b := range boundaries {
		if abs(value-b) <= d.config.LineMergeTolerance*2 {
			return true
		}
	}
	return false
}

// cellOccupancy measures the fraction of grid cells containing at least
// one token center.
func (d *GeometricDetector) cellOccupancy(grid *model.Grid, tokens []model.Token) float64 {
	total := grid.RowCount() * grid.ColCount()
	if total == 0 {
		return 0
	}

	occupied := make(map[[2]int]bool)
	for _, tok := range tokens {
		center := tok.BBox.Center()
		row := findInterval(grid.Rows, center.Y)
		col := findInterval(grid.Cols, center.X)
		if row >= 0 && col >= 0 {
			occupied[[2]int{row, col}] = true
		}
	}
	return float64(len(occupied)) / float64(total)
}

// coefficientOfVariation computes stddev/mean, or 0 for fewer than two
// values or a zero mean.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))

	return math.Sqrt(variance) / mean
}
