package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/gridscan/model"
)

// mergePositions sorts separator positions and greedily clusters any
// chain of consecutive positions within tolerance of each other,
// replacing each cluster with its rounded mean. This absorbs
// double-detected or slightly jittered line segments into one separator.
func mergePositions(positions []int, tolerance int) []int {
	if len(positions) == 0 {
		return nil
	}

	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)

	var merged []int
	clusterSum := sorted[0]
	clusterLen := 1
	clusterLast := sorted[0]

	for _, value := range sorted[1:] {
		if value-clusterLast <= tolerance {
			clusterSum += value
			clusterLen++
			clusterLast = value
		} else {
			merged = append(merged, roundedMean(clusterSum, clusterLen))
			clusterSum = value
			clusterLen = 1
			clusterLast = value
		}
	}
	merged = append(merged, roundedMean(clusterSum, clusterLen))

	return merged
}

func roundedMean(sum, count int) int {
	return int(math.Round(float64(sum) / float64(count)))
}

// ensureBoundaries guarantees that the outermost ruled border is
// represented even when the scan clipped or blurred it: if the minimum
// position is farther than tolerance from 0 it inserts 0, and if the
// maximum is farther than tolerance from the crop's far edge it inserts
// that edge.
func ensureBoundaries(values []int, max int, tolerance int) []int {
	if len(values) == 0 {
		return []int{0, max}
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	if abs(sorted[0]) > tolerance {
		sorted = append([]int{0}, sorted...)
	}
	if abs(sorted[len(sorted)-1]-max) > tolerance {
		sorted = append(sorted, max)
	}
	return sorted
}

// filterSmallGaps merges any boundary closer than minGap to its
// predecessor into the predecessor by averaging, scanning in order.
// Prevents near-zero-width ghost columns or rows from noise.
func filterSmallGaps(values []int, minGap int) []int {
	if len(values) < 2 {
		return values
	}

	filtered := []int{values[0]}
	for _, value := range values[1:] {
		last := filtered[len(filtered)-1]
		if value-last < minGap {
			filtered[len(filtered)-1] = roundedMean(last+value, 2)
		} else {
			filtered = append(filtered, value)
		}
	}
	return filtered
}

// findInterval locates the index i such that values[i] <= target <
// values[i+1], using a right-biased binary search: a target exactly on a
// boundary belongs to the interval that boundary starts. Returns -1 when
// the target falls before the first or at/after the last boundary.
func findInterval(values []int, target int) int {
	idx := sort.SearchInts(values, target+1) - 1
	if idx < 0 || idx >= len(values)-1 {
		return -1
	}
	return idx
}

// assignTokens maps OCR tokens into grid cells by bounding-box center
// and assembles the full row-major cell matrix, including empty cells.
// Within a cell, tokens are ordered by (top y, left x) with input order
// preserved for true ties, their texts joined with single spaces, and
// their reported confidences averaged. The padding shrinks each cell's
// reported bounding box inward; it does not affect assignment.
func assignTokens(grid *model.Grid, tokens []model.Token, padding int) ([]model.TableCell, [][]string) {
	rowCount := grid.RowCount()
	colCount := grid.ColCount()

	cellTokens := make(map[[2]int][]model.Token)
	for _, tok := range tokens {
		center := tok.BBox.Center()
		rowIdx := findInterval(grid.Rows, center.Y)
		colIdx := findInterval(grid.Cols, center.X)
		if rowIdx < 0 || colIdx < 0 {
			continue
		}
		key := [2]int{rowIdx, colIdx}
		cellTokens[key] = append(cellTokens[key], tok)
	}

	cells := make([]model.TableCell, 0, rowCount*colCount)
	rows := make([][]string, rowCount)

	for rowIdx := 0; rowIdx < rowCount; rowIdx++ {
		rows[rowIdx] = make([]string, colCount)
		for colIdx := 0; colIdx < colCount; colIdx++ {
			toks := cellTokens[[2]int{rowIdx, colIdx}]
			sort.SliceStable(toks, func(i, j int) bool {
				if toks[i].BBox.Y1 != toks[j].BBox.Y1 {
					return toks[i].BBox.Y1 < toks[j].BBox.Y1
				}
				return toks[i].BBox.X1 < toks[j].BBox.X1
			})

			parts := make([]string, len(toks))
			for i, tok := range toks {
				parts[i] = tok.Text
			}
			text := strings.TrimSpace(strings.Join(parts, " "))
			rows[rowIdx][colIdx] = text

			cells = append(cells, model.TableCell{
				Row:        rowIdx,
				Col:        colIdx,
				Text:       text,
				BBox:       grid.CellBBox(rowIdx, colIdx).Shrink(padding),
				Confidence: meanConfidence(toks),
			})
		}
	}

	return cells, rows
}

// meanConfidence averages the reported confidences of a cell's tokens.
// Tokens without a confidence do not contribute; when none report one
// the result is nil.
func meanConfidence(tokens []model.Token) *float64 {
	sum := 0.0
	count := 0
	for _, tok := range tokens {
		if tok.Confidence != nil {
			sum += *tok.Confidence
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	return &mean
}

// countTokensInBBox counts tokens whose bounding-box center lies inside
// the given box, edges included.
func countTokensInBBox(bbox model.BBox, tokens []model.Token) int {
	count := 0
	for _, tok := range tokens {
		if bbox.Contains(tok.BBox.Center()) {
			count++
		}
	}
	return count
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
