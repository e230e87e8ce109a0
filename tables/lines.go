package tables

import (
	"image"

	"github.com/tsawler/gridscan/imaging"
	"github.com/tsawler/gridscan/model"
)

// MethodLines is the method tag recorded on regions found by the line
// detector. The name identifies the technique (morphological line
// extraction as popularized by OpenCV-based pipelines) for consumers
// that mix detection backends.
const MethodLines = "opencv_lines"

// LineDetector finds ruled tables by isolating long horizontal and
// vertical strokes with directional morphological openings, recovering
// the row/column separator grid from the surviving line segments, and
// assigning OCR tokens to grid cells.
//
// Detection alone cannot distinguish a ruled table from an incidental
// rectangular frame such as a title block border, so the detector
// optionally gates results on OCR content: a minimum token count inside
// the region and a minimum number of populated cells.
type LineDetector struct {
	config Config
}

// NewLineDetector creates a line detector with default configuration.
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("lines").
func (d *LineDetector) Name() string {
	return "lines"
}

// Configure sets the detector configuration, clamping out-of-range values.
func (d *LineDetector) Configure(config Config) error {
	d.config = config.normalized()
	return nil
}

// Detect finds ruled tables on a page. An empty or nil page image yields
// an empty result, not an error: callers commonly probe arbitrary pages
// and a missing table is a normal outcome.
//
// With ExtractContent disabled the result is the list of located region
// stubs. With it enabled, each surviving region carries its recovered
// grid and cell content; regions whose grid cannot be recovered are
// dropped rather than emitted half-populated, and the word-count and
// filled-cell gates prune detection noise.
func (d *LineDetector) Detect(page *model.Page) ([]*model.TableRegion, error) {
	if imaging.IsEmptyImage(page.Image) {
		return nil, nil
	}

	gray := imaging.ToGray(page.Image)
	regions := d.locateRegions(gray, page.Number)

	if !d.config.ExtractContent || len(regions) == 0 {
		return regions, nil
	}

	tokens := page.Tokens
	if len(tokens) > 0 && d.config.MinWordsInTable > 0 {
		kept := regions[:0]
		for _, region := range regions {
			if countTokensInBBox(region.BBox, tokens) >= d.config.MinWordsInTable {
				kept = append(kept, region)
			}
		}
		regions = kept
	}

	populated := make([]*model.TableRegion, 0, len(regions))
	for _, region := range regions {
		if !d.populateContent(gray, region, tokens) {
			continue
		}
		populated = append(populated, region)
	}
	regions = populated

	if d.config.MinFilledCells > 0 {
		kept := regions[:0]
		for _, region := range regions {
			if region.FilledCellCount() >= d.config.MinFilledCells {
				kept = append(kept, region)
			}
		}
		regions = kept
	}

	if len(regions) == 0 {
		return nil, nil
	}
	return regions, nil
}

// locateRegions finds bounding boxes of connected table-like structures
// on the full page: the union of the horizontal and vertical line masks
// forms a table skeleton whose external connected components are
// candidate regions, filtered by minimum area and minimum side lengths.
func (d *LineDetector) locateRegions(gray *image.Gray, pageNumber int) []*model.TableRegion {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	binary := imaging.Binarize(gray, d.config.binarizeOptions())
	horizontal, vertical := imaging.ExtractLineMasks(binary, d.config.LineScale)
	skeleton := imaging.Union(horizontal, vertical)

	minArea := float64(width*height) * d.config.MinTableAreaRatio

	var regions []*model.TableRegion
	for _, rect := range imaging.Components(skeleton) {
		w, h := rect.Dx(), rect.Dy()
		if float64(w*h) < minArea || w < d.config.MinRegionWidth || h < d.config.MinRegionHeight {
			continue
		}
		regions = append(regions, &model.TableRegion{
			PageNumber: pageNumber,
			BBox:       model.NewBBox(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y),
			Method:     MethodLines,
		})
	}
	return regions
}

// populateContent recovers the region's grid and assigns tokens to
// cells, mutating the region in place. It reports whether grid recovery
// succeeded; failure is expected, not an error, for tables whose rulings
// are too faint or fragmented to reconstruct.
func (d *LineDetector) populateContent(gray *image.Gray, region *model.TableRegion, tokens []model.Token) bool {
	grid := d.recoverGrid(gray, region.BBox)
	if grid == nil {
		return false
	}

	region.Grid = grid
	region.RowCount = grid.RowCount()
	region.ColumnCount = grid.ColCount()
	region.Cells, region.Rows = assignTokens(grid, tokens, d.config.CellPadding)
	return true
}

// recoverGrid extracts the discrete row and column separator positions
// for one table region, working on the cropped sub-image and translating
// the result back into page coordinates. It returns nil when fewer than
// two boundaries survive on either axis.
func (d *LineDetector) recoverGrid(gray *image.Gray, bbox model.BBox) *model.Grid {
	crop := imaging.Crop(gray, image.Rect(bbox.X1, bbox.Y1, bbox.X2, bbox.Y2))
	cropBounds := crop.Bounds()
	cropW, cropH := cropBounds.Dx(), cropBounds.Dy()
	if cropW == 0 || cropH == 0 {
		return nil
	}

	binary := imaging.Binarize(crop, d.config.binarizeOptions())
	horizontal, vertical := imaging.ExtractLineMasks(binary, d.config.LineScale)

	// A ruling inside a table must span a minimum share of the crop to
	// count as a separator; accidental short marks are excluded.
	minHLen := minRunLength(cropW, d.config.MinLineLengthRatio)
	minVLen := minRunLength(cropH, d.config.MinLineLengthRatio)

	rowLines := linePositions(horizontal, minHLen, true, d.config.LineMergeTolerance)
	colLines := linePositions(vertical, minVLen, false, d.config.LineMergeTolerance)
	if len(rowLines) == 0 || len(colLines) == 0 {
		return nil
	}

	rowLines = ensureBoundaries(rowLines, cropH, d.config.LineMergeTolerance)
	colLines = ensureBoundaries(colLines, cropW, d.config.LineMergeTolerance)

	rowLines = filterSmallGaps(rowLines, d.config.MinCellSize)
	colLines = filterSmallGaps(colLines, d.config.MinCellSize)

	if len(rowLines) < 2 || len(colLines) < 2 {
		return nil
	}

	grid := &model.Grid{
		Rows: make([]int, len(rowLines)),
		Cols: make([]int, len(colLines)),
	}
	for i, y := range rowLines {
		grid.Rows[i] = bbox.Y1 + y
	}
	for i, x := range colLines {
		grid.Cols[i] = bbox.X1 + x
	}
	return grid
}

// minRunLength computes the minimum absolute run length for a separator
// inside a crop: the crop dimension scaled by ratio, floored at 10px.
func minRunLength(dimension int, ratio float64) int {
	length := int(float64(dimension) * ratio)
	if length < 10 {
		length = 10
	}
	return length
}

// linePositions reduces a directional line mask to separator positions:
// for each connected component long enough along the line axis, the
// midpoint coordinate on the perpendicular axis. Near-duplicate
// positions are merged within tolerance.
func linePositions(mask *image.Gray, minLength int, horizontal bool, tolerance int) []int {
	var positions []int
	for _, rect := range imaging.Components(mask) {
		if horizontal {
			if rect.Dx() < minLength {
				continue
			}
			positions = append(positions, rect.Min.Y+rect.Dy()/2)
		} else {
			if rect.Dy() < minLength {
				continue
			}
			positions = append(positions, rect.Min.X+rect.Dx()/2)
		}
	}
	return mergePositions(positions, tolerance)
}
