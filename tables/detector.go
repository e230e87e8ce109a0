package tables

import (
	"github.com/tsawler/gridscan/imaging"
	"github.com/tsawler/gridscan/model"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables on a page image
	Detect(page *model.Page) ([]*model.TableRegion, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration. Out-of-range values are clamped
// when a detector is configured, not deep inside the algorithms.
type Config struct {
	// Binarization method for page and crop thresholding
	BinarizeMethod imaging.BinarizeMethod

	// Neighborhood side length for adaptive binarization (forced odd)
	AdaptiveBlockSize int

	// Constant subtracted from the neighborhood mean (adaptive method)
	AdaptiveC int

	// Divisor applied to image dimensions to size the line kernels
	LineScale int

	// Minimum region area as a fraction of page area
	MinTableAreaRatio float64

	// Minimum region width and height in pixels
	MinRegionWidth  int
	MinRegionHeight int

	// Minimum ruling length inside a crop, as a fraction of the crop dimension
	MinLineLengthRatio float64

	// Distance within which near-duplicate separator positions merge (pixels)
	LineMergeTolerance int

	// Boundaries closer than this to their predecessor merge into it (pixels)
	MinCellSize int

	// Inward shrink applied to reported cell bounding boxes (pixels)
	CellPadding int

	// Whether to recover grids and assign OCR tokens to cells, or stop
	// at region detection
	ExtractContent bool

	// Minimum OCR tokens inside a region's bbox to keep it (≤0 disables)
	MinWordsInTable int

	// Minimum cells with non-empty text to keep a table (≤0 disables)
	MinFilledCells int

	// Minimum rows and columns for the token-alignment detector
	MinRows int
	MinCols int

	// Minimum confidence (0-1) for the token-alignment detector
	MinConfidence float64
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		BinarizeMethod:     imaging.BinarizeOtsu,
		AdaptiveBlockSize:  21,
		AdaptiveC:          5,
		LineScale:          40,
		MinTableAreaRatio:  0.01,
		MinRegionWidth:     40,
		MinRegionHeight:    40,
		MinLineLengthRatio: 0.4,
		LineMergeTolerance: 6,
		MinCellSize:        12,
		CellPadding:        2,
		ExtractContent:     true,
		MinWordsInTable:    5,
		MinFilledCells:     1,
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
	}
}

// normalized returns a copy with out-of-range values clamped to usable
// ones, so the algorithms can assume sane parameters.
func (c Config) normalized() Config {
	if c.BinarizeMethod != imaging.BinarizeAdaptive {
		c.BinarizeMethod = imaging.BinarizeOtsu
	}
	if c.AdaptiveBlockSize < 3 {
		c.AdaptiveBlockSize = 21
	}
	if c.AdaptiveBlockSize%2 == 0 {
		c.AdaptiveBlockSize++
	}
	if c.LineScale < 1 {
		c.LineScale = 40
	}
	if c.MinTableAreaRatio < 0 {
		c.MinTableAreaRatio = 0
	}
	if c.MinTableAreaRatio > 1 {
		c.MinTableAreaRatio = 1
	}
	if c.MinRegionWidth < 0 {
		c.MinRegionWidth = 0
	}
	if c.MinRegionHeight < 0 {
		c.MinRegionHeight = 0
	}
	if c.MinLineLengthRatio < 0 {
		c.MinLineLengthRatio = 0
	}
	if c.MinLineLengthRatio > 1 {
		c.MinLineLengthRatio = 1
	}
	if c.LineMergeTolerance < 0 {
		c.LineMergeTolerance = 0
	}
	if c.MinCellSize < 1 {
		c.MinCellSize = 1
	}
	if c.CellPadding < 0 {
		c.CellPadding = 0
	}
	if c.MinRows < 1 {
		c.MinRows = 1
	}
	if c.MinCols < 1 {
		c.MinCols = 1
	}
	if c.MinConfidence < 0 {
		c.MinConfidence = 0
	}
	if c.MinConfidence > 1 {
		c.MinConfidence = 1
	}
	return c
}

// binarizeOptions maps the detector configuration onto imaging options.
func (c Config) binarizeOptions() imaging.BinarizeOptions {
	return imaging.BinarizeOptions{
		Method:            c.BinarizeMethod,
		AdaptiveBlockSize: c.AdaptiveBlockSize,
		AdaptiveC:         c.AdaptiveC,
	}
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector
func (r *DetectorRegistry) Register(detector Detector) {
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// List returns all registered detector names
func (r *DetectorRegistry) List() []string {
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	// Register default detectors
	RegisterDetector(NewLineDetector())
	RegisterDetector(NewGeometricDetector())
}
