// Package tables provides table detection and cell extraction for
// scanned page images.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector]
// interface. The package provides:
//
//   - [LineDetector] - isolates ruled lines with directional
//     morphological openings and recovers the separator grid ("lines")
//   - [GeometricDetector] - infers a grid from OCR token alignment when
//     no rulings are drawn ("geometric")
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("lines")
//	regions, err := detector.Detect(page)
//
// # Line Detection
//
// The [LineDetector] pipeline:
//
//  1. Binarize the page (Otsu or adaptive mean)
//  2. Isolate long horizontal/vertical strokes by morphological opening
//  3. Locate candidate regions from the line skeleton's components
//  4. Recover each region's row/column separator grid from the crop
//  5. Assign OCR tokens to grid cells by bounding-box center
//  6. Gate on token count and populated cells to prune false positives
//
// Region detection alone (ExtractContent disabled) stops after step 3
// and returns bare region stubs.
//
// # Configuration
//
// Detector behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.LineScale = 30
//	config.MinWordsInTable = 0
//	detector.Configure(config)
//
// Out-of-range values are clamped when the detector is configured.
package tables
