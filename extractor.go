package gridscan

import (
	"context"
	"fmt"
	"image"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/gridscan/imaging"
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/tables"
)

// Extractor provides a fluent interface for detecting tables on scanned
// page images. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename string
	images   []image.Image

	// Lifecycle
	loaded bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		images:   e.images,
		loaded:   e.loaded,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// ensureLoaded decodes the source file if pages have not been loaded yet.
func (e *Extractor) ensureLoaded() error {
	if e.loaded {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no image source specified")
	}
	img, err := decodeImageFile(e.filename)
	if err != nil {
		return err
	}
	e.images = []image.Image{img}
	e.loaded = true
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	regions, _, err := gridscan.FromImages(pages...).Pages(1, 3, 5).Tables()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to process (1-indexed, inclusive).
//
// Example:
//
//	regions, _, err := gridscan.FromImages(pages...).PageRange(5, 10).Tables()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Tokens supplies OCR word tokens for a page (1-indexed). Tokens are
// normalized on the way in: text is NFC-normalized and trimmed, empty
// and degenerate tokens are dropped, and negative confidence values are
// reported as unset. Calling Tokens again for the same page replaces its
// tokens.
//
// Example:
//
//	regions, _, err := gridscan.FromImage(img).Tokens(1, words).Tables()
func (e *Extractor) Tokens(page int, tokens []model.Token) *Extractor {
	newExt := e.clone()
	if newExt.options.tokens == nil {
		newExt.options.tokens = make(map[int][]model.Token)
	}
	newExt.options.tokens[page] = model.NormalizeTokens(tokens)
	return newExt
}

// Detector selects the detection algorithm by name. Registered names are
// "lines" (ruled tables, the default) and "geometric" (token alignment).
//
// Example:
//
//	regions, _, err := gridscan.FromImage(img).Detector("geometric").Tables()
func (e *Extractor) Detector(name string) *Extractor {
	newExt := e.clone()
	newExt.options.detector = name
	return newExt
}

// WithConfig replaces the detector configuration.
//
// Example:
//
//	config := tables.DefaultConfig()
//	config.MinWordsInTable = 0
//	regions, _, err := gridscan.FromImage(img).WithConfig(config).Tables()
func (e *Extractor) WithConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// DetectOnly configures the extractor to stop after region detection:
// resulting regions carry a bounding box and method tag but no grid or
// cell content, and content-based filters do not apply.
//
// Example:
//
//	regions, _, err := gridscan.FromImage(img).DetectOnly().Tables()
func (e *Extractor) DetectOnly() *Extractor {
	newExt := e.clone()
	newExt.options.config.ExtractContent = false
	return newExt
}

// Deskew enables skew correction before detection. Pages whose estimated
// rotation exceeds minDegrees are straightened; smaller angles are left
// alone. A non-positive minDegrees uses the default of 0.5 degrees.
//
// Example:
//
//	regions, _, err := gridscan.FromImage(img).Deskew(0.5).Tables()
func (e *Extractor) Deskew(minDegrees float64) *Extractor {
	newExt := e.clone()
	newExt.options.deskew = true
	if minDegrees > 0 {
		newExt.options.minSkewDegrees = minDegrees
	}
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages available to the extractor.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureLoaded(); err != nil {
		return 0, err
	}
	return len(e.images), nil
}

// Tables runs table detection over the selected pages and returns all
// regions found, in page order. Warnings report non-fatal conditions
// such as skipped pages or applied skew corrections.
func (e *Extractor) Tables() ([]*model.TableRegion, []Warning, error) {
	if e.err != nil {
		return nil, e.warnings, e.err
	}
	if err := e.ensureLoaded(); err != nil {
		return nil, e.warnings, err
	}

	selected, warnings := e.selectPages()
	warnings = append(append([]Warning(nil), e.warnings...), warnings...)

	var regions []*model.TableRegion
	for _, n := range selected {
		pageRegions, pageWarnings, err := e.processPage(n)
		if err != nil {
			return nil, warnings, err
		}
		regions = append(regions, pageRegions...)
		warnings = append(warnings, pageWarnings...)
	}
	return regions, warnings, nil
}

// TablesContext is like Tables but processes pages concurrently, up to
// workers at a time (unlimited if workers <= 0), and honors context
// cancellation. Results are returned in page order regardless of
// completion order.
func (e *Extractor) TablesContext(ctx context.Context, workers int) ([]*model.TableRegion, []Warning, error) {
	if e.err != nil {
		return nil, e.warnings, e.err
	}
	if err := e.ensureLoaded(); err != nil {
		return nil, e.warnings, err
	}

	selected, warnings := e.selectPages()
	warnings = append(append([]Warning(nil), e.warnings...), warnings...)

	pageRegions := make([][]*model.TableRegion, len(selected))
	pageWarnings := make([][]Warning, len(selected))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, n := range selected {
		i, n := i, n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			regions, warns, err := e.processPage(n)
			if err != nil {
				return err
			}
			pageRegions[i] = regions
			pageWarnings[i] = warns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	var regions []*model.TableRegion
	for i := range selected {
		regions = append(regions, pageRegions[i]...)
		warnings = append(warnings, pageWarnings[i]...)
	}
	return regions, warnings, nil
}

// Quality measures scan quality for the selected pages. Each flagged
// metric also surfaces as a warning, so callers that only care about
// problem pages can ignore the reports.
func (e *Extractor) Quality() ([]imaging.QualityReport, []Warning, error) {
	if e.err != nil {
		return nil, e.warnings, e.err
	}
	if err := e.ensureLoaded(); err != nil {
		return nil, e.warnings, err
	}

	selected, warnings := e.selectPages()
	warnings = append(append([]Warning(nil), e.warnings...), warnings...)

	reports := make([]imaging.QualityReport, 0, len(selected))
	for _, n := range selected {
		gray := imaging.ToGray(e.images[n-1])
		report := imaging.Measure(gray, imaging.DefaultQualityThresholds())
		reports = append(reports, report)
		for _, flag := range report.Flags {
			warnings = append(warnings, Warning{Page: n, Op: "quality", Message: flag})
		}
	}
	return reports, warnings, nil
}

// ============================================================================
// Internals
// ============================================================================

// selectPages resolves the page selection against the loaded images,
// returning sorted unique 1-indexed page numbers. Out-of-range requests
// become warnings rather than errors.
func (e *Extractor) selectPages() ([]int, []Warning) {
	count := len(e.images)
	if len(e.options.pages) == 0 {
		all := make([]int, count)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	var warnings []Warning
	seen := make(map[int]bool)
	var selected []int
	for _, n := range e.options.pages {
		if n < 1 || n > count {
			warnings = append(warnings, Warning{
				Page: n, Op: "pages",
				Message: fmt.Sprintf("page out of range (document has %d), skipped", count),
			})
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		selected = append(selected, n)
	}
	sort.Ints(selected)
	return selected, warnings
}

// detector builds a freshly configured detector for this extraction.
// Built-in detectors get new instances so concurrent extractions never
// share state; unknown names fall back to the global registry.
func (e *Extractor) detector() (tables.Detector, error) {
	var d tables.Detector
	switch e.options.detector {
	case "", "lines":
		d = tables.NewLineDetector()
	case "geometric":
		d = tables.NewGeometricDetector()
	default:
		d = tables.GetDetector(e.options.detector)
		if d == nil {
			return nil, fmt.Errorf("unknown detector %q", e.options.detector)
		}
	}
	if err := d.Configure(e.options.config); err != nil {
		return nil, fmt.Errorf("failed to configure detector: %w", err)
	}
	return d, nil
}

// processPage runs preprocessing and detection on one page.
func (e *Extractor) processPage(n int) ([]*model.TableRegion, []Warning, error) {
	var warnings []Warning

	img := e.images[n-1]
	gray := imaging.ToGray(img)
	tokens := e.options.tokens[n]

	if e.options.deskew {
		corrected, angle := imaging.Deskew(gray, e.options.minSkewDegrees)
		if angle != 0 {
			gray = corrected
			warnings = append(warnings, Warning{
				Page: n, Op: "deskew",
				Message: fmt.Sprintf("corrected %.2f degree skew", angle),
			})
			if len(tokens) > 0 {
				warnings = append(warnings, Warning{
					Page: n, Op: "deskew",
					Message: "token coordinates were captured before correction and may not match",
				})
			}
		}
	}

	det, err := e.detector()
	if err != nil {
		return nil, warnings, err
	}

	page := &model.Page{Number: n, Image: gray, Tokens: tokens}
	regions, err := det.Detect(page)
	if err != nil {
		return nil, warnings, fmt.Errorf("page %d: %w", n, err)
	}
	return regions, warnings, nil
}
