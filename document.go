// document.go provides one-shot helpers that combine quality measurement
// and table detection over a whole document.
package gridscan

import (
	"image"

	"github.com/tsawler/gridscan/imaging"
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/tables"
)

// PageAnalysis holds the per-page results of document analysis.
type PageAnalysis struct {
	Number  int
	Quality imaging.QualityReport
	Tables  []*model.TableRegion
}

// Document is the result of analyzing a scanned document: quality
// metrics and detected tables for every page, plus any warnings raised
// along the way.
type Document struct {
	Pages    []PageAnalysis
	Warnings []Warning
}

// TableCount returns the total number of tables found across all pages.
func (d *Document) TableCount() int {
	count := 0
	for _, page := range d.Pages {
		count += len(page.Tables)
	}
	return count
}

// AnalyzeFile measures quality and detects tables on an image file.
// tokens maps 1-indexed page numbers to OCR word tokens; it may be nil
// when no OCR output is available.
//
// Example:
//
//	doc, err := gridscan.AnalyzeFile("invoice.png", map[int][]model.Token{1: words})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d pages, %d tables\n", len(doc.Pages), doc.TableCount())
func AnalyzeFile(path string, tokens map[int][]model.Token) (*Document, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, err
	}
	return AnalyzeImages([]image.Image{img}, tokens)
}

// AnalyzeImages measures quality and detects tables on in-memory page
// images using the default configuration.
func AnalyzeImages(images []image.Image, tokens map[int][]model.Token) (*Document, error) {
	return AnalyzeImagesWithConfig(images, tokens, tables.DefaultConfig())
}

// AnalyzeImagesWithConfig measures quality and detects tables with a
// custom detector configuration. Pages flagged as skewed are deskewed
// before detection.
func AnalyzeImagesWithConfig(images []image.Image, tokens map[int][]model.Token, config tables.Config) (*Document, error) {
	extractor := FromImages(images...).WithConfig(config).Deskew(0)
	for page, toks := range tokens {
		extractor = extractor.Tokens(page, toks)
	}

	reports, warnings, err := extractor.Quality()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Pages:    make([]PageAnalysis, len(images)),
		Warnings: warnings,
	}
	for i := range images {
		doc.Pages[i] = PageAnalysis{Number: i + 1, Quality: reports[i]}
	}

	for i := range images {
		n := i + 1
		regions, pageWarnings, err := extractor.Pages(n).Tables()
		if err != nil {
			return nil, err
		}
		doc.Pages[i].Tables = regions
		doc.Warnings = append(doc.Warnings, pageWarnings...)
	}
	return doc, nil
}
