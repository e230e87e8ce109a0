// Package gridscan provides a fluent API for detecting tables on scanned
// page images and reading their cell contents from OCR word tokens.
//
// Basic usage:
//
//	regions, warnings, err := gridscan.FromFile("page.png").
//	    Tokens(1, words).
//	    Tables()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gridscan.FormatWarnings(warnings))
//	}
//
// With options:
//
//	regions, _, err := gridscan.FromImages(pages...).
//	    Pages(1, 2, 3).
//	    Deskew(0.5).
//	    Detector("lines").
//	    Tables()
//
// For advanced use cases, the lower-level tables and imaging packages are
// also available.
package gridscan

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// FromFile opens an image file (PNG or JPEG) and returns an Extractor
// for fluent configuration. The file is decoded lazily, when a terminal
// operation runs.
//
// Example:
//
//	regions, warnings, err := gridscan.FromFile("page.png").Tables()
func FromFile(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromImage creates an Extractor over a single in-memory page image.
//
// Example:
//
//	regions, warnings, err := gridscan.FromImage(img).Tables()
func FromImage(img image.Image) *Extractor {
	return FromImages(img)
}

// FromImages creates an Extractor over a sequence of in-memory page
// images. Pages are numbered from 1 in the order given.
func FromImages(images ...image.Image) *Extractor {
	return &Extractor{
		images:  images,
		loaded:  true,
		options: defaultOptions(),
	}
}

// decodeImageFile decodes a PNG or JPEG file into an image.
func decodeImageFile(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := gridscan.Must(gridscan.FromFile("page.png").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables is a helper that wraps a call to Tables() or Quality() and
// panics if the error is non-nil. It discards warnings and returns just
// the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	regions := gridscan.MustTables(gridscan.FromImage(img).Tables())
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
