package gridscan

import (
	"github.com/tsawler/gridscan/model"
	"github.com/tsawler/gridscan/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// OCR tokens per page number
	tokens map[int][]model.Token

	// Detector selection and configuration
	detector string
	config   tables.Config

	// Preprocessing
	deskew         bool
	minSkewDegrees float64
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:          nil, // nil means all pages
		tokens:         nil,
		detector:       "lines",
		config:         tables.DefaultConfig(),
		deskew:         false,
		minSkewDegrees: 0.5,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		detector:       o.detector,
		config:         o.config,
		deskew:         o.deskew,
		minSkewDegrees: o.minSkewDegrees,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	// Deep copy token map; the token slices themselves are treated as
	// immutable once handed to the extractor.
	if o.tokens != nil {
		newOpts.tokens = make(map[int][]model.Token, len(o.tokens))
		for page, toks := range o.tokens {
			newOpts.tokens[page] = toks
		}
	}

	return newOpts
}
