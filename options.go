package gleaner

import (
	"github.com/hferris/gleaner/detect"
	"github.com/hferris/gleaner/export"
	"github.com/hferris/gleaner/merge"
	"github.com/hferris/gleaner/problems"
	"github.com/hferris/gleaner/raster"
)

// pipelineOptions holds configuration for the extraction pipeline.
type pipelineOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Render resolution
	dpi int

	// Stage configuration
	detect   detect.Config
	merge    merge.Config
	export   export.Config
	problems problems.Config

	// OCR fallback for pages without a text layer
	ocrFallback bool
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		pages:    nil, // nil means all pages
		dpi:      raster.DefaultDPI,
		detect:   detect.DefaultConfig(),
		merge:    merge.DefaultConfig(),
		export:   export.DefaultConfig(),
		problems: problems.DefaultConfig(),
	}
}

// clone creates a deep copy of pipelineOptions.
func (o pipelineOptions) clone() pipelineOptions {
	newOpts := pipelineOptions{
		dpi:         o.dpi,
		detect:      o.detect,
		merge:       o.merge,
		export:      o.export,
		problems:    o.problems,
		ocrFallback: o.ocrFallback,
	}

	// Deep copy slices shared through the embedded configs
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.detect.Exclusions != nil {
		newOpts.detect.Exclusions = make([]detect.ExclusionZone, len(o.detect.Exclusions))
		copy(newOpts.detect.Exclusions, o.detect.Exclusions)
	}

	return newOpts
}
