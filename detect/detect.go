package detect

import (
	"image"

	"github.com/hferris/gleaner/model"
	"github.com/hferris/gleaner/raster"
)

// Strategy is the interface for region detection algorithms.
type Strategy interface {
	// Detect finds candidate boxes in an intensity image.
	Detect(gray *image.Gray) []model.Rect

	// Name returns the strategy name.
	Name() string
}

// Config holds detector configuration. Every tunable the pipeline uses
// is an explicit field here rather than a constant in the code.
type Config struct {
	// Strategy selection. Diagrams vary between filled shapes (caught
	// by the threshold strategy) and faint outline drawings (caught by
	// the edge strategy); running both and merging catches both kinds.
	UseThreshold bool
	UseEdges     bool

	// Threshold strategy parameters.
	ThresholdCutoff uint8
	Adaptive        bool
	AdaptiveWindow  int
	AdaptiveBias    int

	// Edge strategy parameters.
	GradientThreshold int
	DilateRadius      int
	CloseGaps         bool

	// Minimum candidate dimensions. Components smaller than this are
	// noise (stray marks, stroke fragments, characters).
	MinWidth  int
	MinHeight int

	// Relaxed minimums retried when the primary minimums yield nothing.
	// Zero disables relaxation.
	RelaxedMinWidth  int
	RelaxedMinHeight int

	// Exclusions are per-page non-content regions to discard.
	Exclusions []ExclusionZone
}

// DefaultConfig returns the default detection configuration, tuned for
// contest pages rendered at 300 DPI.
func DefaultConfig() Config {
	return Config{
		UseThreshold:      true,
		UseEdges:          true,
		ThresholdCutoff:   200,
		Adaptive:          false,
		AdaptiveWindow:    31,
		AdaptiveBias:      10,
		GradientThreshold: 240,
		DilateRadius:      2,
		CloseGaps:         true,
		MinWidth:          100,
		MinHeight:         100,
		RelaxedMinWidth:   50,
		RelaxedMinHeight:  50,
	}
}

// Result is the outcome of one detection pass over a page.
type Result struct {
	// Candidates is the unmerged candidate set. It may contain
	// duplicates, near-duplicates, and nested boxes; package merge
	// consolidates it.
	Candidates []model.Rect

	// Relaxed is true when the primary size minimums found nothing and
	// the relaxed minimums were used instead.
	Relaxed bool
}

// Detector produces candidate regions from page rasters.
type Detector struct {
	cfg        Config
	strategies []Strategy
}

// New creates a Detector for the given configuration.
func New(cfg Config) *Detector {
	d := &Detector{cfg: cfg}
	if cfg.UseThreshold {
		d.strategies = append(d.strategies, ThresholdStrategy{
			Cutoff:   cfg.ThresholdCutoff,
			Adaptive: cfg.Adaptive,
			Window:   cfg.AdaptiveWindow,
			Bias:     cfg.AdaptiveBias,
		})
	}
	if cfg.UseEdges {
		d.strategies = append(d.strategies, EdgeStrategy{
			GradientThreshold: cfg.GradientThreshold,
			DilateRadius:      cfg.DilateRadius,
			Close:             cfg.CloseGaps,
		})
	}
	return d
}

// Detect runs all enabled strategies over the page and returns the
// filtered candidate set. page is the 1-based page number, used by the
// exclusion rules.
//
// When the primary size minimums leave no candidates, detection retries
// the filter with the relaxed minimums before reporting an empty set; an
// empty result is a valid outcome, not an error.
func (d *Detector) Detect(page *raster.Raster, pageNum int) Result {
	gray := page.Gray()
	w, h := page.Width(), page.Height()

	var raw []model.Rect
	for _, s := range d.strategies {
		raw = append(raw, s.Detect(gray)...)
	}

	var kept []model.Rect
	for _, r := range raw {
		if !d.excluded(r, pageNum, w, h) {
			kept = append(kept, r)
		}
	}

	candidates := filterSize(kept, d.cfg.MinWidth, d.cfg.MinHeight)
	if len(candidates) > 0 {
		return Result{Candidates: candidates}
	}
	if d.cfg.RelaxedMinWidth > 0 || d.cfg.RelaxedMinHeight > 0 {
		relaxed := filterSize(kept, d.cfg.RelaxedMinWidth, d.cfg.RelaxedMinHeight)
		if len(relaxed) > 0 {
			return Result{Candidates: relaxed, Relaxed: true}
		}
	}
	return Result{}
}

func (d *Detector) excluded(r model.Rect, page, w, h int) bool {
	for _, z := range d.cfg.Exclusions {
		if z.Matches(r, page, w, h) {
			return true
		}
	}
	return false
}

func filterSize(rects []model.Rect, minW, minH int) []model.Rect {
	var out []model.Rect
	for _, r := range rects {
		if r.W >= minW && r.H >= minH {
			out = append(out, r)
		}
	}
	return out
}
