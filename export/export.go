// Package export crops merged regions from a page raster and writes them
// as PNG artifacts with deterministic names.
package export

import (
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/hferris/gleaner/model"
	"github.com/hferris/gleaner/raster"
)

// Config holds export configuration. The padding applied to a region is
//
//	pad = max(round(PaddingRatio * max(W, H)), MinPadding)
//
// which covers all three observed padding conventions: a fixed pixel pad
// (ratio zero), a pure ratio pad (minimum zero), and ratio-plus-minimum.
type Config struct {
	// OutputDir receives the cropped images. Created if absent.
	OutputDir string

	// PaddingRatio pads each region by this fraction of its larger
	// dimension before cropping.
	PaddingRatio float64

	// MinPadding is the smallest pad in pixels.
	MinPadding int
}

// DefaultConfig returns the default export configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:    "extracted_diagrams",
		PaddingRatio: 0.05,
		MinPadding:   10,
	}
}

// Exporter writes cropped diagram images.
type Exporter struct {
	cfg Config
}

// New creates an Exporter for the given configuration.
func New(cfg Config) *Exporter {
	return &Exporter{cfg: cfg}
}

// Pad expands a region by the configured padding and clamps the result
// to the given raster bounds. The returned rectangle always lies within
// [0, width] x [0, height].
func (e *Exporter) Pad(r model.Rect, width, height int) model.Rect {
	pad := int(math.Round(e.cfg.PaddingRatio * float64(max(r.W, r.H))))
	if pad < e.cfg.MinPadding {
		pad = e.cfg.MinPadding
	}
	return r.Expand(pad).Clamp(width, height)
}

// SortRegions orders regions top-to-bottom then left-to-right so that
// sequence numbers in output names are reproducible across runs.
func SortRegions(regions []model.Rect) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Y != regions[j].Y {
			return regions[i].Y < regions[j].Y
		}
		return regions[i].X < regions[j].X
	})
}

// Export pads, crops, and writes every region of one page, returning the
// written file paths in naming order. Names encode the 1-based page
// number and a per-page sequence index: page<N>_diagram<K>.png.
func (e *Exporter) Export(page *raster.Raster, pageNum int, regions []model.Rect) ([]string, error) {
	if len(regions) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	ordered := append([]model.Rect(nil), regions...)
	SortRegions(ordered)

	var written []string
	for i, region := range ordered {
		crop := e.Pad(region, page.Width(), page.Height())
		if crop.IsEmpty() {
			continue
		}
		name := fmt.Sprintf("page%d_diagram%d.png", pageNum, i+1)
		path := filepath.Join(e.cfg.OutputDir, name)
		if err := writePNG(path, page.Crop(crop)); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// writePNG writes a raster to path, guaranteeing the handle is closed
// and flush errors are surfaced on every exit path.
func writePNG(path string, r *raster.Raster) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := png.Encode(f, r.RGBA()); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
