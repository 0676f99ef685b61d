package detect

import "github.com/hferris/gleaner/model"

// ExclusionZone discards candidates matching a known non-content region,
// such as the boxed header on a contest's instructions page. A candidate
// is excluded when it starts near the top of the page, nearly spans the
// page width, and is short relative to the page height.
type ExclusionZone struct {
	// Page is the 1-based page the rule applies to. Zero applies the
	// rule on every page.
	Page int

	// TopFraction: the candidate's top edge must lie within this
	// fraction of the page height from the top.
	TopFraction float64

	// WidthFraction: the candidate must be at least this fraction of
	// the page width wide.
	WidthFraction float64

	// HeightFraction: the candidate must be at most this fraction of
	// the page height tall.
	HeightFraction float64
}

// InstructionsHeader returns the exclusion rule for the full-width
// instructions banner at the top of the given page.
func InstructionsHeader(page int) ExclusionZone {
	return ExclusionZone{
		Page:           page,
		TopFraction:    0.25,
		WidthFraction:  0.9,
		HeightFraction: 0.2,
	}
}

// Matches reports whether the candidate on the given page should be
// discarded as a header artifact.
func (z ExclusionZone) Matches(r model.Rect, page, pageWidth, pageHeight int) bool {
	if z.Page != 0 && z.Page != page {
		return false
	}
	if pageWidth <= 0 || pageHeight <= 0 {
		return false
	}
	if float64(r.Top()) > z.TopFraction*float64(pageHeight) {
		return false
	}
	if float64(r.W) < z.WidthFraction*float64(pageWidth) {
		return false
	}
	if float64(r.H) > z.HeightFraction*float64(pageHeight) {
		return false
	}
	return true
}
