// Package detect finds candidate diagram regions on a rendered page.
//
// Detection runs one or more strategies over the page's grayscale
// intensity: a threshold strategy that binarizes dark foreground against a
// light background, and an edge strategy that picks up faint outline
// drawings a brightness cutoff misses. Each strategy yields the bounding
// boxes of connected foreground components; the combined boxes form the
// candidate set consumed by package merge.
package detect
