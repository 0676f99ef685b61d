// Package model defines the shared geometric types used throughout the
// gleaner library: integer-pixel rectangles in raster coordinates, and the
// region types produced by detection and consumed by merging and export.
//
// All coordinates follow the image convention: X grows rightward, Y grows
// downward, and (0,0) is the top-left corner of the raster.
package model
