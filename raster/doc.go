// Package raster renders document pages to pixel rasters and provides the
// raster primitives (channel normalization, grayscale conversion, cropping)
// used by region detection and export.
//
// Page rendering shells out to the poppler-utils tools (pdftoppm, pdfinfo),
// which must be installed on the system. On macOS:
//
//	brew install poppler
//
// On Ubuntu/Debian:
//
//	apt-get install poppler-utils
package raster
