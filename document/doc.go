// Package document provides access to paginated source documents: page
// counts, page text, full-page rasters, and the raw raster images
// embedded in each page.
//
// The PDF implementation reads document structure (page tree, image
// XObjects) natively and delegates rasterization and embedded-image
// payload extraction to the poppler-utils tools.
package document
