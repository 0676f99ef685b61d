package document

import (
	"context"

	"github.com/hferris/gleaner/raster"
)

// Document is the paginated-source interface the extraction pipelines
// consume. Page numbers are 1-based throughout.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the text content of a page.
	PageText(page int) (string, error)

	// RenderPage rasterizes a full page at the given resolution.
	RenderPage(ctx context.Context, page, dpi int) (*raster.Raster, error)

	// ExtractImages extracts the raw embedded raster images of a page
	// in their native encoding.
	ExtractImages(ctx context.Context, page int) ([]EmbeddedImage, error)

	// Close releases the underlying file handle.
	Close() error
}

// EmbeddedImage is one raw image payload extracted from a page.
type EmbeddedImage struct {
	// Index is the 1-based position of the image on its page.
	Index int

	// Format is the payload encoding ("png", "jpg", ...), suitable as
	// a file extension.
	Format string

	// Data is the encoded image payload.
	Data []byte
}

// ImageInfo describes an image XObject found in a page's resource
// dictionary, before any payload decoding.
type ImageInfo struct {
	// Name is the XObject name (e.g. "Im1").
	Name string

	Width  int
	Height int

	// ColorSpace is the declared color space (DeviceRGB, DeviceGray,
	// ICCBased, ...).
	ColorSpace string

	// BitsPerComponent is the declared sample depth.
	BitsPerComponent int

	// Filter is the stream's first declared filter (DCTDecode,
	// FlateDecode, CCITTFaxDecode, ...).
	Filter string
}
