package document

import (
	"context"
	"fmt"
	"os"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/hferris/gleaner/raster"
)

// PDF reads a PDF document. Structure access (page tree, text, XObject
// dictionaries) goes through the native parser; rasterization and image
// payload extraction shell out to poppler-utils.
type PDF struct {
	path     string
	file     *os.File
	reader   *pdflib.Reader
	renderer *raster.Renderer
}

var _ Document = (*PDF)(nil)

// OpenPDF opens the PDF at path. A malformed or unreadable file fails
// here, before any page processing starts.
func OpenPDF(path string) (*PDF, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PDF %s: %w", path, err)
	}
	return &PDF{
		path:     path,
		file:     f,
		reader:   r,
		renderer: raster.NewRenderer(),
	}, nil
}

// Close releases the underlying file handle. Safe to call twice.
func (d *PDF) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path returns the path the document was opened from.
func (d *PDF) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *PDF) PageCount() int {
	return d.reader.NumPage()
}

// PageText returns the plain text of a page (1-based). Pages without a
// text layer yield an empty string.
func (d *PDF) PageText(page int) (string, error) {
	if page < 1 || page > d.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract text from page %d: %w", page, err)
	}
	return text, nil
}

// RenderPage rasterizes a full page at the given resolution, normalized
// to RGB.
func (d *PDF) RenderPage(ctx context.Context, page, dpi int) (*raster.Raster, error) {
	return d.renderer.RenderPage(ctx, d.path, page, dpi)
}

// EnumerateImages walks a page's resource dictionary and describes each
// image XObject without decoding its payload.
func (d *PDF) EnumerateImages(page int) ([]ImageInfo, error) {
	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	xobjects := p.V.Key("Resources").Key("XObject")
	if xobjects.IsNull() {
		return nil, nil
	}

	var infos []ImageInfo
	for _, name := range xobjects.Keys() {
		obj := xobjects.Key(name)
		if obj.Key("Subtype").Name() != "Image" {
			continue
		}
		info := ImageInfo{
			Name:             name,
			Width:            int(obj.Key("Width").Int64()),
			Height:           int(obj.Key("Height").Int64()),
			BitsPerComponent: int(obj.Key("BitsPerComponent").Int64()),
			ColorSpace:       colorSpaceName(obj.Key("ColorSpace")),
			Filter:           filterName(obj.Key("Filter")),
		}
		if info.BitsPerComponent == 0 {
			info.BitsPerComponent = 8
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// colorSpaceName reduces a ColorSpace entry to a name. Array-valued
// spaces (ICCBased, Indexed) report their family name.
func colorSpaceName(v pdflib.Value) string {
	switch v.Kind() {
	case pdflib.Name:
		return v.Name()
	case pdflib.Array:
		if v.Len() > 0 {
			return v.Index(0).Name()
		}
	}
	return "DeviceGray"
}

// filterName reduces a Filter entry to the first filter name.
func filterName(v pdflib.Value) string {
	switch v.Kind() {
	case pdflib.Name:
		return v.Name()
	case pdflib.Array:
		if v.Len() > 0 {
			return v.Index(0).Name()
		}
	}
	return ""
}
