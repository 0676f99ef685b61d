package gleaner

import (
	"context"
	"strings"

	"github.com/hferris/gleaner/document"
	"github.com/hferris/gleaner/ocr"
)

// ocrFallbackDocument decorates a document so that pages without a text
// layer fall back to recognizing the rendered page. Recognition failures
// degrade to the original (empty) text rather than erroring; scanned
// contest papers commonly mix text-layer and image-only pages.
type ocrFallbackDocument struct {
	document.Document

	client *ocr.Client
	dpi    int

	// ctx scopes the render subprocesses to the terminal operation that
	// created this decorator.
	ctx context.Context
}

func (d *ocrFallbackDocument) PageText(page int) (string, error) {
	text, err := d.Document.PageText(page)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	r, err := d.Document.RenderPage(d.ctx, page, d.dpi)
	if err != nil {
		return text, nil
	}
	recognized, err := d.client.RecognizeRaster(r)
	if err != nil {
		return text, nil
	}
	return recognized, nil
}
