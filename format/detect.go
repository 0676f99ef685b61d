// Package format provides content format detection for the gleaner
// library: distinguishing PDF documents, HTML pages, and raster image
// payloads by extension, magic bytes, or HTTP content type.
package format

import (
	"path/filepath"
	"strings"
)

// Format represents a recognized content format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document.
	HTML
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// GIF indicates a GIF image.
	GIF
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case HTML:
		return ".html"
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	default:
		return ""
	}
}

// IsImage reports whether the format is a raster image payload.
func (f Format) IsImage() bool {
	return f == PNG || f == JPEG || f == GIF
}

// Detect determines format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".html", ".htm":
		return HTML
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. More
// reliable than extension-based detection; returns Unknown when the
// bytes identify nothing.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// PDF magic: %PDF
	if data[0] == '%' && data[1] == 'P' && data[2] == 'D' && data[3] == 'F' {
		return PDF
	}

	// PNG magic: \x89PNG
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' {
		return PNG
	}

	// JPEG magic: \xFF\xD8\xFF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return JPEG
	}

	// GIF magic: GIF8
	if data[0] == 'G' && data[1] == 'I' && data[2] == 'F' && data[3] == '8' {
		return GIF
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// DetectResponse classifies an HTTP response from its Content-Type
// header, falling back to magic-byte sniffing of the body. A print page
// endpoint can hand back either an HTML page or raw PDF bytes; callers
// branch on the result.
func DetectResponse(contentType string, body []byte) Format {
	ctype := strings.ToLower(contentType)
	switch {
	case strings.Contains(ctype, "application/pdf"):
		return PDF
	case strings.Contains(ctype, "text/html"):
		return HTML
	case strings.Contains(ctype, "image/png"):
		return PNG
	case strings.Contains(ctype, "image/jpeg"):
		return JPEG
	case strings.Contains(ctype, "image/gif"):
		return GIF
	}
	return DetectFromMagic(body)
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML.
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}

	return false
}
