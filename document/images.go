package document

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// pdfImagesCommand is the poppler tool used for payload extraction.
// Overridable for tests.
var pdfImagesCommand = "pdfimages"

// ExtractImages extracts the raw embedded raster images of a page
// (1-based) in their native encoding. Images are returned in document
// order; a page without images yields an empty slice, not an error.
func (d *PDF) ExtractImages(ctx context.Context, page int) ([]EmbeddedImage, error) {
	if page < 1 || page > d.reader.NumPage() {
		return nil, fmt.Errorf("page %d out of range 1..%d", page, d.reader.NumPage())
	}

	workDir, err := os.MkdirTemp("", "gleaner-images-*")
	if err != nil {
		return nil, fmt.Errorf("create extraction dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	prefix := filepath.Join(workDir, "img")
	args := []string{
		"-all",
		"-f", fmt.Sprint(page),
		"-l", fmt.Sprint(page),
		d.path,
		prefix,
	}
	cmd := exec.CommandContext(ctx, pdfImagesCommand, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdfimages failed on page %d: %w: %s", page, err, msg)
		}
		return nil, fmt.Errorf("pdfimages failed on page %d: %w", page, err)
	}

	matches, err := filepath.Glob(prefix + "-*")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var images []EmbeddedImage
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("read extracted image: %w", err)
		}
		images = append(images, EmbeddedImage{
			Index:  len(images) + 1,
			Format: imageFormat(match),
			Data:   data,
		})
	}
	return images, nil
}

// imageFormat derives the payload format from the extracted file's
// extension, normalized to lowercase without the leading dot.
func imageFormat(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "jpeg" {
		ext = "jpg"
	}
	if ext == "" {
		ext = "png"
	}
	return ext
}
