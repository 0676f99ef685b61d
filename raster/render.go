package raster

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Default render resolution in dots per inch. Page pixel dimensions come
// out as native_points * DPI / 72.
const DefaultDPI = 300

// Renderer rasterizes PDF pages by invoking the poppler-utils tools.
type Renderer struct {
	// PDFToPPM is the pdftoppm binary name or path.
	PDFToPPM string

	// PDFInfo is the pdfinfo binary name or path.
	PDFInfo string
}

// NewRenderer creates a Renderer using the tools from PATH.
func NewRenderer() *Renderer {
	return &Renderer{
		PDFToPPM: "pdftoppm",
		PDFInfo:  "pdfinfo",
	}
}

// PageCount reports the number of pages in the PDF at path.
func (r *Renderer) PageCount(ctx context.Context, path string) (int, error) {
	cmd := exec.CommandContext(ctx, r.PDFInfo, path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo failed: %w", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Pages:") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				if total, convErr := strconv.Atoi(parts[1]); convErr == nil {
					return total, nil
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("failed to determine page count from pdfinfo output")
}

// RenderPage renders a single page (1-based) of the PDF at path to a
// Raster at the requested resolution. A dpi of zero or below uses
// DefaultDPI.
func (r *Renderer) RenderPage(ctx context.Context, path string, page, dpi int) (*Raster, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number %d", page)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	workDir, err := os.MkdirTemp("", "gleaner-render-*")
	if err != nil {
		return nil, fmt.Errorf("create render dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	prefix := filepath.Join(workDir, "page")
	args := []string{
		"-png",
		"-r", strconv.Itoa(dpi),
		"-f", strconv.Itoa(page),
		"-l", strconv.Itoa(page),
		path,
		prefix,
	}
	cmd := exec.CommandContext(ctx, r.PDFToPPM, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("pdftoppm failed on page %d: %w: %s", page, err, msg)
		}
		return nil, fmt.Errorf("pdftoppm failed on page %d: %w", page, err)
	}

	rendered, err := findRenderedImage(prefix, page)
	if err != nil {
		return nil, err
	}
	return decodeFile(rendered)
}

// findRenderedImage locates the file pdftoppm produced for page. The tool
// zero-pads the page suffix to the total page count's width, so several
// candidate names are probed before falling back to a glob.
func findRenderedImage(prefix string, page int) (string, error) {
	candidates := []string{
		fmt.Sprintf("%s-%d.png", prefix, page),
		fmt.Sprintf("%s-%02d.png", prefix, page),
		fmt.Sprintf("%s-%03d.png", prefix, page),
		fmt.Sprintf("%s-%04d.png", prefix, page),
		fmt.Sprintf("%s-%05d.png", prefix, page),
		fmt.Sprintf("%s-%06d.png", prefix, page),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return "", err
	}
	for _, match := range matches {
		if pageNumberFromName(match) == page {
			return match, nil
		}
	}
	return "", fmt.Errorf("rendered image not found for page %d", page)
}

func pageNumberFromName(path string) int {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, "-")
	if idx < 0 {
		return 0
	}
	number := strings.TrimSuffix(base[idx+1:], filepath.Ext(base))
	v, err := strconv.Atoi(number)
	if err != nil {
		return 0
	}
	return v
}

func decodeFile(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rendered page: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}
	return FromImage(img), nil
}
