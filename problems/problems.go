package problems

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hferris/gleaner/document"
)

// Config holds problem extraction configuration.
type Config struct {
	// SkipPages is the number of leading pages to skip before looking
	// for problems (the instructions page, typically 1).
	SkipPages int

	// MaxProblems caps the number of problems; a Gauss contest has 25.
	MaxProblems int

	// ImageDir receives embedded images attached to problems.
	// Created if absent.
	ImageDir string
}

// DefaultConfig returns the default problem extraction configuration.
func DefaultConfig() Config {
	return Config{
		SkipPages:   1,
		MaxProblems: 25,
		ImageDir:    "latex_images",
	}
}

// Problem is one reconstructed contest problem.
type Problem struct {
	// Number is the 1-based problem number assigned in reading order.
	Number int

	// Text is the accumulated problem statement.
	Text string

	// Images are local paths of embedded images attached to the
	// problem.
	Images []string
}

// problemStart matches a line opening a new problem: a leading number,
// optionally followed by "." or ")", then whitespace and the statement.
var problemStart = regexp.MustCompile(`^(\d{1,2})[.)]?\s+(.*)`)

// Extract reconstructs problems from the document. Pages after the
// skipped instructions pages are processed in order; embedded images of
// a page are written under cfg.ImageDir and attached to the problem
// active on that page. Image extraction failures skip the page's images
// rather than aborting the run.
func Extract(ctx context.Context, doc document.Document, cfg Config) ([]Problem, error) {
	if cfg.MaxProblems <= 0 {
		cfg.MaxProblems = DefaultConfig().MaxProblems
	}

	var probs []Problem
	for page := cfg.SkipPages + 1; page <= doc.PageCount(); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.PageText(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		probs = splitInto(probs, text, cfg.MaxProblems)

		if cfg.ImageDir == "" || len(probs) == 0 {
			continue
		}
		images, err := doc.ExtractImages(ctx, page)
		if err != nil || len(images) == 0 {
			continue
		}
		if err := os.MkdirAll(cfg.ImageDir, 0o755); err != nil {
			return nil, fmt.Errorf("create image dir: %w", err)
		}
		current := &probs[len(probs)-1]
		for _, img := range images {
			name := fmt.Sprintf("q%dp%d%d.%s", current.Number, page, img.Index, img.Format)
			path := filepath.Join(cfg.ImageDir, name)
			if err := os.WriteFile(path, img.Data, 0o644); err != nil {
				return nil, fmt.Errorf("write %s: %w", path, err)
			}
			current.Images = append(current.Images, path)
		}
	}
	return probs, nil
}

// splitInto appends the problems found in one page's text to probs.
// A line starting with the next expected problem number opens a new
// problem; other lines continue the one in progress, which may have
// started on an earlier page.
func splitInto(probs []Problem, text string, maxProblems int) []Problem {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := problemStart.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			if n == len(probs)+1 && n <= maxProblems {
				probs = append(probs, Problem{Number: n, Text: strings.TrimSpace(m[2])})
				continue
			}
		}
		if len(probs) > 0 {
			current := &probs[len(probs)-1]
			if current.Text == "" {
				current.Text = line
			} else {
				current.Text += " " + line
			}
		}
	}
	return probs
}
