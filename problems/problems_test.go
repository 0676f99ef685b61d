package problems

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hferris/gleaner/document"
	"github.com/hferris/gleaner/raster"
)

// fakeDoc is an in-memory Document for exercising the extraction flow.
type fakeDoc struct {
	pages  []string
	images map[int][]document.EmbeddedImage
}

func (d *fakeDoc) PageCount() int { return len(d.pages) }

func (d *fakeDoc) PageText(page int) (string, error) {
	return d.pages[page-1], nil
}

func (d *fakeDoc) RenderPage(ctx context.Context, page, dpi int) (*raster.Raster, error) {
	return raster.New(100, 100), nil
}

func (d *fakeDoc) ExtractImages(ctx context.Context, page int) ([]document.EmbeddedImage, error) {
	return d.images[page], nil
}

func (d *fakeDoc) Close() error { return nil }

func TestSplitSequentialProblems(t *testing.T) {
	text := strings.Join([]string{
		"1. What is 2 + 2?",
		"(A) 3 (B) 4 (C) 5",
		"2. A rectangle has width 3",
		"and height 4. What is its area?",
		"3) Compute the sum",
	}, "\n")

	probs := splitInto(nil, text, 25)
	if len(probs) != 3 {
		t.Fatalf("got %d problems, want 3", len(probs))
	}
	if probs[0].Text != "What is 2 + 2? (A) 3 (B) 4 (C) 5" {
		t.Errorf("problem 1 text = %q", probs[0].Text)
	}
	if !strings.Contains(probs[1].Text, "What is its area?") {
		t.Errorf("problem 2 lost continuation: %q", probs[1].Text)
	}
	if probs[2].Number != 3 {
		t.Errorf("problem 3 number = %d", probs[2].Number)
	}
}

func TestSplitIgnoresOutOfSequenceNumbers(t *testing.T) {
	text := strings.Join([]string{
		"1. First problem",
		"7 is the answer to nothing",
		"2. Second problem",
	}, "\n")

	probs := splitInto(nil, text, 25)
	if len(probs) != 2 {
		t.Fatalf("got %d problems, want 2", len(probs))
	}
	// The stray "7" line is a continuation, not a new problem.
	if !strings.Contains(probs[0].Text, "7 is the answer") {
		t.Errorf("problem 1 text = %q", probs[0].Text)
	}
}

func TestSplitContinuesAcrossPages(t *testing.T) {
	probs := splitInto(nil, "1. A problem that", 25)
	probs = splitInto(probs, "continues on the next page\n2. Another", 25)

	if len(probs) != 2 {
		t.Fatalf("got %d problems, want 2", len(probs))
	}
	if probs[0].Text != "A problem that continues on the next page" {
		t.Errorf("problem 1 text = %q", probs[0].Text)
	}
}

func TestSplitCapsAtMaxProblems(t *testing.T) {
	text := "1. a\n2. b\n3. c\n4. d"

	probs := splitInto(nil, text, 2)
	if len(probs) != 2 {
		t.Errorf("got %d problems, want cap of 2", len(probs))
	}
}

func TestExtractSkipsInstructionsPage(t *testing.T) {
	doc := &fakeDoc{pages: []string{
		"1. Do not open this booklet until instructed.",
		"1. Real first problem",
	}}

	cfg := DefaultConfig()
	cfg.ImageDir = ""
	probs, err := Extract(context.Background(), doc, cfg)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(probs) != 1 {
		t.Fatalf("got %d problems, want 1", len(probs))
	}
	if probs[0].Text != "Real first problem" {
		t.Errorf("problem text = %q", probs[0].Text)
	}
}

func TestExtractAttachesImages(t *testing.T) {
	imgDir := filepath.Join(t.TempDir(), "imgs")
	doc := &fakeDoc{
		pages: []string{
			"instructions",
			"1. Problem with a diagram",
		},
		images: map[int][]document.EmbeddedImage{
			2: {{Index: 1, Format: "png", Data: []byte{1, 2, 3}}},
		},
	}

	cfg := DefaultConfig()
	cfg.ImageDir = imgDir
	probs, err := Extract(context.Background(), doc, cfg)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(probs) != 1 || len(probs[0].Images) != 1 {
		t.Fatalf("probs = %+v, want 1 problem with 1 image", probs)
	}

	want := filepath.Join(imgDir, "q1p21.png")
	if probs[0].Images[0] != want {
		t.Errorf("image path = %q, want %q", probs[0].Images[0], want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read attached image: %v", err)
	}
	if len(data) != 3 {
		t.Errorf("image data length = %d, want 3", len(data))
	}
}

func TestWriteLaTeX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tex")
	probs := []Problem{
		{Number: 1, Text: "What is 50% of $10?", Images: []string{"imgs/q1p21.png"}},
		{Number: 2, Text: "Plain problem"},
	}

	if err := WriteLaTeX(probs, path); err != nil {
		t.Fatalf("WriteLaTeX() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		`\documentclass[12pt]{article}`,
		`\textbf{Problem 1}`,
		`50\% of \$10?`,
		`\includegraphics[width=0.7\linewidth]{imgs/q1p21.png}`,
		`\textbf{Problem 2}`,
		`\end{document}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
