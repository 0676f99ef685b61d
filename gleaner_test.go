package gleaner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hferris/gleaner/document"
	"github.com/hferris/gleaner/model"
	"github.com/hferris/gleaner/raster"
)

// fakeDoc is an in-memory document with one synthetic raster per page.
type fakeDoc struct {
	texts   []string
	rasters []*raster.Raster
	closed  bool
}

func (d *fakeDoc) PageCount() int { return len(d.texts) }

func (d *fakeDoc) PageText(page int) (string, error) {
	return d.texts[page-1], nil
}

func (d *fakeDoc) RenderPage(_ context.Context, page, _ int) (*raster.Raster, error) {
	return d.rasters[page-1], nil
}

func (d *fakeDoc) ExtractImages(context.Context, int) ([]document.EmbeddedImage, error) {
	return nil, nil
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

// pageWithBox renders a white page carrying one solid black rectangle.
func pageWithBox(w, h int, box model.Rect) *raster.Raster {
	page := raster.New(w, h)
	for y := box.Top(); y < box.Bottom(); y++ {
		for x := box.Left(); x < box.Right(); x++ {
			page.Set(x, y, 0, 0, 0)
		}
	}
	return page
}

func TestChainingReturnsNewInstance(t *testing.T) {
	p1 := Open("contest.pdf")
	p2 := p1.Pages(1, 2)
	p3 := p2.DPI(150)

	if p1 == p2 || p2 == p3 {
		t.Error("chain methods should return new instances")
	}
	if len(p1.options.pages) != 0 {
		t.Errorf("original pages = %v, want empty", p1.options.pages)
	}
	if len(p2.options.pages) != 2 {
		t.Errorf("chained pages = %v, want [1 2]", p2.options.pages)
	}
	if p2.options.dpi == 150 {
		t.Error("DPI leaked into earlier chain instance")
	}
}

func TestInvalidDPIFailsFast(t *testing.T) {
	_, _, err := FromDocument(&fakeDoc{texts: []string{""}}).DPI(0).Diagrams()
	if err == nil {
		t.Fatal("Diagrams() with DPI(0) should fail")
	}
}

func TestDiagramsWritesCropsAndReports(t *testing.T) {
	dir := t.TempDir()
	doc := &fakeDoc{
		texts: []string{"", ""},
		rasters: []*raster.Raster{
			raster.New(600, 800),
			pageWithBox(600, 800, model.NewRect(100, 150, 200, 180)),
		},
	}

	report, warnings, err := FromDocument(doc).
		OutputDir(filepath.Join(dir, "out")).
		Diagrams()
	if err != nil {
		t.Fatalf("Diagrams() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if report.Total != 1 {
		t.Fatalf("Total = %d, want 1", report.Total)
	}
	if len(report.Pages) != 2 {
		t.Fatalf("got %d page reports, want 2", len(report.Pages))
	}
	if n := len(report.Pages[0].Files); n != 0 {
		t.Errorf("blank page produced %d files", n)
	}
	want := filepath.Join(dir, "out", "page2_diagram1.png")
	if len(report.Pages[1].Files) != 1 || report.Pages[1].Files[0] != want {
		t.Errorf("page 2 files = %v, want [%s]", report.Pages[1].Files, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("crop not written: %v", err)
	}
}

func TestDiagramsRelaxedWarning(t *testing.T) {
	// A 60x60 box misses the 100x100 primary minimum but passes the
	// relaxed 50x50 one.
	doc := &fakeDoc{
		texts:   []string{""},
		rasters: []*raster.Raster{pageWithBox(600, 800, model.NewRect(100, 100, 60, 60))},
	}

	report, warnings, err := FromDocument(doc).
		OutputDir(t.TempDir()).
		Diagrams()
	if err != nil {
		t.Fatalf("Diagrams() error: %v", err)
	}
	if report.Total != 1 {
		t.Fatalf("Total = %d, want 1", report.Total)
	}
	if !report.Pages[0].Relaxed {
		t.Error("Relaxed = false, want true")
	}
	if len(warnings) != 1 || warnings[0].Page != 1 {
		t.Errorf("warnings = %v, want one for page 1", warnings)
	}
}

func TestDiagramsPageOutOfRange(t *testing.T) {
	doc := &fakeDoc{texts: []string{""}, rasters: []*raster.Raster{raster.New(10, 10)}}
	_, _, err := FromDocument(doc).Pages(3).Diagrams()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("err = %v, want out-of-range error", err)
	}
}

func TestFromDocumentDoesNotCloseCallerDocument(t *testing.T) {
	doc := &fakeDoc{texts: []string{""}, rasters: []*raster.Raster{raster.New(10, 10)}}
	if _, _, err := FromDocument(doc).OutputDir(t.TempDir()).Diagrams(); err != nil {
		t.Fatalf("Diagrams() error: %v", err)
	}
	if doc.closed {
		t.Error("caller-owned document was closed")
	}
}

func TestText(t *testing.T) {
	doc := &fakeDoc{texts: []string{"first page", "second page"}}
	text, _, err := FromDocument(doc).Text()
	if err != nil {
		t.Fatalf("Text() error: %v", err)
	}
	if text != "first page\n\nsecond page" {
		t.Errorf("Text() = %q", text)
	}
}

func TestProblems(t *testing.T) {
	doc := &fakeDoc{texts: []string{
		"Instructions: do not open this booklet.",
		"1. What is 2+2?\nA continuation line.\n2) Count the dots.",
	}}

	probs, warnings, err := FromDocument(doc).ImageDir("").Problems()
	if err != nil {
		t.Fatalf("Problems() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(probs) != 2 {
		t.Fatalf("got %d problems, want 2", len(probs))
	}
	if probs[0].Text != "What is 2+2? A continuation line." {
		t.Errorf("problem 1 text = %q", probs[0].Text)
	}
}

func TestProblemsNoneFoundWarns(t *testing.T) {
	doc := &fakeDoc{texts: []string{"instructions", "no numbered lines here"}}
	probs, warnings, err := FromDocument(doc).Problems()
	if err != nil {
		t.Fatalf("Problems() error: %v", err)
	}
	if len(probs) != 0 {
		t.Errorf("got %d problems, want 0", len(probs))
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one", warnings)
	}
}

func TestLaTeXWritesFile(t *testing.T) {
	doc := &fakeDoc{texts: []string{
		"instructions",
		"1. What is 50% of 10?",
	}}
	path := filepath.Join(t.TempDir(), "contest.tex")

	probs, _, err := FromDocument(doc).ImageDir("").LaTeX(path)
	if err != nil {
		t.Fatalf("LaTeX() error: %v", err)
	}
	if len(probs) != 1 {
		t.Fatalf("got %d problems, want 1", len(probs))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `50\% of 10`) {
		t.Errorf("LaTeX output missing escaped text:\n%s", data)
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	_, _, err := Open("questions.xlsx").Diagrams()
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("err = %v, want unsupported format error", err)
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Page: 3, Message: "relaxed minimums used"},
		{Message: "no numbered problems found"},
	}
	got := FormatWarnings(warnings)
	want := "page 3: relaxed minimums used; no numbered problems found"
	if got != want {
		t.Errorf("FormatWarnings() = %q, want %q", got, want)
	}
	if FormatWarnings(nil) != "" {
		t.Error("FormatWarnings(nil) should be empty")
	}
}
