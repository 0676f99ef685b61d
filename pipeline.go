package gleaner

import (
	"context"
	"fmt"
	"strings"

	"github.com/hferris/gleaner/detect"
	"github.com/hferris/gleaner/document"
	"github.com/hferris/gleaner/export"
	"github.com/hferris/gleaner/format"
	"github.com/hferris/gleaner/merge"
	"github.com/hferris/gleaner/ocr"
	"github.com/hferris/gleaner/problems"
)

// Pipeline provides a fluent interface for extracting diagrams and
// problems from contest documents. Each configuration method returns a
// new Pipeline instance, making it safe for concurrent use and allowing
// method chaining.
type Pipeline struct {
	// Source
	filename string

	// Document (opened lazily from filename unless supplied)
	doc document.Document

	// Lifecycle
	ownsDoc   bool // true if we opened the document and should close it
	docOpened bool // true if the document has been opened

	// Configuration
	options pipelineOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Pipeline with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename:  p.filename,
		doc:       p.doc,
		ownsDoc:   p.ownsDoc,
		docOpened: p.docOpened,
		options:   p.options.clone(),
		err:       p.err,
		warnings:  append([]Warning(nil), p.warnings...),
	}
}

// ensureDocument opens the document if not already open.
func (p *Pipeline) ensureDocument() error {
	if p.docOpened {
		return nil
	}
	if p.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	switch f := format.Detect(p.filename); f {
	case format.PDF:
		doc, err := document.OpenPDF(p.filename)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		p.doc = doc
		p.ownsDoc = true
		p.docOpened = true
		return nil

	default:
		return fmt.Errorf("unsupported file format: %s", f)
	}
}

// Close releases resources associated with the Pipeline.
// It is safe to call Close multiple times.
func (p *Pipeline) Close() error {
	if p.ownsDoc && p.doc != nil {
		err := p.doc.Close()
		p.doc = nil
		p.ownsDoc = false
		return err
	}
	return nil
}

func (p *Pipeline) warn(page int, message string) {
	p.warnings = append(p.warnings, Warning{Page: page, Message: message})
}

// ============================================================================
// Configuration Methods (return new Pipeline instance)
// ============================================================================

// Pages specifies which pages to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	report, _, err := gleaner.Open("contest.pdf").Pages(2, 3).Diagrams()
func (p *Pipeline) Pages(pages ...int) *Pipeline {
	newPipe := p.clone()
	newPipe.options.pages = append(newPipe.options.pages, pages...)
	return newPipe
}

// PageRange specifies a range of pages to process (1-indexed, inclusive).
//
// Example:
//
//	report, _, err := gleaner.Open("contest.pdf").PageRange(2, 5).Diagrams()
func (p *Pipeline) PageRange(start, end int) *Pipeline {
	newPipe := p.clone()
	for i := start; i <= end; i++ {
		newPipe.options.pages = append(newPipe.options.pages, i)
	}
	return newPipe
}

// DPI sets the render resolution for page rasterization.
// The default is 300.
func (p *Pipeline) DPI(dpi int) *Pipeline {
	newPipe := p.clone()
	if dpi <= 0 {
		newPipe.err = fmt.Errorf("invalid DPI: %d", dpi)
		return newPipe
	}
	newPipe.options.dpi = dpi
	return newPipe
}

// OutputDir sets the directory diagram crops are written to.
// The default is "extracted_diagrams".
func (p *Pipeline) OutputDir(dir string) *Pipeline {
	newPipe := p.clone()
	newPipe.options.export.OutputDir = dir
	return newPipe
}

// Padding sets the crop padding: each region is padded by ratio times
// its larger dimension, but never by fewer than minPixels. A zero ratio
// gives a fixed pixel pad; a zero minimum gives a pure ratio pad.
func (p *Pipeline) Padding(ratio float64, minPixels int) *Pipeline {
	newPipe := p.clone()
	newPipe.options.export.PaddingRatio = ratio
	newPipe.options.export.MinPadding = minPixels
	return newPipe
}

// MinRegionSize sets the minimum width and height a detected region must
// have to be kept. The defaults are 100x100 at 300 DPI.
func (p *Pipeline) MinRegionSize(width, height int) *Pipeline {
	newPipe := p.clone()
	newPipe.options.detect.MinWidth = width
	newPipe.options.detect.MinHeight = height
	return newPipe
}

// ExcludeInstructionsHeader excludes the header band of the given page
// (1-indexed) from detection. Contest instruction pages carry a large
// boxed header that would otherwise be detected as a diagram.
//
// Example:
//
//	report, _, err := gleaner.Open("contest.pdf").
//	    ExcludeInstructionsHeader(1).
//	    Diagrams()
func (p *Pipeline) ExcludeInstructionsHeader(page int) *Pipeline {
	return p.ExcludeZone(detect.InstructionsHeader(page))
}

// ExcludeZone adds an exclusion zone to detection. Multiple calls are
// cumulative.
func (p *Pipeline) ExcludeZone(zone detect.ExclusionZone) *Pipeline {
	newPipe := p.clone()
	newPipe.options.detect.Exclusions = append(newPipe.options.detect.Exclusions, zone)
	return newPipe
}

// SkipPages sets the number of leading pages skipped before problem
// splitting looks for numbered problems. The default is 1 (the
// instructions page).
func (p *Pipeline) SkipPages(n int) *Pipeline {
	newPipe := p.clone()
	newPipe.options.problems.SkipPages = n
	return newPipe
}

// MaxProblems caps the number of problems recognized by problem
// splitting. The default is 25.
func (p *Pipeline) MaxProblems(n int) *Pipeline {
	newPipe := p.clone()
	newPipe.options.problems.MaxProblems = n
	return newPipe
}

// ImageDir sets the directory embedded problem images are written to.
// The default is "latex_images".
func (p *Pipeline) ImageDir(dir string) *Pipeline {
	newPipe := p.clone()
	newPipe.options.problems.ImageDir = dir
	return newPipe
}

// OCRFallback recognizes text from rendered pages when a page carries
// no text layer, for problem splitting on scanned contests. Requires
// building with the "ocr" tag and a Tesseract installation; without
// them the fallback is skipped with a warning.
func (p *Pipeline) OCRFallback() *Pipeline {
	newPipe := p.clone()
	newPipe.options.ocrFallback = true
	return newPipe
}

// DetectConfig replaces the full detection configuration. For common
// adjustments prefer the focused methods like MinRegionSize.
func (p *Pipeline) DetectConfig(cfg detect.Config) *Pipeline {
	newPipe := p.clone()
	newPipe.options.detect = cfg
	return newPipe
}

// MergeConfig replaces the full merge configuration.
func (p *Pipeline) MergeConfig(cfg merge.Config) *Pipeline {
	newPipe := p.clone()
	newPipe.options.merge = cfg
	return newPipe
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageDiagrams reports the diagrams extracted from one page.
type PageDiagrams struct {
	// Page is the 1-based page number.
	Page int

	// Files are the written crop paths, in top-to-bottom, left-to-right
	// order.
	Files []string

	// Relaxed is true when the page's regions were only found after
	// relaxing the minimum size filter.
	Relaxed bool
}

// DiagramReport is the result of a Diagrams extraction run.
type DiagramReport struct {
	// Pages holds the per-page results, in processing order.
	Pages []PageDiagrams

	// Total is the grand total of diagrams written.
	Total int
}

// PageCount returns the number of pages in the document.
//
// Unlike the extraction methods this is not a terminal operation: the
// document stays open so a chain can continue. Call Close() if no
// terminal operation follows.
func (p *Pipeline) PageCount() (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if err := p.ensureDocument(); err != nil {
		return 0, err
	}
	return p.doc.PageCount(), nil
}

// Diagrams renders the configured pages, detects and merges diagram
// regions, and writes padded crops to the output directory. This is a
// terminal operation that closes the underlying document.
//
// Returns the per-page report, any warnings encountered during
// processing, and an error if extraction failed. Warnings indicate
// non-fatal issues (e.g., a page whose regions only appeared under
// relaxed size minimums) where extraction succeeded but results may be
// imperfect.
//
// Example:
//
//	report, warnings, err := gleaner.Open("contest.pdf").Diagrams()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", gleaner.FormatWarnings(warnings))
//	}
func (p *Pipeline) Diagrams() (*DiagramReport, []Warning, error) {
	return p.DiagramsContext(context.Background())
}

// DiagramsContext is Diagrams with a caller-supplied context. Rendering
// runs external tools per page; the context cancels them.
func (p *Pipeline) DiagramsContext(ctx context.Context) (*DiagramReport, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	pageNums, err := p.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	detector := detect.New(p.options.detect)
	exporter := export.New(p.options.export)

	report := &DiagramReport{}
	for _, pageNum := range pageNums {
		page, err := p.doc.RenderPage(ctx, pageNum, p.options.dpi)
		if err != nil {
			return nil, p.warnings, fmt.Errorf("render page %d: %w", pageNum, err)
		}

		result := detector.Detect(page, pageNum)
		if result.Relaxed {
			p.warn(pageNum, "no regions at the primary minimum size; relaxed minimums used")
		}

		regions := merge.Merge(result.Candidates, p.options.merge)

		files, err := exporter.Export(page, pageNum, regions)
		if err != nil {
			return nil, p.warnings, fmt.Errorf("page %d: %w", pageNum, err)
		}

		report.Pages = append(report.Pages, PageDiagrams{
			Page:    pageNum,
			Files:   files,
			Relaxed: result.Relaxed,
		})
		report.Total += len(files)
	}

	return report, p.warnings, nil
}

// Problems splits the document's text into numbered problems and
// attaches embedded images. This is a terminal operation that closes
// the underlying document.
//
// Example:
//
//	probs, warnings, err := gleaner.Open("contest.pdf").Problems()
func (p *Pipeline) Problems() ([]problems.Problem, []Warning, error) {
	return p.ProblemsContext(context.Background())
}

// ProblemsContext is Problems with a caller-supplied context.
func (p *Pipeline) ProblemsContext(ctx context.Context) ([]problems.Problem, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	return p.extractProblems(ctx)
}

// LaTeX extracts problems and writes them as a LaTeX article to path.
// This is a terminal operation that closes the underlying document.
//
// Example:
//
//	probs, warnings, err := gleaner.Open("contest.pdf").LaTeX("contest.tex")
func (p *Pipeline) LaTeX(path string) ([]problems.Problem, []Warning, error) {
	return p.LaTeXContext(context.Background(), path)
}

// LaTeXContext is LaTeX with a caller-supplied context.
func (p *Pipeline) LaTeXContext(ctx context.Context, path string) ([]problems.Problem, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	if err := p.ensureDocument(); err != nil {
		return nil, nil, err
	}
	defer p.Close()

	probs, warnings, err := p.extractProblems(ctx)
	if err != nil {
		return nil, warnings, err
	}
	if err := problems.WriteLaTeX(probs, path); err != nil {
		return probs, warnings, err
	}
	return probs, warnings, nil
}

// Text extracts and returns the text content of the configured pages,
// separated by blank lines. This is a terminal operation that closes
// the underlying document.
func (p *Pipeline) Text() (string, []Warning, error) {
	if p.err != nil {
		return "", nil, p.err
	}
	if err := p.ensureDocument(); err != nil {
		return "", nil, err
	}
	defer p.Close()

	pageNums, err := p.resolvePages()
	if err != nil {
		return "", nil, err
	}

	var result strings.Builder
	for _, pageNum := range pageNums {
		text, err := p.doc.PageText(pageNum)
		if err != nil {
			return "", p.warnings, fmt.Errorf("page %d: %w", pageNum, err)
		}
		if result.Len() > 0 && len(text) > 0 {
			result.WriteString("\n\n")
		}
		result.WriteString(text)
	}
	return result.String(), p.warnings, nil
}

// extractProblems runs problem splitting against the open document.
func (p *Pipeline) extractProblems(ctx context.Context) ([]problems.Problem, []Warning, error) {
	doc := p.doc
	if p.options.ocrFallback {
		client, err := ocr.New()
		if err != nil {
			p.warn(0, fmt.Sprintf("OCR fallback unavailable: %v", err))
		} else {
			defer client.Close()
			doc = &ocrFallbackDocument{
				Document: p.doc,
				client:   client,
				dpi:      p.options.dpi,
				ctx:      ctx,
			}
		}
	}

	probs, err := problems.Extract(ctx, doc, p.options.problems)
	if err != nil {
		return nil, p.warnings, err
	}
	if len(probs) == 0 {
		p.warn(0, "no numbered problems found")
	}
	return probs, p.warnings, nil
}

// resolvePages returns the 1-based page numbers to process: the
// configured selection, or every page when none was configured.
func (p *Pipeline) resolvePages() ([]int, error) {
	count := p.doc.PageCount()
	if len(p.options.pages) == 0 {
		all := make([]int, count)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	for _, pageNum := range p.options.pages {
		if pageNum < 1 || pageNum > count {
			return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageNum, count)
		}
	}
	return append([]int(nil), p.options.pages...), nil
}
