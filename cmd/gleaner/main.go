// Command gleaner extracts diagrams and problem statements from math
// contest documents.
//
// Usage:
//
//	gleaner diagrams [flags] contest.pdf
//	gleaner problems [flags] contest.pdf
//	gleaner web [flags] print-page-url
//
// Run "gleaner <mode> -h" for the flags of each mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/hferris/gleaner"
	"github.com/hferris/gleaner/sheet"
	"github.com/hferris/gleaner/webgrab"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "diagrams":
		err = runDiagrams(ctx, os.Args[2:])
	case "problems":
		err = runProblems(ctx, os.Args[2:])
	case "web":
		err = runWeb(ctx, os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "gleaner: unknown mode %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "gleaner:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  gleaner diagrams [flags] contest.pdf   extract diagram crops as PNG files
  gleaner problems [flags] contest.pdf   split problems and write a LaTeX file
  gleaner web      [flags] url           grab a contest print page

Run "gleaner <mode> -h" for mode flags.`)
}

func runDiagrams(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("diagrams", flag.ExitOnError)
	out := fs.String("out", "extracted_diagrams", "output directory for diagram crops")
	pages := fs.String("pages", "", "comma-separated 1-based pages to process (default all)")
	dpi := fs.Int("dpi", 300, "render resolution")
	headerPage := fs.Int("exclude-header", 0, "exclude the header band of this page (0 disables)")
	minSize := fs.Int("min-size", 100, "minimum region width and height in pixels")
	padRatio := fs.Float64("padding-ratio", 0.05, "crop padding as a fraction of the larger dimension")
	minPad := fs.Int("min-padding", 10, "minimum crop padding in pixels")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("diagrams: expected one PDF path, got %d arguments", fs.NArg())
	}

	p := gleaner.Open(fs.Arg(0)).
		OutputDir(*out).
		DPI(*dpi).
		MinRegionSize(*minSize, *minSize).
		Padding(*padRatio, *minPad)
	if *headerPage > 0 {
		p = p.ExcludeInstructionsHeader(*headerPage)
	}
	if *pages != "" {
		nums, err := parsePages(*pages)
		if err != nil {
			return err
		}
		p = p.Pages(nums...)
	}

	report, warnings, err := p.DiagramsContext(ctx)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	for _, page := range report.Pages {
		fmt.Printf("page %d: %d diagram(s)\n", page.Page, len(page.Files))
	}
	fmt.Printf("total: %d diagram(s) in %s\n", report.Total, *out)
	return nil
}

func runProblems(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("problems", flag.ExitOnError)
	tex := fs.String("tex", "problems.tex", "output LaTeX file")
	images := fs.String("images", "latex_images", "directory for embedded problem images")
	skip := fs.Int("skip", 1, "leading pages to skip before splitting")
	maxProblems := fs.Int("max", 25, "maximum number of problems")
	useOCR := fs.Bool("ocr", false, "recognize pages without a text layer (needs an ocr-enabled build)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("problems: expected one PDF path, got %d arguments", fs.NArg())
	}

	p := gleaner.Open(fs.Arg(0)).
		SkipPages(*skip).
		MaxProblems(*maxProblems).
		ImageDir(*images)
	if *useOCR {
		p = p.OCRFallback()
	}
	probs, warnings, err := p.LaTeXContext(ctx, *tex)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	for _, p := range probs {
		fmt.Printf("problem %d: %d image(s)\n", p.Number, len(p.Images))
	}
	fmt.Printf("wrote %d problem(s) to %s\n", len(probs), *tex)
	return nil
}

func runWeb(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	out := fs.String("out", "cemc_output", "output directory for saved PDFs and images")
	workbook := fs.String("xlsx", "", "append the question to this workbook (empty disables)")
	timeout := fs.Duration("timeout", 60*time.Second, "HTTP timeout")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("web: expected one URL, got %d arguments", fs.NArg())
	}

	cfg := webgrab.DefaultConfig()
	cfg.OutputDir = *out
	cfg.ImagesDir = *out + "/images"
	client := webgrab.NewWithHTTPClient(cfg, &http.Client{Timeout: *timeout})

	q, warnings, err := client.Grab(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if q.SavedPDF != "" {
		fmt.Printf("%s: saved PDF to %s\n", q.ID, q.SavedPDF)
	} else {
		fmt.Printf("%s: %d diagram(s) downloaded\n", q.ID, len(q.LocalPaths))
	}

	if *workbook != "" {
		err := sheet.Append(*workbook, sheet.Record{
			ID:          q.ID,
			PageURL:     q.PageURL,
			Text:        q.Text,
			HTML:        q.HTML,
			DiagramURLs: q.DiagramURLs,
			LocalPaths:  q.LocalPaths,
			SavedPDF:    q.SavedPDF,
		})
		if err != nil {
			return err
		}
		fmt.Printf("appended %s to %s\n", q.ID, *workbook)
	}
	return nil
}

// parsePages parses a comma-separated page list like "2,3,4".
func parsePages(s string) ([]int, error) {
	var nums []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("empty page list")
	}
	return nums, nil
}
