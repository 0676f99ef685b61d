package webgrab

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/hferris/gleaner/format"
)

// defaultUserAgent identifies the fetcher to the contest site.
const defaultUserAgent = "Mozilla/5.0 (compatible; gleaner/1.0)"

// Config holds fetch and extraction configuration.
type Config struct {
	// OutputDir receives saved PDFs. Created if absent.
	OutputDir string

	// ImagesDir receives downloaded diagram images. Created if absent.
	ImagesDir string

	// UserAgent overrides the default request User-Agent.
	UserAgent string
}

// DefaultConfig returns the default webgrab configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir: "cemc_output",
		ImagesDir: filepath.Join("cemc_output", "images"),
	}
}

// Question is the extraction result for one print page.
type Question struct {
	// ID is the first question id from the URL's ids= parameter.
	ID string

	// PageURL is the fetched URL.
	PageURL string

	// Text is the problem text with block-level line breaks.
	Text string

	// HTML is the inner HTML of the problem container.
	HTML string

	// DiagramURLs are the resolved remote URLs of the diagrams.
	DiagramURLs []string

	// LocalPaths are the downloaded diagram files.
	LocalPaths []string

	// SavedPDF is the local path of the response when the endpoint
	// returned PDF bytes instead of HTML.
	SavedPDF string
}

// Client fetches and extracts print pages.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a Client for the given configuration.
func New(cfg Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{}}
}

// NewWithHTTPClient creates a Client using a caller-supplied HTTP
// client, for timeouts and tests.
func NewWithHTTPClient(cfg Config, hc *http.Client) *Client {
	return &Client{cfg: cfg, http: hc}
}

// Grab fetches the print page at pageURL and extracts its question.
// Diagram download failures are reported as warnings, not errors; the
// question is still returned with whatever was recovered.
func (c *Client) Grab(ctx context.Context, pageURL string) (*Question, []string, error) {
	body, contentType, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}

	q := &Question{
		ID:      QuestionIDFromURL(pageURL),
		PageURL: pageURL,
	}
	if q.ID == "" {
		q.ID = "unknown_id"
	}

	switch format.DetectResponse(contentType, body) {
	case format.PDF:
		if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(c.cfg.OutputDir, q.ID+".pdf")
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return nil, nil, fmt.Errorf("save PDF: %w", err)
		}
		q.SavedPDF = path
		return q, nil, nil
	default:
		warnings, err := c.extractHTML(ctx, q, body, contentType)
		return q, warnings, err
	}
}

func (c *Client) fetch(ctx context.Context, pageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: unexpected status %s", pageURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// extractHTML fills the question from an HTML response body.
func (c *Client) extractHTML(ctx context.Context, q *Question, body []byte, contentType string) ([]string, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		reader = bytes.NewReader(body)
	}
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	container := findProblemContainer(doc)
	removeHeaderChildren(container)

	q.Text = textContent(container)
	q.HTML = innerHTML(container)

	base, err := url.Parse(q.PageURL)
	if err != nil {
		base = nil
	}

	var warnings []string
	q.DiagramURLs, q.LocalPaths, warnings = c.downloadImages(ctx, container, base)

	// Some pages place the diagrams outside the problem container; when
	// the container has none, sweep the whole page.
	if len(q.DiagramURLs) == 0 {
		urls, paths, pageWarnings := c.downloadImages(ctx, doc, base)
		if len(paths) > 0 {
			q.DiagramURLs, q.LocalPaths = urls, paths
		}
		warnings = append(warnings, pageWarnings...)
	}
	return warnings, nil
}

// QuestionIDFromURL extracts the first question id from the URL's ids=
// query parameter; ids are tilde-separated.
func QuestionIDFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ids := u.Query().Get("ids")
	if ids == "" {
		return ""
	}
	if i := strings.IndexByte(ids, '~'); i >= 0 {
		ids = ids[:i]
	}
	return ids
}
