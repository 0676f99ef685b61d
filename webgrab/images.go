package webgrab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// downloadImages finds every <img> in the subtree, resolves each src
// against base, and downloads it into the configured images directory
// under a collision-free local name. Failed downloads become warnings;
// the remaining images are still saved.
func (c *Client) downloadImages(ctx context.Context, root *html.Node, base *url.URL) (urls, localPaths, warnings []string) {
	for _, img := range findImages(root) {
		src := attr(img, "src")
		if src == "" {
			continue
		}

		ref, err := url.Parse(src)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping malformed image URL %q: %v", src, err))
			continue
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		}
		absURL := ref.String()
		urls = append(urls, absURL)

		local, err := c.downloadImage(ctx, absURL, len(localPaths)+1)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("couldn't download image %s: %v", absURL, err))
			continue
		}
		localPaths = append(localPaths, local)
	}
	return urls, localPaths, warnings
}

func (c *Client) downloadImage(ctx context.Context, imgURL string, seq int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return "", err
	}
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.cfg.ImagesDir, 0o755); err != nil {
		return "", err
	}

	name := localImageName(imgURL, seq)
	local := uniquePath(c.cfg.ImagesDir, name)
	if err := os.WriteFile(local, data, 0o644); err != nil {
		return "", err
	}
	return local, nil
}

// localImageName derives a file name from the image URL's path, falling
// back to a sequence name when the path has none.
func localImageName(imgURL string, seq int) string {
	if u, err := url.Parse(imgURL); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return fmt.Sprintf("img_%d.png", seq)
}

// uniquePath appends _1, _2, ... to the stem until the name is free in
// dir, so repeated downloads never overwrite earlier diagrams.
func uniquePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

// findImages collects the <img> elements of a subtree in document order.
func findImages(n *html.Node) []*html.Node {
	var imgs []*html.Node
	var walk func(*html.Node)
	walk = func(el *html.Node) {
		if el.Type == html.ElementNode && el.Data == "img" {
			imgs = append(imgs, el)
		}
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return imgs
}
