package webgrab

import (
	"strings"

	"golang.org/x/net/html"
)

// containerIDs and containerClasses are the id/class names the print
// pages have been observed to use for the problem area.
var containerIDs = []string{"printArea", "print-area", "print", "content", "main"}

var containerClasses = []string{"printArea", "print-area", "print", "contest", "paper", "page", "content"}

// headerMarkers identify the site header block that must not win the
// container search (logo, contest title, site URL).
var headerMarkers = []string{
	"centre for education",
	"cemc",
	"centre for education in mathematics and computing",
	"gauss contest",
	"solutions",
	"cemc.uwaterloo.ca",
}

// headerPenalty is subtracted from a candidate's score per header marker
// found in its text, large enough to sink any header-bearing candidate.
const headerPenalty = 2000

// skippedElements never contain problem content.
var skippedElements = map[string]bool{
	"header": true,
	"nav":    true,
	"footer": true,
	"script": true,
	"style":  true,
}

// findProblemContainer locates the element holding the problem text and
// diagrams. Candidates come from three passes of decreasing confidence:
// known container ids/classes, siblings following the contest title, and
// the largest-text element in the body. The candidate with the most text
// after the header-marker penalty wins; the body itself is the fallback.
func findProblemContainer(doc *html.Node) *html.Node {
	var candidates []*html.Node

	for _, id := range containerIDs {
		if el := findByAttr(doc, "id", id); el != nil {
			candidates = append(candidates, el)
		}
	}
	for _, class := range containerClasses {
		if el := findByClass(doc, class); el != nil {
			candidates = append(candidates, el)
		}
	}

	if title := findTitleText(doc); title != nil && title.Parent != nil {
		for sib := title.Parent.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type == html.ElementNode && strings.TrimSpace(textContent(sib)) != "" {
				candidates = append(candidates, sib)
			}
		}
	}

	body := findBody(doc)
	if largest := largestTextElement(body); largest != nil {
		candidates = append(candidates, largest)
	}

	best := body
	bestScore := -1
	for _, c := range candidates {
		if s := score(c); s > bestScore {
			bestScore = s
			best = c
		}
	}
	return best
}

// score ranks a candidate by text length, penalized per header marker so
// elements wrapping the site header lose to pure content blocks.
func score(n *html.Node) int {
	text := strings.ToLower(textContent(n))
	penalty := 0
	for _, m := range headerMarkers {
		if strings.Contains(text, m) {
			penalty++
		}
	}
	return len(text) - penalty*headerPenalty
}

// removeHeaderChildren detaches direct children of the container that
// look like the site header.
func removeHeaderChildren(container *html.Node) {
	var headers []*html.Node
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		text := strings.ToLower(textContent(c))
		for _, m := range headerMarkers {
			if strings.Contains(text, m) {
				headers = append(headers, c)
				break
			}
		}
	}
	for _, h := range headers {
		container.RemoveChild(h)
	}
}

// findTitleText finds the first text node naming the contest ("Gauss"
// plus a grade marker, or "Solutions").
func findTitleText(n *html.Node) *html.Node {
	if n.Type == html.TextNode {
		lowered := strings.ToLower(strings.TrimSpace(n.Data))
		if lowered != "" {
			if strings.Contains(lowered, "gauss") &&
				(strings.Contains(lowered, "grade") || strings.Contains(lowered, "gr.")) {
				return n
			}
			if strings.Contains(lowered, "solutions") {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTitleText(c); found != nil {
			return found
		}
	}
	return nil
}

// largestTextElement returns the descendant with the most text,
// ignoring header-like elements.
func largestTextElement(n *html.Node) *html.Node {
	var best *html.Node
	bestLen := 0
	var walk func(*html.Node)
	walk = func(el *html.Node) {
		if el.Type == html.ElementNode {
			if skippedElements[el.Data] {
				return
			}
			if l := len(strings.TrimSpace(textContent(el))); l > bestLen {
				bestLen = l
				best = el
			}
		}
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return best
}

// findBody returns the document's body element, or the document itself.
func findBody(doc *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if body == nil {
		return doc
	}
	return body
}

// findByAttr finds the first element with the given attribute value.
func findByAttr(n *html.Node, key, value string) *html.Node {
	if n.Type == html.ElementNode && attr(n, key) == value {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByAttr(c, key, value); found != nil {
			return found
		}
	}
	return nil
}

// findByClass finds the first element carrying the given class.
func findByClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode {
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent collects the text of a subtree, one line per text node,
// skipping script and style bodies.
func textContent(n *html.Node) string {
	var lines []string
	var walk func(*html.Node)
	walk = func(el *html.Node) {
		if el.Type == html.ElementNode && (el.Data == "script" || el.Data == "style") {
			return
		}
		if el.Type == html.TextNode {
			if t := strings.TrimSpace(el.Data); t != "" {
				lines = append(lines, t)
			}
		}
		for c := el.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(lines, "\n")
}

// innerHTML renders the children of a node back to markup.
func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Render only fails on unrenderable node types, which parsed
		// trees do not contain.
		_ = html.Render(&sb, c)
	}
	return sb.String()
}
