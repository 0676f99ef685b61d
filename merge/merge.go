// Package merge consolidates a candidate set of detected regions into a
// minimal covering set. Detection strategies overlap on purpose, so the
// raw candidates contain duplicates, nested boxes, and fragments of the
// same diagram; merging reduces them to one box per diagram.
package merge

import "github.com/hferris/gleaner/model"

// Config holds merge configuration.
type Config struct {
	// ContainmentRatio: a rectangle whose area overlaps a strictly
	// larger rectangle by at least this fraction of its own area is
	// discarded as a sub-part of the larger region.
	ContainmentRatio float64

	// IoUThreshold: two rectangles whose intersection-over-union meets
	// this value are unioned.
	IoUThreshold float64

	// AdjacencyGap: two rectangles are also unioned when, after each is
	// expanded outward by this many pixels, the expansions overlap.
	// This joins fragments of one diagram separated by whitespace that
	// never reach the IoU threshold. Zero disables the rule.
	AdjacencyGap int
}

// DefaultConfig returns the default merge configuration.
func DefaultConfig() Config {
	return Config{
		ContainmentRatio: 0.9,
		IoUThreshold:     0.08,
		AdjacencyGap:     40,
	}
}

// Merge reduces candidates to a merged set in two passes: containment
// elimination, then a union closure run to a fixed point. An empty input
// yields an empty output.
//
// The closure repeats full pairwise scans because unioning two boxes can
// create a box that overlaps a third not adjacent to either original.
// Every union replaces two boxes with one, so the count strictly
// decreases and the loop terminates.
func Merge(candidates []model.Rect, cfg Config) []model.Rect {
	if len(candidates) == 0 {
		return nil
	}
	kept := eliminateContained(candidates, cfg.ContainmentRatio)
	return unionClosure(kept, cfg)
}

// eliminateContained drops every rectangle mostly covered by a strictly
// larger one.
func eliminateContained(rects []model.Rect, ratio float64) []model.Rect {
	var out []model.Rect
	for i, r := range rects {
		contained := false
		for j, s := range rects {
			if i == j || s.Area() <= r.Area() {
				continue
			}
			if r.ContainmentRatio(s) >= ratio {
				contained = true
				break
			}
		}
		if !contained {
			out = append(out, r)
		}
	}
	return out
}

// unionClosure repeatedly unions qualifying pairs until a full pass
// changes nothing.
func unionClosure(rects []model.Rect, cfg Config) []model.Rect {
	out := append([]model.Rect(nil), rects...)
	for {
		merged := false
	scan:
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				if !shouldUnion(out[i], out[j], cfg) {
					continue
				}
				union := out[i].Union(out[j])
				out[i] = union
				out = append(out[:j], out[j+1:]...)
				merged = true
				break scan
			}
		}
		if !merged {
			return out
		}
	}
}

func shouldUnion(a, b model.Rect, cfg Config) bool {
	if a.IoU(b) >= cfg.IoUThreshold {
		return true
	}
	if cfg.AdjacencyGap > 0 &&
		a.Expand(cfg.AdjacencyGap).Intersects(b.Expand(cfg.AdjacencyGap)) {
		return true
	}
	return false
}
