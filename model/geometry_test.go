package model

import (
	"math"
	"testing"
)

func TestRectFromCorners(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		expected       Rect
	}{
		{"ordered corners", 10, 20, 110, 70, Rect{10, 20, 100, 50}},
		{"swapped corners", 110, 70, 10, 20, Rect{10, 20, 100, 50}},
		{"degenerate", 5, 5, 5, 5, Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RectFromCorners(tt.x1, tt.y1, tt.x2, tt.y2)
			if result != tt.expected {
				t.Errorf("RectFromCorners() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.Left() != 10 || r.Right() != 110 || r.Top() != 20 || r.Bottom() != 70 {
		t.Errorf("edges = %d,%d,%d,%d, want 10,110,20,70",
			r.Left(), r.Right(), r.Top(), r.Bottom())
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", Rect{0, 0, 100, 100}, Rect{50, 50, 100, 100}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{25, 25, 50, 50}, true},
		{"disjoint", Rect{0, 0, 50, 50}, Rect{100, 100, 50, 50}, false},
		{"edge touching", Rect{0, 0, 50, 50}, Rect{50, 0, 50, 50}, false},
		{"one pixel overlap", Rect{0, 0, 51, 51}, Rect{50, 50, 50, 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.expected {
				t.Errorf("Intersects() = %v, want %v", got, tt.expected)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(tt.a); got != tt.expected {
				t.Errorf("reversed Intersects() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	b := Rect{80, 80, 100, 100}
	got := a.Intersection(b)
	want := Rect{80, 80, 20, 20}
	if got != want {
		t.Errorf("Intersection() = %+v, want %+v", got, want)
	}

	disjoint := Rect{500, 500, 10, 10}
	if got := a.Intersection(disjoint); !got.IsEmpty() {
		t.Errorf("Intersection of disjoint rects = %+v, want empty", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	b := Rect{80, 80, 100, 100}
	got := a.Union(b)
	want := Rect{0, 0, 180, 180}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{50, 50, 100, 100}
	got := r.Expand(10)
	want := Rect{40, 40, 120, 120}
	if got != want {
		t.Errorf("Expand(10) = %+v, want %+v", got, want)
	}

	shrunk := r.Expand(-10)
	wantShrunk := Rect{60, 60, 80, 80}
	if shrunk != wantShrunk {
		t.Errorf("Expand(-10) = %+v, want %+v", shrunk, wantShrunk)
	}
}

func TestRectClamp(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		w, h     int
		expected Rect
	}{
		{"inside", Rect{10, 10, 50, 50}, 100, 100, Rect{10, 10, 50, 50}},
		{"past right edge", Rect{80, 10, 50, 50}, 100, 100, Rect{80, 10, 20, 50}},
		{"past all edges", Rect{-10, -10, 200, 200}, 100, 100, Rect{0, 0, 100, 100}},
		{"fully outside", Rect{200, 200, 50, 50}, 100, 100, Rect{200, 200, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Clamp(tt.w, tt.h)
			if got.X != tt.expected.X && got.IsValid() {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.expected)
			}
			if got.IsValid() != tt.expected.IsValid() {
				t.Errorf("Clamp() validity = %v, want %v", got.IsValid(), tt.expected.IsValid())
			}
			if got.Left() < 0 || got.Top() < 0 || got.Right() > tt.w || got.Bottom() > tt.h {
				t.Errorf("Clamp() = %+v extends past bounds %dx%d", got, tt.w, tt.h)
			}
		})
	}
}

func TestRectIoU(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected float64
	}{
		{"identical", Rect{0, 0, 100, 100}, Rect{0, 0, 100, 100}, 1.0},
		{"disjoint", Rect{0, 0, 50, 50}, Rect{100, 100, 50, 50}, 0.0},
		{"corner overlap", Rect{0, 0, 100, 100}, Rect{80, 80, 100, 100}, 400.0 / 19600.0},
		{"half overlap", Rect{0, 0, 100, 100}, Rect{50, 0, 100, 100}, 5000.0 / 15000.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.IoU(tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("IoU() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRectContainmentRatio(t *testing.T) {
	big := Rect{10, 10, 200, 200}
	small := Rect{15, 15, 50, 50}

	if got := small.ContainmentRatio(big); got != 1.0 {
		t.Errorf("fully contained ratio = %v, want 1.0", got)
	}
	if got := big.ContainmentRatio(small); got >= 0.9 {
		t.Errorf("large-in-small ratio = %v, want < 0.9", got)
	}

	partial := Rect{0, 0, 100, 100}
	other := Rect{50, 0, 100, 100}
	if got := partial.ContainmentRatio(other); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half contained ratio = %v, want 0.5", got)
	}
}
