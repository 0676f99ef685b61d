package detect

import (
	"image"

	"github.com/hferris/gleaner/model"
)

// EdgeStrategy detects intensity-gradient edges and groups them into
// candidate boxes. It catches faint outline drawings whose strokes are
// too light for a brightness cutoff: the gradient at a stroke boundary is
// strong even when the stroke itself is pale.
//
// The edge mask is dilated to bridge small gaps between strokes so that
// one drawing labels as one component rather than many.
type EdgeStrategy struct {
	// GradientThreshold is the minimum Sobel gradient magnitude
	// (|gx| + |gy|, range 0..2040) for a pixel to count as an edge.
	GradientThreshold int

	// DilateRadius controls gap bridging; gaps up to twice the radius
	// are closed.
	DilateRadius int

	// Close erodes the dilated mask back by the same radius, keeping
	// the bridged connectivity without inflating the boxes.
	Close bool
}

// Name returns the strategy name.
func (s EdgeStrategy) Name() string { return "edge" }

// Detect produces candidate boxes from the intensity image.
func (s EdgeStrategy) Detect(gray *image.Gray) []model.Rect {
	m := s.edgeMask(gray)
	m = m.dilate(s.DilateRadius)
	if s.Close {
		m = m.erode(s.DilateRadius)
	}
	return componentBoxes(m)
}

// edgeMask marks pixels whose Sobel gradient magnitude meets the
// threshold. The one-pixel image border is left as background.
func (s EdgeStrategy) edgeMask(gray *image.Gray) *mask {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	m := newMask(w, h)
	if w < 3 || h < 3 {
		return m
	}

	for y := 1; y < h-1; y++ {
		above := gray.Pix[(y-1)*gray.Stride:]
		cur := gray.Pix[y*gray.Stride:]
		below := gray.Pix[(y+1)*gray.Stride:]
		for x := 1; x < w-1; x++ {
			gx := int(above[x+1]) + 2*int(cur[x+1]) + int(below[x+1]) -
				int(above[x-1]) - 2*int(cur[x-1]) - int(below[x-1])
			gy := int(below[x-1]) + 2*int(below[x]) + int(below[x+1]) -
				int(above[x-1]) - 2*int(above[x]) - int(above[x+1])
			if abs(gx)+abs(gy) >= s.GradientThreshold {
				m.set(x, y)
			}
		}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
