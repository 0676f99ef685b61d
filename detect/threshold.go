package detect

import (
	"image"

	"github.com/hferris/gleaner/model"
)

// ThresholdStrategy binarizes intensity against a brightness cutoff,
// inverted so that dark content on a light page becomes foreground, and
// reports the bounding box of each connected foreground component.
//
// In adaptive mode the cutoff follows the local mean over a square
// window, which copes with uneven scan brightness at the cost of more
// noise components.
type ThresholdStrategy struct {
	// Cutoff is the fixed brightness threshold: pixels at or below it
	// are foreground.
	Cutoff uint8

	// Adaptive switches to a locally-adaptive cutoff.
	Adaptive bool

	// Window is the side length of the local-mean window (odd).
	Window int

	// Bias is subtracted from the local mean before comparison, so only
	// pixels clearly darker than their surroundings become foreground.
	Bias int
}

// Name returns the strategy name.
func (s ThresholdStrategy) Name() string { return "threshold" }

// Detect produces candidate boxes from the intensity image.
func (s ThresholdStrategy) Detect(gray *image.Gray) []model.Rect {
	if s.Adaptive {
		return componentBoxes(s.adaptiveMask(gray))
	}
	return componentBoxes(s.fixedMask(gray))
}

func (s ThresholdStrategy) fixedMask(gray *image.Gray) *mask {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	m := newMask(w, h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		out := m.pix[y*w : y*w+w]
		for x, v := range row {
			if v <= s.Cutoff {
				out[x] = 1
			}
		}
	}
	return m
}

func (s ThresholdStrategy) adaptiveMask(gray *image.Gray) *mask {
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	window := s.Window
	if window < 3 {
		window = 3
	}
	radius := window / 2

	// Summed-area table for O(1) local means.
	integral := make([]uint64, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(row[x])
			integral[(y+1)*(w+1)+x+1] = integral[y*(w+1)+x+1] + rowSum
		}
	}

	m := newMask(w, h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		y0, y1 := max(y-radius, 0), min(y+radius, h-1)
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			sum := integral[(y1+1)*(w+1)+x1+1] -
				integral[y0*(w+1)+x1+1] -
				integral[(y1+1)*(w+1)+x0] +
				integral[y0*(w+1)+x0]
			count := uint64((y1 - y0 + 1) * (x1 - x0 + 1))
			mean := int(sum / count)
			if int(row[x]) < mean-s.Bias {
				m.set(x, y)
			}
		}
	}
	return m
}
