package detect

import "github.com/hferris/gleaner/model"

// mask is a binary foreground image. pix holds one byte per pixel,
// nonzero for foreground.
type mask struct {
	w, h int
	pix  []uint8
}

func newMask(w, h int) *mask {
	return &mask{w: w, h: h, pix: make([]uint8, w*h)}
}

func (m *mask) at(x, y int) bool {
	return m.pix[y*m.w+x] != 0
}

func (m *mask) set(x, y int) {
	m.pix[y*m.w+x] = 1
}

// dilate grows foreground regions by radius pixels using a square
// structuring element. Bridges gaps up to 2*radius wide.
func (m *mask) dilate(radius int) *mask {
	if radius <= 0 {
		return m
	}
	out := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) {
				continue
			}
			y0, y1 := max(y-radius, 0), min(y+radius, m.h-1)
			x0, x1 := max(x-radius, 0), min(x+radius, m.w-1)
			for yy := y0; yy <= y1; yy++ {
				row := out.pix[yy*out.w:]
				for xx := x0; xx <= x1; xx++ {
					row[xx] = 1
				}
			}
		}
	}
	return out
}

// erode shrinks foreground regions by radius pixels. A dilate followed by
// an erode with the same radius is a morphological close.
func (m *mask) erode(radius int) *mask {
	if radius <= 0 {
		return m
	}
	out := newMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
	next:
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) {
				continue
			}
			y0, y1 := max(y-radius, 0), min(y+radius, m.h-1)
			x0, x1 := max(x-radius, 0), min(x+radius, m.w-1)
			for yy := y0; yy <= y1; yy++ {
				for xx := x0; xx <= x1; xx++ {
					if !m.at(xx, yy) {
						continue next
					}
				}
			}
			out.set(x, y)
		}
	}
	return out
}

// componentBoxes labels 8-connected foreground components and returns
// each component's axis-aligned bounding box. The mask is consumed:
// visited pixels are cleared during the scan.
func componentBoxes(m *mask) []model.Rect {
	var boxes []model.Rect
	stack := make([][2]int, 0, 256)

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) {
				continue
			}

			// Flood fill one component, tracking its extent.
			minX, minY, maxX, maxY := x, y, x, y
			m.pix[y*m.w+x] = 0
			stack = append(stack[:0], [2]int{x, y})
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				px, py := p[0], p[1]

				minX = min(minX, px)
				minY = min(minY, py)
				maxX = max(maxX, px)
				maxY = max(maxY, py)

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := px+dx, py+dy
						if nx < 0 || ny < 0 || nx >= m.w || ny >= m.h {
							continue
						}
						if m.at(nx, ny) {
							m.pix[ny*m.w+nx] = 0
							stack = append(stack, [2]int{nx, ny})
						}
					}
				}
			}

			boxes = append(boxes, model.RectFromCorners(minX, minY, maxX+1, maxY+1))
		}
	}
	return boxes
}
