package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/hferris/gleaner/model"
)

func TestFromImageNormalizesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	r := FromImage(src)
	if r.Width() != 4 || r.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, want 4x4", r.Width(), r.Height())
	}
	pix := r.RGBA().Pix
	if pix[0] != 10 || pix[1] != 20 || pix[2] != 30 || pix[3] != 255 {
		t.Errorf("pixel = %v, want [10 20 30 255]", pix[:4])
	}
}

func TestFromImageNormalizesGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 128})
	src.SetGray(1, 1, color.Gray{Y: 0})

	r := FromImage(src)
	pix := r.RGBA().Pix
	// Single-channel input expands to equal RGB channels.
	if pix[0] != 128 || pix[1] != 128 || pix[2] != 128 {
		t.Errorf("gray pixel expanded to %v, want [128 128 128]", pix[:3])
	}
}

func TestFromImageNonZeroOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 14))
	src.SetRGBA(10, 10, color.RGBA{R: 200, A: 255})

	r := FromImage(src)
	if r.Width() != 4 || r.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, want 4x4", r.Width(), r.Height())
	}
	if r.RGBA().Pix[0] != 200 {
		t.Errorf("origin pixel R = %d, want 200", r.RGBA().Pix[0])
	}
}

func TestGrayLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"white", 255, 255, 255, 255},
		{"black", 0, 0, 0, 0},
		{"pure red", 255, 0, 0, 76},
		{"pure green", 0, 255, 0, 149},
		{"pure blue", 0, 0, 255, 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(1, 1)
			r.Set(0, 0, tt.r, tt.g, tt.b)
			got := r.Gray().GrayAt(0, 0).Y
			if got != tt.want {
				t.Errorf("Gray() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewIsWhite(t *testing.T) {
	r := New(3, 3)
	gray := r.Gray()
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if gray.GrayAt(x, y).Y != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want 255", x, y, gray.GrayAt(x, y).Y)
			}
		}
	}
}

func TestCrop(t *testing.T) {
	r := New(100, 100)
	r.Set(50, 50, 1, 2, 3)

	crop := r.Crop(model.NewRect(40, 40, 20, 20))
	if crop.Width() != 20 || crop.Height() != 20 {
		t.Fatalf("crop dimensions = %dx%d, want 20x20", crop.Width(), crop.Height())
	}
	pix := crop.RGBA().Pix
	off := crop.RGBA().PixOffset(10, 10)
	if pix[off] != 1 || pix[off+1] != 2 || pix[off+2] != 3 {
		t.Errorf("crop pixel = %v, want [1 2 3]", pix[off:off+3])
	}
}

func TestCropClampsToBounds(t *testing.T) {
	r := New(100, 100)
	crop := r.Crop(model.NewRect(90, 90, 50, 50))
	if crop.Width() != 10 || crop.Height() != 10 {
		t.Errorf("clamped crop = %dx%d, want 10x10", crop.Width(), crop.Height())
	}
}

func TestPageNumberFromName(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/tmp/x/page-1.png", 1},
		{"/tmp/x/page-007.png", 7},
		{"/tmp/x/page.png", 0},
	}
	for _, tt := range tests {
		if got := pageNumberFromName(tt.path); got != tt.want {
			t.Errorf("pageNumberFromName(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
