//go:build !ocr

package ocr

import (
	"errors"
	"testing"

	"github.com/hferris/gleaner/raster"
)

func TestStubNew(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("New() error = %v, want ErrOCRNotEnabled", err)
	}
}

func TestStubOperations(t *testing.T) {
	var c *Client

	if err := c.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
	if _, err := c.RecognizeImage(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage() error = %v, want ErrOCRNotEnabled", err)
	}
	if _, err := c.RecognizeRaster(raster.New(1, 1)); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeRaster() error = %v, want ErrOCRNotEnabled", err)
	}
	if err := c.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v, want ErrOCRNotEnabled", err)
	}
	if err := c.SetPageSegMode(PSM_AUTO); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetPageSegMode() error = %v, want ErrOCRNotEnabled", err)
	}
}
