//go:build !vision

package face

import (
	"errors"
	"image"
)

// VisionSupported returns whether camera and detector support is
// compiled in.
func VisionSupported() bool {
	return false
}

var errNoVision = errors.New("face: built without vision support (rebuild with -tags vision)")

// Webcam is unavailable without vision support.
type Webcam struct{}

// OpenCamera fails when vision support is not compiled in.
func OpenCamera(index int) (*Webcam, error) {
	return nil, errNoVision
}

// Read implements Camera.Read.
func (w *Webcam) Read() (image.Image, error) { return nil, errNoVision }

// Close implements Camera.Close.
func (w *Webcam) Close() error { return nil }

// DlibDetector is unavailable without vision support.
type DlibDetector struct{}

// NewDetector fails when vision support is not compiled in.
func NewDetector(modelDir string) (*DlibDetector, error) {
	return nil, errNoVision
}

// Detect implements Detector.Detect.
func (d *DlibDetector) Detect(frame image.Image) ([]Detection, error) { return nil, errNoVision }

// Close implements Detector.Close.
func (d *DlibDetector) Close() error { return nil }
