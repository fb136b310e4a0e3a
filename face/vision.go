//go:build vision

package face

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	goface "github.com/Kagami/go-face"
	"gocv.io/x/gocv"
)

// VisionSupported returns whether camera and detector support is
// compiled in.
func VisionSupported() bool {
	return true
}

// Webcam implements Camera over a local video device.
type Webcam struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

// OpenCamera opens the video device with the given index.
func OpenCamera(index int) (*Webcam, error) {
	cap, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	return &Webcam{cap: cap, mat: gocv.NewMat()}, nil
}

// Read implements Camera.Read.
func (w *Webcam) Read() (image.Image, error) {
	if !w.cap.Read(&w.mat) || w.mat.Empty() {
		return nil, errors.New("frame capture failed")
	}
	img, err := w.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return img, nil
}

// Close implements Camera.Close.
func (w *Webcam) Close() error {
	w.mat.Close()
	return w.cap.Close()
}

// DlibDetector implements Detector using dlib's CNN face detector and
// ResNet descriptor network.
type DlibDetector struct {
	rec *goface.Recognizer
}

// NewDetector loads the dlib model files from modelDir.
func NewDetector(modelDir string) (*DlibDetector, error) {
	rec, err := goface.NewRecognizer(modelDir)
	if err != nil {
		return nil, fmt.Errorf("load face models from %s: %w", modelDir, err)
	}
	return &DlibDetector{rec: rec}, nil
}

// Detect implements Detector.Detect. The frame is re-encoded as JPEG
// because the descriptor network consumes compressed images.
func (d *DlibDetector) Detect(frame image.Image) ([]Detection, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, nil); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	found, err := d.rec.Recognize(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("recognize: %w", err)
	}

	detections := make([]Detection, len(found))
	for i, f := range found {
		enc := make(Encoding, len(f.Descriptor))
		for j, v := range f.Descriptor {
			enc[j] = v
		}
		detections[i] = Detection{Rect: f.Rectangle, Encoding: enc}
	}
	return detections, nil
}

// Close implements Detector.Close.
func (d *DlibDetector) Close() error {
	d.rec.Close()
	return nil
}
