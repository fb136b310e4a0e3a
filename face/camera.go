package face

import "image"

// Camera captures frames from a video device.
type Camera interface {
	// Read captures one frame. Errors are transient: skip the frame
	// and read again.
	Read() (image.Image, error)

	// Close releases the device. Safe to call once.
	Close() error
}

// Detector finds faces in a frame and computes their encodings.
type Detector interface {
	Detect(frame image.Image) ([]Detection, error)
	Close() error
}

// Config holds face channel configuration.
type Config struct {
	Enabled   bool    `yaml:"enabled"`
	Camera    int     `yaml:"camera"`    // video device index
	ModelDir  string  `yaml:"model_dir"` // dlib model files
	Encodings string  `yaml:"encodings"` // enrolled encodings blob
	Tolerance float64 `yaml:"tolerance"` // 0 = DefaultTolerance
}
