package reader

import (
	"context"
	"errors"

	"smartdoor/rfdeon"
)

// TagSource is the interface for all tag reader implementations.
type TagSource interface {
	// Read performs one read cycle and returns the raw tag identifier
	// bytes. A (nil, nil) return means no tag was presented this
	// cycle. A transient error (see Transient) means this cycle's data
	// was unusable and the next cycle should proceed normally; any
	// other error means the source is lost.
	Read(ctx context.Context) ([]byte, error)

	// Close releases the underlying device. Safe to call once.
	Close() error
}

// ErrNoise marks a garbled read that should be skipped, not treated
// as loss of the device.
var ErrNoise = errors.New("reader: protocol noise")

// Transient reports whether err is per-cycle noise rather than a
// fatal source failure.
func Transient(err error) bool {
	var fe *rfdeon.FrameError
	return errors.As(err, &fe) || errors.Is(err, ErrNoise)
}

// Config holds common configuration for reader implementations.
type Config struct {
	Type    string `yaml:"type"`         // "rfdeon", "ascii", "keyboard"
	Device  string `yaml:"device"`       // e.g. "/dev/ttyUSB0", "/dev/input/event0"
	Baud    int    `yaml:"baud"`         // serial baud rate
	Timeout int    `yaml:"timeout_secs"` // bounded serial read timeout
}

// New creates a TagSource based on the provided configuration.
func New(cfg Config) (TagSource, error) {
	switch cfg.Type {
	case "ascii":
		return NewASCII(cfg.Device, cfg.Baud)
	case "keyboard":
		return NewKeyboard(cfg.Device)
	case "rfdeon", "":
		return NewRFDEON(cfg.Device, cfg.Baud, cfg.Timeout)
	default:
		return nil, errors.New("reader: unknown type " + cfg.Type)
	}
}
