// Package door controls the physical latch. Implementations cover an
// electric strike on a GPIO line, a servo-driven latch and a no-op
// fallback for bench setups without hardware.
package door

import "fmt"

// Opener is the interface for all latch control implementations.
type Opener interface {
	// Open releases the latch.
	Open() error

	// Close re-engages the latch.
	Close() error

	// Release frees any hardware resources.
	Release() error
}

// Config holds configuration for latch implementations.
type Config struct {
	Type       string `yaml:"type"`        // "strike_high", "strike_low", "servo", "none"
	Chip       string `yaml:"chip"`        // gpio chip for strike types, default "gpiochip0"
	Line       int    `yaml:"line"`        // gpio line offset for strike types
	ServoPin   int    `yaml:"servo_pin"`   // PWM pin for servo type
	ServoOpen  int    `yaml:"servo_open"`  // PWM value for open position
	ServoClose int    `yaml:"servo_close"` // PWM value for closed position
}

// New creates an Opener based on the provided configuration.
func New(cfg Config) (Opener, error) {
	switch cfg.Type {
	case "strike_high":
		return NewStrike(cfg.Chip, cfg.Line, true)
	case "strike_low":
		return NewStrike(cfg.Chip, cfg.Line, false)
	case "servo":
		return NewServo(uint8(cfg.ServoPin), cfg.ServoOpen, cfg.ServoClose)
	case "none", "":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("door: unknown type %q", cfg.Type)
	}
}
