// Package indicator drives the device's status lights.
package indicator

// Indicator is the interface for status indicator implementations.
type Indicator interface {
	// Idle sets the indicator to the ready state.
	Idle()

	// Granted signals an access grant.
	Granted()

	// Denied signals a denied or unmatched identity.
	Denied()

	// Fault signals a failed sensor channel.
	Fault()

	// Release frees any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO LED pins (nil = not configured)
	GreenPin  *int `yaml:"green_pin"`
	RedPin    *int `yaml:"red_pin"`
	YellowPin *int `yaml:"yellow_pin"`
}

// New creates an Indicator based on the provided configuration.
func New(cfg Config) (Indicator, error) {
	if cfg.GreenPin == nil && cfg.RedPin == nil && cfg.YellowPin == nil {
		return &Noop{}, nil
	}
	return NewLED(cfg.GreenPin, cfg.RedPin, cfg.YellowPin)
}
