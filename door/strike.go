package door

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Strike implements Opener for an electric door strike wired to a
// single GPIO line.
type Strike struct {
	line     *gpiocdev.Line
	openHigh bool // true = drive high to release, false = drive low
}

// NewStrike requests the strike's GPIO line as an output, starting in
// the engaged (closed) state.
func NewStrike(chip string, offset int, openHigh bool) (*Strike, error) {
	if chip == "" {
		chip = "gpiochip0"
	}

	closedValue := 0
	if !openHigh {
		closedValue = 1
	}

	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(closedValue))
	if err != nil {
		return nil, fmt.Errorf("request %s line %d: %w", chip, offset, err)
	}

	return &Strike{line: line, openHigh: openHigh}, nil
}

// Open implements Opener.Open.
func (s *Strike) Open() error {
	if s.openHigh {
		return s.line.SetValue(1)
	}
	return s.line.SetValue(0)
}

// Close implements Opener.Close.
func (s *Strike) Close() error {
	if s.openHigh {
		return s.line.SetValue(0)
	}
	return s.line.SetValue(1)
}

// Release implements Opener.Release.
func (s *Strike) Release() error {
	s.Close()
	return s.line.Close()
}
