package door

import (
	"fmt"
	"time"

	"github.com/hjkoskel/govattu"
)

// Servo implements Opener using a PWM-driven servo latch.
type Servo struct {
	hw       govattu.Vattu
	pin      uint8
	openPos  int
	closePos int
}

// NewServo configures hardware PWM on the given pin and moves the
// latch to the closed position.
func NewServo(pin uint8, openPos, closePos int) (*Servo, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	hw.PinMode(pin, govattu.ALT5) // ALT5 for PWM0
	hw.PwmSetMode(true, true, false, false)
	hw.PwmSetClock(19)
	hw.Pwm0SetRange(20000)

	s := &Servo{
		hw:       hw,
		pin:      pin,
		openPos:  openPos,
		closePos: closePos,
	}
	s.hw.Pwm0Set(uint32(closePos))
	return s, nil
}

// Open implements Opener.Open.
func (s *Servo) Open() error {
	s.sweep(s.closePos, s.openPos)
	return nil
}

// Close implements Opener.Close.
func (s *Servo) Close() error {
	s.sweep(s.openPos, s.closePos)
	return nil
}

// Release implements Opener.Release.
func (s *Servo) Release() error {
	return s.hw.Close()
}

// sweep moves the servo gradually so the latch does not slam.
func (s *Servo) sweep(from, to int) {
	inc := 1
	if to < from {
		inc = -1
	}
	for i := from; i != to; i += inc {
		s.hw.Pwm0Set(uint32(i))
		time.Sleep(2 * time.Millisecond)
	}
}
