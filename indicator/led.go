package indicator

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// LED implements Indicator using discrete GPIO LED pins. Any subset
// of the three pins may be wired.
type LED struct {
	green  *gpio.Pin
	red    *gpio.Pin
	yellow *gpio.Pin
}

// NewLED memory-maps the GPIO block and configures the wired pins as
// outputs, all off.
func NewLED(greenPin, redPin, yellowPin *int) (*LED, error) {
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	l := &LED{}
	l.green = outputPin(greenPin)
	l.red = outputPin(redPin)
	l.yellow = outputPin(yellowPin)
	return l, nil
}

func outputPin(n *int) *gpio.Pin {
	if n == nil {
		return nil
	}
	pin := gpio.NewPin(*n)
	pin.Output()
	pin.Low()
	return pin
}

// Idle implements Indicator.Idle.
func (l *LED) Idle() {
	l.allOff()
}

// Granted implements Indicator.Granted.
func (l *LED) Granted() {
	l.allOff()
	set(l.green)
}

// Denied implements Indicator.Denied.
func (l *LED) Denied() {
	l.allOff()
	set(l.red)
}

// Fault implements Indicator.Fault.
func (l *LED) Fault() {
	l.allOff()
	set(l.red)
	set(l.yellow)
}

// Release implements Indicator.Release.
func (l *LED) Release() error {
	l.allOff()
	return gpio.Close()
}

func (l *LED) allOff() {
	for _, pin := range []*gpio.Pin{l.green, l.red, l.yellow} {
		if pin != nil {
			pin.Low()
		}
	}
}

func set(pin *gpio.Pin) {
	if pin != nil {
		pin.High()
	}
}
