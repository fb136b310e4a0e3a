//go:build !screen

package video

import "image"

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return false
}

// Display is unavailable without screen support.
type Display struct{}

// New fails when screen support is not compiled in.
func New() (*Display, error) {
	return nil, ErrScreenNotCompiled
}

// Splash implements the display API.
func (d *Display) Splash() {}

// Show implements the display API.
func (d *Display) Show(name, status string, frame image.Image) {}

// Shutdown implements the display API.
func (d *Display) Shutdown() {}

// Release implements the display API.
func (d *Display) Release() error { return nil }
