package reader

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/kenshaw/evdev"
)

// Keyboard implements TagSource for USB keyboard-wedge readers that
// type the tag's hex digits followed by Enter.
type Keyboard struct {
	device *evdev.Evdev
}

// NewKeyboard opens the reader's input event device.
func NewKeyboard(device string) (*Keyboard, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}

	log.Printf("Opened keyboard reader: %s (vendor 0x%04x, product 0x%04x)",
		dev.Name(), dev.ID().Vendor, dev.ID().Product)

	return &Keyboard{device: dev}, nil
}

// Read implements TagSource.Read. Digits accumulate until Enter; a
// line that is not valid even-length hex is noise, not a tag.
func (k *Keyboard) Read(ctx context.Context) ([]byte, error) {
	ch := k.device.Poll(ctx)
	var strbuf string

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case event := <-ch:
			if event == nil {
				return nil, fmt.Errorf("keyboard device closed")
			}

			switch event.Type.(type) {
			case evdev.KeyType:
				if event.Value != 1 {
					continue
				}

				if event.Type == evdev.KeyEnter {
					if strbuf == "" {
						continue
					}
					tag, err := hex.DecodeString(strbuf)
					if err != nil {
						return nil, fmt.Errorf("%w: bad badge line %q", ErrNoise, strbuf)
					}
					return tag, nil
				}

				strbuf += evdev.KeyType(event.Code).String()
			}
		}
	}
}

// Close implements TagSource.Close.
func (k *Keyboard) Close() error {
	if k.device == nil {
		return nil
	}
	return k.device.Close()
}
