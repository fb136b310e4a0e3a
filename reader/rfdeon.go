package reader

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	"smartdoor/rfdeon"
)

// RFDEON implements TagSource for RFD-EON inventory readers. Each
// Read is one poll cycle: send the inventory command, collect the
// response frame within the read timeout, decode it and hand back the
// first tag block. Multi-tag collisions in range are not
// disambiguated; only the first reported tag is used.
type RFDEON struct {
	port   serial.Port
	device string
}

// NewRFDEON opens the reader's serial port. timeoutSecs bounds every
// blocking read; it defaults to 2 seconds.
func NewRFDEON(device string, baud, timeoutSecs int) (*RFDEON, error) {
	if baud == 0 {
		baud = 57600
	}
	if timeoutSecs == 0 {
		timeoutSecs = 2
	}

	mode := &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	_ = p.SetReadTimeout(time.Duration(timeoutSecs) * time.Second)

	return &RFDEON{port: p, device: device}, nil
}

// Read implements TagSource.Read.
func (r *RFDEON) Read(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if _, err := r.port.Write(rfdeon.InventoryPoll()); err != nil {
		return nil, fmt.Errorf("write poll to %s: %w", r.device, err)
	}

	raw, err := r.readFrame()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	inv, err := rfdeon.DecodeInventory(raw)
	if err != nil {
		return nil, err
	}
	if len(inv.Tags) == 0 {
		return nil, nil
	}
	return inv.Tags[0], nil
}

// readFrame collects one length-prefixed frame. A timeout before the
// first byte means no response this cycle; a timeout mid-frame is
// protocol noise.
func (r *RFDEON) readFrame() ([]byte, error) {
	hdr := make([]byte, 1)
	n, err := r.port.Read(hdr)
	if err != nil {
		return nil, fmt.Errorf("read frame header from %s: %w", r.device, err)
	}
	if n == 0 {
		return nil, nil
	}

	total := int(hdr[0])
	if total == 0 {
		return nil, &rfdeon.FrameError{Reason: "zero-length frame"}
	}

	buf := make([]byte, total)
	got := 0
	for got < total {
		n, err := r.port.Read(buf[got:])
		if err != nil {
			return nil, fmt.Errorf("read frame body from %s: %w", r.device, err)
		}
		if n == 0 {
			return nil, &rfdeon.FrameError{Reason: fmt.Sprintf("frame truncated at %d of %d bytes", got, total)}
		}
		got += n
	}
	return append(hdr, buf...), nil
}

// Close implements TagSource.Close.
func (r *RFDEON) Close() error {
	if r.port == nil {
		return nil
	}
	return r.port.Close()
}
