package reader

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

const (
	asciiSTX = 0x02
	asciiETX = 0x03
)

// ASCII implements TagSource for legacy push-style readers that emit
// fixed nine-byte frames on every swipe:
// [0x02][0x09][data...][checksum][0x03] with an XOR checksum over the
// six bytes after the STX.
type ASCII struct {
	port   *serial.Port
	device string
}

// NewASCII opens a legacy serial reader. Baud defaults to 9600.
func NewASCII(device string, baud int) (*ASCII, error) {
	if baud == 0 {
		baud = 9600
	}

	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: time.Second,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}

	return &ASCII{port: port, device: device}, nil
}

// Read implements TagSource.Read. These readers push frames
// unprompted, so a cycle is a single bounded read.
func (a *ASCII) Read(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	buff := make([]byte, 9)
	n, err := a.port.Read(buff)
	if err != nil {
		// tarm reports timeouts as errors; nothing was swiped.
		return nil, nil
	}
	if n == 0 {
		return nil, nil
	}
	if n != 9 {
		return nil, fmt.Errorf("%w: partial frame (%d bytes)", ErrNoise, n)
	}

	if !bytes.Equal(buff[0:2], []byte{asciiSTX, 0x09}) {
		return nil, fmt.Errorf("%w: bad preamble % X", ErrNoise, buff[0:2])
	}
	if buff[8] != asciiETX {
		return nil, fmt.Errorf("%w: missing terminator", ErrNoise)
	}

	data := buff[1:7]
	xor := data[0]
	for i := 1; i < len(data); i++ {
		xor ^= data[i]
	}
	if xor != buff[7] {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrNoise)
	}

	tag := make([]byte, 4)
	copy(tag, buff[3:7])
	return tag, nil
}

// Close implements TagSource.Close.
func (a *ASCII) Close() error {
	if a.port == nil {
		return nil
	}
	return a.port.Close()
}
