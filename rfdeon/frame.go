package rfdeon

import "fmt"

// Reader command codes.
const (
	CmdInventoryAll byte = 0x01
)

// Response status codes.
const (
	StatusInventoryDone byte = 0x01 // inventory completed, tag blocks follow
	StatusNoTag         byte = 0xFB // no transponder in range
)

// BroadcastAddr addresses every reader on the bus.
const BroadcastAddr byte = 0x00

// TagLength is the fixed width of one EPC-96 tag block.
const TagLength = 12

// FrameError reports a malformed or truncated frame. It is distinct
// from an empty inventory: callers should log it and retry on the next
// poll cycle.
type FrameError struct {
	Reason string
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("rfdeon: bad frame: %s", e.Reason)
}

// checksum computes CRC-16/MCRF4XX over data.
func checksum(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}

// seal appends the CRC to a frame body and returns the complete frame.
func seal(body []byte) []byte {
	crc := checksum(body)
	return append(body, byte(crc&0xFF), byte(crc>>8))
}
