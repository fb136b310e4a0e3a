package rfdeon

import "fmt"

// Inventory is the decoded result of one inventory poll cycle. Tags
// holds the raw EPC blocks in the order the reader reported them; it
// is empty when no transponder was in range.
type Inventory struct {
	Adr    byte
	Status byte
	Tags   [][]byte
}

// DecodeInventory parses a raw inventory response frame. A frame that
// is truncated, has a bad CRC, or declares a tag count that does not
// match its payload yields a *FrameError. An in-range reader with no
// tag present yields an Inventory with zero Tags, not an error.
func DecodeInventory(raw []byte) (*Inventory, error) {
	// Len, Adr, reCmd, Status and two CRC bytes at minimum.
	if len(raw) < 6 {
		return nil, &FrameError{Reason: fmt.Sprintf("frame too short (%d bytes)", len(raw))}
	}
	declared := int(raw[0])
	if len(raw) != declared+1 {
		return nil, &FrameError{Reason: fmt.Sprintf("declared %d bytes, got %d", declared, len(raw)-1)}
	}

	body := raw[:len(raw)-2]
	crc := uint16(raw[len(raw)-2]) | uint16(raw[len(raw)-1])<<8
	if checksum(body) != crc {
		return nil, &FrameError{Reason: "crc mismatch"}
	}

	if raw[2] != CmdInventoryAll {
		return nil, &FrameError{Reason: fmt.Sprintf("unexpected command 0x%02X", raw[2])}
	}

	inv := &Inventory{Adr: raw[1], Status: raw[3]}
	data := raw[4 : len(raw)-2]

	switch inv.Status {
	case StatusNoTag:
		if len(data) != 0 {
			return nil, &FrameError{Reason: "no-tag status with payload"}
		}
		return inv, nil

	case StatusInventoryDone:
		if len(data) == 0 {
			return nil, &FrameError{Reason: "missing tag count"}
		}
		count := int(data[0])
		blocks := data[1:]
		if len(blocks) != count*TagLength {
			return nil, &FrameError{Reason: fmt.Sprintf("declared %d tags, payload holds %d bytes", count, len(blocks))}
		}
		for i := 0; i < count; i++ {
			tag := make([]byte, TagLength)
			copy(tag, blocks[i*TagLength:])
			inv.Tags = append(inv.Tags, tag)
		}
		return inv, nil

	default:
		return nil, &FrameError{Reason: fmt.Sprintf("status 0x%02X", inv.Status)}
	}
}

// EncodeInventory builds an inventory response frame as the reader
// would. Tags must all be TagLength bytes wide. Used by tests and
// reader simulators.
func EncodeInventory(adr byte, tags [][]byte) ([]byte, error) {
	// The declared length is a single byte, which caps one response
	// frame at 20 tag blocks.
	if 6+len(tags)*TagLength > 0xFF {
		return nil, fmt.Errorf("rfdeon: %d tags exceed the frame length byte", len(tags))
	}
	for _, tag := range tags {
		if len(tag) != TagLength {
			return nil, fmt.Errorf("rfdeon: tag block must be %d bytes, got %d", TagLength, len(tag))
		}
	}

	// Len byte counts adr, cmd, status, count, blocks and CRC.
	body := make([]byte, 0, 5+len(tags)*TagLength+2)
	body = append(body, byte(6+len(tags)*TagLength), adr, CmdInventoryAll, StatusInventoryDone, byte(len(tags)))
	for _, tag := range tags {
		body = append(body, tag...)
	}
	return seal(body), nil
}
