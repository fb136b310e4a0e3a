package rfdeon

// EncodeCommand builds a command frame for the given reader address.
func EncodeCommand(adr, cmd byte, data []byte) []byte {
	body := make([]byte, 0, 3+len(data)+2)
	body = append(body, byte(4+len(data)), adr, cmd)
	body = append(body, data...)
	return seal(body)
}

// InventoryPoll returns the "inventory all" broadcast command. The
// frame is constant: the reader answers with every tag currently in
// range.
func InventoryPoll() []byte {
	return EncodeCommand(BroadcastAddr, CmdInventoryAll, nil)
}
