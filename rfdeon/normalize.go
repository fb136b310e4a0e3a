package rfdeon

import (
	"encoding/hex"
	"strings"
)

// Normalize returns the canonical form of a tag identifier: uppercase
// hex with a single space after every byte pair. Existing spacing is
// discarded first, so the function is idempotent. An odd trailing
// nibble is emitted as a short final group; readers are not expected
// to produce one.
func Normalize(tag string) string {
	tag = strings.ToUpper(strings.ReplaceAll(tag, " ", ""))

	var b strings.Builder
	b.Grow(len(tag) + len(tag)/2)
	for i := 0; i < len(tag); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + 2
		if end > len(tag) {
			end = len(tag)
		}
		b.WriteString(tag[i:end])
	}
	return b.String()
}

// HexReadable renders a raw tag block in canonical form.
func HexReadable(tag []byte) string {
	return Normalize(hex.EncodeToString(tag))
}
