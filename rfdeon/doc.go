// Package rfdeon implements the serial frame protocol spoken by
// RFD-EON family UHF inventory readers.
//
// Every frame, in either direction, has the layout
//
//	[Len][Adr][Cmd][Data...][CRC-LSB][CRC-MSB]
//
// where Len counts every byte after itself (address, command, data and
// the two CRC bytes) and the CRC is CRC-16/MCRF4XX computed over the
// frame up to but not including the CRC bytes. Responses carry a status
// byte as the first data byte. Tags are reported as fixed-width EPC-96
// blocks of 12 bytes each.
package rfdeon
