// Package protocol implements the IS25LP040E SPI NOR flash command set.
//
// This package provides functions to build command frames and decode
// response bytes according to the ISSI IS25LP040E datasheet. It is a pure
// encoder: no transport I/O, no device state.
//
// # Wire Format
//
// Every command is a single full-duplex SPI exchange performed while chip
// select is asserted. The transmit buffer carries the opcode, an optional
// 24-bit big-endian address and dummy bytes; the device drives response
// bytes on the same clock edges:
//
//	TX: [OPCODE][ADDR_HI][ADDR_MID][ADDR_LO][FF...]
//	RX: [------][-------][--------][-------][RESPONSE...]
//
// # Frame Builders
//
// Use the *Frame functions to create transmit buffers:
//
//	tx := protocol.JEDECIDFrame()
//	tx := protocol.AddressFrame(protocol.CmdReadData, addr, 0)
//	tx := protocol.PageProgramFrame(addr, payload)
//
// Builders never fail; address range and payload length validation belongs
// to the driver layer.
//
// # Response Parsers
//
// Parsers take the complete exchange buffer and extract the typed result:
//
//	identity, err := protocol.ParseIdentity(rx)
//	status, err := protocol.ParseStatus(rx)
//
// # Reference
//
// ISSI IS25LP040E datasheet, "4Mb Serial Flash Memory with Multi I/O SPI".
package protocol
