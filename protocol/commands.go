package protocol

// Frame builders construct the exact byte sequence clocked out for each
// command. They perform no I/O and no validation: address range and length
// constraints are the sequencer's responsibility, so builders cannot fail.
//
// Every frame doubles as the transmit half of a full-duplex exchange; the
// caller supplies a receive buffer of the same length and reads the response
// out of the positions documented per command.

// JEDECIDFrame builds the Read JEDEC ID exchange.
//
// Frame structure:
//
//	TX: [0x9F][FF][FF][FF]
//	RX: [--][MANUFACTURER][MEMORY_TYPE][CAPACITY]
func JEDECIDFrame() []byte {
	return []byte{CmdReadJEDECID, DummyByte, DummyByte, DummyByte}
}

// DeviceIDFrame builds the legacy Read Manufacturer/Device ID exchange.
//
// Frame structure:
//
//	TX: [0x90][00][00][00][FF][FF]
//	RX: [--][--][--][--][MANUFACTURER][DEVICE]
func DeviceIDFrame() []byte {
	return []byte{CmdReadDeviceID, 0x00, 0x00, 0x00, DummyByte, DummyByte}
}

// UniqueIDFrame builds the Read Unique ID exchange. The 8-byte identifier
// follows a 4-byte dummy region.
//
// Frame structure:
//
//	TX: [0x4B][FF x 12]
//	RX: [--][-- x 4][UNIQUE_ID(8)]
func UniqueIDFrame() []byte {
	frame := make([]byte, UniqueIDFrameSize)
	frame[0] = CmdReadUniqueID
	for i := 1; i < UniqueIDFrameSize; i++ {
		frame[i] = DummyByte
	}
	return frame
}

// StatusFrame builds the Read Status Register exchange.
//
// Frame structure:
//
//	TX: [0x05][FF]
//	RX: [--][STATUS]
func StatusFrame() []byte {
	return []byte{CmdReadStatus, DummyByte}
}

// WriteEnableFrame builds the single-byte Write Enable command.
func WriteEnableFrame() []byte {
	return []byte{CmdWriteEnable}
}

// WriteDisableFrame builds the single-byte Write Disable command.
func WriteDisableFrame() []byte {
	return []byte{CmdWriteDisable}
}

// ChipEraseFrame builds the single-byte Chip Erase command.
func ChipEraseFrame() []byte {
	return []byte{CmdChipErase}
}

// PowerDownFrame builds the single-byte Deep Power-Down command.
func PowerDownFrame() []byte {
	return []byte{CmdDeepPowerDown}
}

// ReleasePowerDownFrame builds the single-byte Release Power-Down command.
func ReleasePowerDownFrame() []byte {
	return []byte{CmdReleasePowerDown}
}

// AddressFrame builds an opcode followed by the 24-bit address in big-endian
// byte order and the requested number of trailing dummy bytes (0 for
// program/erase commands, 1 for fast read).
//
// Frame structure:
//
//	[OPCODE][ADDR_HI][ADDR_MID][ADDR_LO][FF x dummy]
//
// Precondition: address fits in 24 bits. Addresses are big-endian on the
// wire regardless of host endianness.
func AddressFrame(opcode byte, address uint32, dummy int) []byte {
	frame := make([]byte, 0, 1+AddressSize+dummy)
	frame = append(frame, opcode)
	frame = append(frame, byte(address>>16), byte(address>>8), byte(address))
	for i := 0; i < dummy; i++ {
		frame = append(frame, DummyByte)
	}
	return frame
}

// PageProgramFrame builds a Page Program command with payload.
//
// Frame structure:
//
//	[0x02][ADDR_HI][ADDR_MID][ADDR_LO][DATA...]
func PageProgramFrame(address uint32, data []byte) []byte {
	frame := make([]byte, 0, 1+AddressSize+len(data))
	frame = append(frame, AddressFrame(CmdPageProgram, address, 0)...)
	frame = append(frame, data...)
	return frame
}
