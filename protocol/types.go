package protocol

// Identity is the JEDEC identification triple read with CmdReadJEDECID.
type Identity struct {
	// Manufacturer is the manufacturer code (0x9D for ISSI)
	Manufacturer byte

	// MemoryType is the memory type code (0x60)
	MemoryType byte

	// Capacity is the capacity code (0x13 for 4 Mbit)
	Capacity byte
}

// JEDEC returns the combined 24-bit identification value.
func (id Identity) JEDEC() uint32 {
	return uint32(id.Manufacturer)<<16 | uint32(id.MemoryType)<<8 | uint32(id.Capacity)
}

// DeviceID is the legacy manufacturer/device pair read with CmdReadDeviceID.
type DeviceID struct {
	// Manufacturer is the manufacturer code
	Manufacturer byte

	// Device is the device code
	Device byte
}

// Status is the decoded status register.
type Status struct {
	// Busy reports an in-progress program or erase cycle (WIP bit)
	Busy bool

	// WriteEnabled reports the write enable latch (WEL bit)
	WriteEnabled bool

	// Raw is the unparsed register value
	Raw byte
}
