package protocol

import "fmt"

// Response parsers extract typed values from the receive half of a
// full-duplex exchange. The buffer passed in is the complete exchange
// buffer, command echo included; parsers index past the dummy region.

// ParseIdentity extracts the JEDEC identification from a Read JEDEC ID
// exchange buffer.
//
// Buffer layout:
//
//	[--][MANUFACTURER][MEMORY_TYPE][CAPACITY]
func ParseIdentity(rx []byte) (Identity, error) {
	if len(rx) < JEDECIDFrameSize {
		return Identity{}, fmt.Errorf("JEDEC ID response too short: got %d bytes, expected %d", len(rx), JEDECIDFrameSize)
	}

	return Identity{
		Manufacturer: rx[1],
		MemoryType:   rx[2],
		Capacity:     rx[3],
	}, nil
}

// ParseDeviceID extracts the legacy manufacturer/device pair from a Read
// Device ID exchange buffer.
//
// Buffer layout:
//
//	[--][--][--][--][MANUFACTURER][DEVICE]
func ParseDeviceID(rx []byte) (DeviceID, error) {
	if len(rx) < DeviceIDFrameSize {
		return DeviceID{}, fmt.Errorf("device ID response too short: got %d bytes, expected %d", len(rx), DeviceIDFrameSize)
	}

	return DeviceID{
		Manufacturer: rx[4],
		Device:       rx[5],
	}, nil
}

// ParseUniqueID extracts the 8-byte factory unique identifier from a Read
// Unique ID exchange buffer. The identifier occupies the 8 bytes following
// the 4-byte dummy region.
//
// Buffer layout:
//
//	[--][-- x 4][UNIQUE_ID(8)]
func ParseUniqueID(rx []byte) ([UniqueIDSize]byte, error) {
	var id [UniqueIDSize]byte
	if len(rx) < UniqueIDFrameSize {
		return id, fmt.Errorf("unique ID response too short: got %d bytes, expected %d", len(rx), UniqueIDFrameSize)
	}

	copy(id[:], rx[5:5+UniqueIDSize])
	return id, nil
}

// ParseStatus decodes the status register from a Read Status exchange
// buffer. Bit 0 of the second byte is the busy flag, bit 1 the write
// enable latch.
//
// Buffer layout:
//
//	[--][STATUS]
func ParseStatus(rx []byte) (Status, error) {
	if len(rx) < StatusFrameSize {
		return Status{}, fmt.Errorf("status response too short: got %d bytes, expected %d", len(rx), StatusFrameSize)
	}

	raw := rx[1]
	return Status{
		Busy:         raw&StatusBusy != 0,
		WriteEnabled: raw&StatusWEL != 0,
		Raw:          raw,
	}, nil
}
