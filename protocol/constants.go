package protocol

// Command opcodes for the IS25LP040E (standard SPI NOR command set).
const (
	// CmdWriteEnable sets the write enable latch (WEL)
	CmdWriteEnable = 0x06

	// CmdWriteDisable clears the write enable latch
	CmdWriteDisable = 0x04

	// CmdReadStatus reads the status register
	CmdReadStatus = 0x05

	// CmdWriteStatus writes the status register (write-protect configuration)
	CmdWriteStatus = 0x01

	// CmdReadData reads memory at normal clock speed
	CmdReadData = 0x03

	// CmdFastRead reads memory at full clock speed (one dummy byte after address)
	CmdFastRead = 0x0B

	// CmdPageProgram programs up to one page (256 bytes)
	CmdPageProgram = 0x02

	// CmdSectorErase erases a 4 KB sector
	CmdSectorErase = 0x20

	// CmdBlockErase32K erases a 32 KB block
	CmdBlockErase32K = 0x52

	// CmdBlockErase64K erases a 64 KB block
	CmdBlockErase64K = 0xD8

	// CmdChipErase erases the entire device
	CmdChipErase = 0xC7

	// CmdReadJEDECID reads the 3-byte JEDEC identification
	CmdReadJEDECID = 0x9F

	// CmdReadDeviceID reads the legacy manufacturer/device ID pair
	CmdReadDeviceID = 0x90

	// CmdReadUniqueID reads the 64-bit factory-programmed unique ID
	CmdReadUniqueID = 0x4B

	// CmdDeepPowerDown enters deep power-down mode
	CmdDeepPowerDown = 0xB9

	// CmdReleasePowerDown releases the device from deep power-down
	CmdReleasePowerDown = 0xAB
)

// Status register bits.
const (
	// StatusBusy is the write-in-progress (WIP) bit
	StatusBusy = 0x01

	// StatusWEL is the write enable latch bit
	StatusWEL = 0x02
)

// Device geometry. The IS25LP040E is 4 Mbit, power-of-two throughout.
const (
	// PageSize is the programming granularity in bytes
	PageSize = 256

	// SectorSize is the smallest erase granularity in bytes
	SectorSize = 4096

	// Block32KSize is the 32 KB erase granularity in bytes
	Block32KSize = 32768

	// Block64KSize is the 64 KB erase granularity in bytes
	Block64KSize = 65536

	// ChipSize is the total capacity in bytes (512 KB)
	ChipSize = 524288

	// TotalSectors is ChipSize / SectorSize
	TotalSectors = 128

	// TotalPages is ChipSize / PageSize
	TotalPages = 2048
)

// Expected identity codes, from the IS25LP040E datasheet.
const (
	// ManufacturerID is the ISSI manufacturer code
	ManufacturerID = 0x9D

	// MemoryType is the memory type code
	MemoryType = 0x60

	// CapacityID is the capacity code (4 Mbit)
	CapacityID = 0x13

	// JEDECID is the combined manufacturer/type/capacity identification
	JEDECID = 0x9D6013
)

// DummyByte is clocked out while the device drives the response.
const DummyByte = 0xFF

// Exchange frame sizes. Each covers the full duplex exchange: command,
// address/dummy region and response bytes.
const (
	// JEDECIDFrameSize is opcode + 3 response bytes
	JEDECIDFrameSize = 4

	// DeviceIDFrameSize is opcode + 3 address bytes + 2 response bytes
	DeviceIDFrameSize = 6

	// UniqueIDFrameSize is opcode + 4 dummy + 8 response bytes
	UniqueIDFrameSize = 13

	// StatusFrameSize is opcode + 1 response byte
	StatusFrameSize = 2

	// UniqueIDSize is the length of the factory-programmed unique ID
	UniqueIDSize = 8

	// AddressSize is the number of address bytes on the wire
	AddressSize = 3
)
