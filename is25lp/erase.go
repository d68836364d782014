package is25lp

import (
	"context"
	"fmt"
	"time"

	"github.com/kevko/go-is25lp/protocol"
)

// EraseSector erases the 4 KB sector containing address. The address is
// snapped down to the sector boundary before the command is issued.
func (d *Device) EraseSector(ctx context.Context, address uint32) error {
	return d.erase(ctx, "sector erase", protocol.CmdSectorErase, address,
		protocol.SectorSize, d.config.SectorEraseTimeout)
}

// EraseBlock32K erases the 32 KB block containing address.
func (d *Device) EraseBlock32K(ctx context.Context, address uint32) error {
	return d.erase(ctx, "32K block erase", protocol.CmdBlockErase32K, address,
		protocol.Block32KSize, d.config.Block32KEraseTimeout)
}

// EraseBlock64K erases the 64 KB block containing address.
func (d *Device) EraseBlock64K(ctx context.Context, address uint32) error {
	return d.erase(ctx, "64K block erase", protocol.CmdBlockErase64K, address,
		protocol.Block64KSize, d.config.Block64KEraseTimeout)
}

// EraseChip erases the entire device. This is the longest operation the
// chip supports; the wait uses the chip erase budget (10 s default).
func (d *Device) EraseChip(ctx context.Context) error {
	d.reportProgress(Progress{Phase: PhaseErasing})

	if err := d.commandCycle(ctx, "chip erase", protocol.ChipEraseFrame(), d.config.ChipEraseTimeout); err != nil {
		return err
	}

	d.reportProgress(Progress{Phase: PhaseComplete, Percentage: 100})
	d.logInfo("chip erased")
	return nil
}

func (d *Device) erase(ctx context.Context, op string, opcode byte, address, granularity uint32, budget time.Duration) error {
	if address >= chipSize {
		return &OutOfRangeError{Address: address, Capacity: chipSize}
	}

	// Snap down to the start of the containing erase unit.
	aligned := address / granularity * granularity

	d.logDebug(op,
		"address", fmt.Sprintf("0x%06X", address),
		"aligned", fmt.Sprintf("0x%06X", aligned),
	)

	frame := protocol.AddressFrame(opcode, aligned, 0)
	return d.commandCycle(ctx, op, frame, budget)
}
