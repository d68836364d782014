package is25lp

import (
	"context"
	"fmt"
	"time"

	"github.com/kevko/go-is25lp/protocol"
)

// Read returns length bytes starting at address using the normal-speed
// Read Data command. The range may span any number of pages and sectors.
func (d *Device) Read(ctx context.Context, address uint32, length int) ([]byte, error) {
	return d.read(ctx, "read", protocol.CmdReadData, address, length, 0)
}

// FastRead returns length bytes starting at address using the Fast Read
// command, which inserts one dummy byte between address and data.
func (d *Device) FastRead(ctx context.Context, address uint32, length int) ([]byte, error) {
	return d.read(ctx, "fast read", protocol.CmdFastRead, address, length, 1)
}

func (d *Device) read(ctx context.Context, op string, opcode byte, address uint32, length, dummy int) ([]byte, error) {
	if length <= 0 {
		return nil, ErrZeroLength
	}
	if err := checkRange(address, length); err != nil {
		return nil, err
	}

	if err := d.waitReady(ctx, op, d.config.ReadyTimeout); err != nil {
		return nil, err
	}

	header := protocol.AddressFrame(opcode, address, dummy)
	tx := make([]byte, len(header)+length)
	copy(tx, header)
	rx := make([]byte, len(tx))

	if err := d.exchange(tx, rx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]byte, length)
	copy(out, rx[len(header):])
	return out, nil
}

// WritePage programs up to one page (256 bytes) at address. The range must
// lie entirely within a single page: the device would wrap around inside
// the page otherwise, so boundary-crossing calls are rejected before any
// transport activity. The target range must have been erased first.
func (d *Device) WritePage(ctx context.Context, address uint32, data []byte) error {
	if len(data) == 0 {
		return ErrZeroLength
	}
	if err := checkRange(address, len(data)); err != nil {
		return err
	}
	pageOffset := int(address % pageSize)
	if len(data) > pageSize || pageOffset+len(data) > pageSize {
		return &PageBoundaryError{Address: address, Length: len(data)}
	}

	frame := protocol.PageProgramFrame(address, data)
	if err := d.commandCycle(ctx, "page program", frame, d.config.PageProgramTimeout); err != nil {
		return err
	}

	d.logDebug("page programmed",
		"address", fmt.Sprintf("0x%06X", address),
		"length", len(data),
	)
	return nil
}

// Write programs an arbitrary-length buffer starting at address, splitting
// it into consecutive page-aligned chunks. Each chunk is sized to the
// bytes remaining in its page, so a write starting mid-page first fills
// that page before advancing.
//
// The first failing page aborts the operation; pages already programmed
// are NOT rolled back, so a failed Write leaves a visible partial result.
// Callers needing atomicity must layer it above this driver.
func (d *Device) Write(ctx context.Context, address uint32, data []byte) error {
	if len(data) == 0 {
		return ErrZeroLength
	}
	if err := checkRange(address, len(data)); err != nil {
		return err
	}

	totalPages := countPages(address, len(data))
	startTime := d.config.Clock.Now()
	written := 0
	page := 0

	for offset := 0; offset < len(data); {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("write: cancelled: %w", err)
		}

		space := pageSize - int(address%pageSize)
		chunk := len(data) - offset
		if chunk > space {
			chunk = space
		}

		if err := d.WritePage(ctx, address, data[offset:offset+chunk]); err != nil {
			return fmt.Errorf("write page %d/%d at 0x%06X: %w", page+1, totalPages, address, err)
		}

		offset += chunk
		address += uint32(chunk)
		written += chunk
		page++

		d.reportProgress(Progress{
			Phase:        PhaseProgramming,
			CurrentPage:  page,
			TotalPages:   totalPages,
			Percentage:   float64(page) / float64(totalPages) * 100,
			BytesWritten: written,
			ElapsedTime:  d.elapsedSince(startTime),
		})
	}

	d.reportProgress(Progress{
		Phase:        PhaseComplete,
		CurrentPage:  page,
		TotalPages:   totalPages,
		Percentage:   100,
		BytesWritten: written,
		ElapsedTime:  d.elapsedSince(startTime),
	})

	d.logInfo("write complete",
		"pages", page,
		"bytes", written,
	)
	return nil
}

func (d *Device) elapsedSince(start time.Time) time.Duration {
	return d.config.Clock.Now().Sub(start)
}

// countPages returns how many page-program cycles a write of length bytes
// at address needs.
func countPages(address uint32, length int) int {
	pages := 0
	for length > 0 {
		space := pageSize - int(address%pageSize)
		if space > length {
			space = length
		}
		length -= space
		address += uint32(space)
		pages++
	}
	return pages
}
