package is25lp

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotInitialized is returned by operations that require a successful
// Init exchange first.
var ErrNotInitialized = errors.New("device not initialized")

// ErrZeroLength is returned when a read or write is requested with no data.
var ErrZeroLength = errors.New("length must be greater than zero")

// OutOfRangeError indicates an address range that does not fit the chip.
type OutOfRangeError struct {
	Address  uint32
	Length   int
	Capacity uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("address range 0x%06X+%d exceeds capacity %d bytes",
		e.Address, e.Length, e.Capacity)
}

// PageBoundaryError indicates a page program that would cross a page
// boundary. The device would silently wrap within the page; the driver
// rejects the call instead.
type PageBoundaryError struct {
	Address uint32
	Length  int
}

func (e *PageBoundaryError) Error() string {
	return fmt.Sprintf("page program of %d bytes at 0x%06X crosses a %d-byte page boundary",
		e.Length, e.Address, pageSize)
}

// TimeoutError indicates the busy flag did not clear within the
// operation's timeout budget.
type TimeoutError struct {
	Operation string
	Budget    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: device still busy after %s", e.Operation, e.Budget)
}

// IdentityMismatchError indicates the chip answered the JEDEC ID exchange
// with unexpected manufacturer or capacity codes.
type IdentityMismatchError struct {
	GotManufacturer  byte
	GotCapacity      byte
	WantManufacturer byte
	WantCapacity     byte
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("identity mismatch: got manufacturer 0x%02X capacity 0x%02X, want 0x%02X/0x%02X",
		e.GotManufacturer, e.GotCapacity, e.WantManufacturer, e.WantCapacity)
}
