package is25lp

import "time"

// Transport is the serial-bus capability the driver is built on. It is
// provided by the caller: a memory-mapped SPI peripheral, a USB or UART
// bridge adapter, or a simulated device for tests.
//
// The driver asserts select before the first byte of a command frame and
// deasserts it after the last byte of the frame's response, including on
// error paths. A transport shared between multiple devices requires
// external locking around whole operations; the driver itself never
// interleaves transfers.
type Transport interface {
	// Transfer performs one full-duplex exchange: every byte of tx is
	// clocked out while the same number of bytes is clocked in. rx may be
	// nil, in which case received bytes are discarded; otherwise it must
	// be at least len(tx) bytes. Implementations should bound their own
	// I/O time: the driver's timeouts are cooperative, not preemptive.
	Transfer(tx, rx []byte) error

	// SetSelect drives the chip select line. true asserts (active low on
	// the wire), false returns the line to idle.
	SetSelect(assert bool) error
}

// Clock is the timing capability used for busy-wait polling. The default
// implementation uses the time package; tests substitute a fake to make
// timeout behavior deterministic.
type Clock interface {
	// Now returns the current monotonic-ish time
	Now() time.Time

	// Sleep blocks for the given duration
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
