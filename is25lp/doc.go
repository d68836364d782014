// Package is25lp provides a driver for the ISSI IS25LP040E 4 Mbit SPI NOR
// flash memory.
//
// # Overview
//
// The driver translates high-level operations into the chip's byte-level
// command protocol and enforces the hardware constraints that come with
// NOR flash:
//   - Page-aligned programming (256-byte pages, no boundary crossing)
//   - Erase-before-write at sector (4 KB), block (32/64 KB) or chip scope
//   - Busy polling with per-operation timeout budgets
//   - Identity validation against the expected JEDEC codes
//
// # Basic Usage
//
//	// User provides the bus capability (SPI peripheral, bridge adapter, ...)
//	bridge, err := serialbridge.Open(serialbridge.Config{Port: "/dev/ttyUSB0"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bridge.Close()
//
//	dev := is25lp.New(bridge)
//	if err := dev.Init(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := dev.EraseSector(ctx, 0x1000); err != nil {
//	    log.Fatal(err)
//	}
//	if err := dev.Write(ctx, 0x1000, payload); err != nil {
//	    log.Fatal(err)
//	}
//	data, err := dev.Read(ctx, 0x1000, len(payload))
//
// # Progress Tracking
//
// Multi-page writes report per-page progress through a callback:
//
//	dev := is25lp.New(bridge,
//	    is25lp.WithProgressCallback(func(p is25lp.Progress) {
//	        fmt.Printf("[%s] %.1f%% - page %d/%d\n",
//	            p.Phase, p.Percentage, p.CurrentPage, p.TotalPages)
//	    }),
//	)
//
// # Error Handling
//
// The driver aborts on the first failing sub-step and returns structured
// error types:
//   - OutOfRangeError: address range exceeds chip capacity
//   - PageBoundaryError: page program would cross a page boundary
//   - TimeoutError: busy flag did not clear within the operation budget
//   - IdentityMismatchError: unexpected JEDEC codes at Init
//   - ErrNotInitialized, ErrZeroLength: argument/state sentinels
//
// Partial side effects are possible: a multi-page Write that fails on page
// three leaves pages one and two programmed. Verify-after-write or an
// erase/write transaction log above this layer is the caller's job.
//
// # Hardware Independence
//
// The driver does NOT implement bus communication. Callers provide a
// Transport (full-duplex Transfer plus chip select control); any SPI
// peripheral, USB/UART bridge or test double works. Timing is likewise
// injected through the Clock interface so busy-wait behavior is
// deterministic under test.
package is25lp
