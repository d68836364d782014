package is25lp

import (
	"context"
	"fmt"
	"time"

	"github.com/kevko/go-is25lp/protocol"
)

// Geometry shorthands used throughout the sequencer.
const (
	pageSize = protocol.PageSize
	chipSize = protocol.ChipSize
)

// selectSettle is the pause after forcing select idle during Init.
const selectSettle = 10 * time.Millisecond

// Device is a handle for one physical IS25LP040E chip. It owns no
// hardware itself: the transport capability is injected and borrowed for
// the duration of each call.
//
// A Device is not safe for concurrent use; operations fully complete,
// busy-wait included, before returning. Callers sharing one bus between
// several handles must serialize whole operations externally.
type Device struct {
	transport Transport
	config    Config

	identity    protocol.Identity
	uniqueID    [protocol.UniqueIDSize]byte
	initialized bool
}

// New creates a Device bound to the given transport.
//
// Example:
//
//	bridge, _ := serialbridge.Open(serialbridge.Config{Port: "/dev/ttyUSB0"})
//	dev := is25lp.New(bridge,
//	    is25lp.WithLogger(myLogger),
//	    is25lp.WithPollInterval(500*time.Microsecond),
//	)
func New(transport Transport, opts ...Option) *Device {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		transport: transport,
		config:    cfg,
	}
}

// Init validates the chip and marks the handle ready. It forces the select
// line idle, reads the JEDEC identity, checks the manufacturer and
// capacity codes, and caches the identity plus the factory unique ID.
//
// On identity mismatch the handle stays not-initialized.
func (d *Device) Init(ctx context.Context) error {
	if err := d.transport.SetSelect(false); err != nil {
		return fmt.Errorf("release select: %w", err)
	}
	d.config.Clock.Sleep(selectSettle)

	identity, err := d.ReadJEDECID(ctx)
	if err != nil {
		return fmt.Errorf("read JEDEC ID: %w", err)
	}

	if identity.Manufacturer != d.config.ExpectedManufacturer ||
		identity.Capacity != d.config.ExpectedCapacity {
		return &IdentityMismatchError{
			GotManufacturer:  identity.Manufacturer,
			GotCapacity:      identity.Capacity,
			WantManufacturer: d.config.ExpectedManufacturer,
			WantCapacity:     d.config.ExpectedCapacity,
		}
	}

	uid, err := d.ReadUniqueID(ctx)
	if err != nil {
		return fmt.Errorf("read unique ID: %w", err)
	}

	d.identity = identity
	d.uniqueID = uid
	d.initialized = true

	d.logInfo("flash initialized",
		"jedec_id", fmt.Sprintf("0x%06X", identity.JEDEC()),
		"unique_id", fmt.Sprintf("%X", uid),
	)

	return nil
}

// DeviceInfo holds the cached identity plus a fresh unique ID read.
type DeviceInfo struct {
	// Identity is the JEDEC identification cached at Init
	Identity protocol.Identity

	// UniqueID is the 64-bit factory-programmed identifier
	UniqueID [protocol.UniqueIDSize]byte
}

// DeviceInfo returns the identity cached at Init and re-reads the unique
// ID from the device. Requires a successful Init.
func (d *Device) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	if !d.initialized {
		return nil, ErrNotInitialized
	}

	uid, err := d.ReadUniqueID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read unique ID: %w", err)
	}
	d.uniqueID = uid

	return &DeviceInfo{
		Identity: d.identity,
		UniqueID: uid,
	}, nil
}

// ReadJEDECID reads the manufacturer, memory type and capacity codes.
func (d *Device) ReadJEDECID(ctx context.Context) (protocol.Identity, error) {
	tx := protocol.JEDECIDFrame()
	rx := make([]byte, len(tx))
	if err := d.exchange(tx, rx); err != nil {
		return protocol.Identity{}, err
	}
	return protocol.ParseIdentity(rx)
}

// ReadDeviceID reads the legacy manufacturer/device ID pair (0x90 command).
func (d *Device) ReadDeviceID(ctx context.Context) (protocol.DeviceID, error) {
	tx := protocol.DeviceIDFrame()
	rx := make([]byte, len(tx))
	if err := d.exchange(tx, rx); err != nil {
		return protocol.DeviceID{}, err
	}
	return protocol.ParseDeviceID(rx)
}

// ReadUniqueID reads the 64-bit factory-programmed unique identifier.
func (d *Device) ReadUniqueID(ctx context.Context) ([protocol.UniqueIDSize]byte, error) {
	tx := protocol.UniqueIDFrame()
	rx := make([]byte, len(tx))
	if err := d.exchange(tx, rx); err != nil {
		return [protocol.UniqueIDSize]byte{}, err
	}
	return protocol.ParseUniqueID(rx)
}

// ReadStatus reads and decodes the status register.
func (d *Device) ReadStatus(ctx context.Context) (protocol.Status, error) {
	return d.readStatus()
}

// WriteDisable clears the write enable latch.
func (d *Device) WriteDisable(ctx context.Context) error {
	return d.exchange(protocol.WriteDisableFrame(), nil)
}

// PowerDown puts the device into deep power-down mode. Only
// ReleasePowerDown is accepted until the device is released.
func (d *Device) PowerDown(ctx context.Context) error {
	return d.exchange(protocol.PowerDownFrame(), nil)
}

// ReleasePowerDown releases the device from deep power-down mode.
func (d *Device) ReleasePowerDown(ctx context.Context) error {
	return d.exchange(protocol.ReleasePowerDownFrame(), nil)
}

// exchange performs one select-framed full-duplex transfer. Select is
// deasserted on every exit path so the bus is never left held.
func (d *Device) exchange(tx, rx []byte) (err error) {
	if err = d.transport.SetSelect(true); err != nil {
		return fmt.Errorf("assert select: %w", err)
	}
	defer func() {
		if derr := d.transport.SetSelect(false); derr != nil && err == nil {
			err = fmt.Errorf("release select: %w", derr)
		}
	}()

	if err = d.transport.Transfer(tx, rx); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	return nil
}

// readStatus performs a status register exchange.
func (d *Device) readStatus() (protocol.Status, error) {
	tx := protocol.StatusFrame()
	rx := make([]byte, len(tx))
	if err := d.exchange(tx, rx); err != nil {
		return protocol.Status{}, err
	}
	return protocol.ParseStatus(rx)
}

// waitReady polls the status register until the busy bit clears or the
// budget elapses. The poll order matches the device expectation: check
// status first, then the deadline, then sleep one interval.
func (d *Device) waitReady(ctx context.Context, op string, budget time.Duration) error {
	start := d.config.Clock.Now()

	for {
		status, err := d.readStatus()
		if err != nil {
			return fmt.Errorf("%s: read status: %w", op, err)
		}
		if !status.Busy {
			return nil
		}

		if d.config.Clock.Now().Sub(start) > budget {
			return &TimeoutError{Operation: op, Budget: budget}
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: cancelled: %w", op, err)
		}

		d.config.Clock.Sleep(d.config.PollInterval)
	}
}

// commandCycle runs the write sequence state machine shared by program and
// erase commands: wait-ready, write-enable, issue, wait-complete. Any
// sub-step failure aborts immediately.
func (d *Device) commandCycle(ctx context.Context, op string, frame []byte, budget time.Duration) error {
	if err := d.waitReady(ctx, op, d.config.ReadyTimeout); err != nil {
		return err
	}

	if err := d.exchange(protocol.WriteEnableFrame(), nil); err != nil {
		return fmt.Errorf("%s: write enable: %w", op, err)
	}

	if err := d.exchange(frame, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return d.waitReady(ctx, op, budget)
}

// checkRange validates that [address, address+length) lies inside the chip.
func checkRange(address uint32, length int) error {
	if uint64(address)+uint64(length) > chipSize {
		return &OutOfRangeError{
			Address:  address,
			Length:   length,
			Capacity: chipSize,
		}
	}
	return nil
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(progress Progress) {
	if d.config.ProgressCallback != nil {
		d.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}
