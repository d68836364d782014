package is25lp

import (
	"time"

	"github.com/kevko/go-is25lp/protocol"
)

// Config holds the driver configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// ProgressCallback is called during multi-page writes (optional)
	ProgressCallback ProgressCallback

	// Clock supplies time for busy-wait polling
	Clock Clock

	// PollInterval is the sleep between status polls
	PollInterval time.Duration

	// ReadyTimeout bounds the wait for the device to go idle before a
	// command is issued
	ReadyTimeout time.Duration

	// PageProgramTimeout bounds a page program cycle (~3 ms typical)
	PageProgramTimeout time.Duration

	// SectorEraseTimeout bounds a 4 KB sector erase (~100 ms typical)
	SectorEraseTimeout time.Duration

	// Block32KEraseTimeout bounds a 32 KB block erase
	Block32KEraseTimeout time.Duration

	// Block64KEraseTimeout bounds a 64 KB block erase
	Block64KEraseTimeout time.Duration

	// ChipEraseTimeout bounds a full chip erase (~3 s typical)
	ChipEraseTimeout time.Duration

	// ExpectedManufacturer is matched against the JEDEC manufacturer code
	// during Init
	ExpectedManufacturer byte

	// ExpectedCapacity is matched against the JEDEC capacity code during
	// Init
	ExpectedCapacity byte
}

// defaultConfig returns the default configuration. Timeout budgets follow
// the IS25LP040E datasheet with headroom.
func defaultConfig() Config {
	return Config{
		Clock:                realClock{},
		PollInterval:         time.Millisecond,
		ReadyTimeout:         100 * time.Millisecond,
		PageProgramTimeout:   10 * time.Millisecond,
		SectorEraseTimeout:   200 * time.Millisecond,
		Block32KEraseTimeout: 500 * time.Millisecond,
		Block64KEraseTimeout: 1000 * time.Millisecond,
		ChipEraseTimeout:     10 * time.Second,
		ExpectedManufacturer: protocol.ManufacturerID,
		ExpectedCapacity:     protocol.CapacityID,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithLogger sets a logger for driver operations.
//
// Example:
//
//	dev := is25lp.New(transport, is25lp.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgressCallback sets a callback to track multi-page write progress.
//
// Example:
//
//	dev := is25lp.New(transport,
//	    is25lp.WithProgressCallback(func(p is25lp.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithClock substitutes the timing source used for busy-wait polling.
// Mainly useful for tests.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		if clock != nil {
			c.Clock = clock
		}
	}
}

// WithPollInterval sets the sleep between status register polls.
// Default is 1 millisecond.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.PollInterval = interval
		}
	}
}

// WithReadyTimeout sets the bound on the pre-command ready wait.
func WithReadyTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadyTimeout = timeout
		}
	}
}

// WithPageProgramTimeout sets the page program completion budget.
func WithPageProgramTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.PageProgramTimeout = timeout
		}
	}
}

// WithEraseTimeouts sets the completion budgets for the four erase
// granularities. Zero values keep the corresponding default.
func WithEraseTimeouts(sector, block32, block64, chip time.Duration) Option {
	return func(c *Config) {
		if sector > 0 {
			c.SectorEraseTimeout = sector
		}
		if block32 > 0 {
			c.Block32KEraseTimeout = block32
		}
		if block64 > 0 {
			c.Block64KEraseTimeout = block64
		}
		if chip > 0 {
			c.ChipEraseTimeout = chip
		}
	}
}

// WithExpectedIdentity overrides the manufacturer and capacity codes that
// Init validates against. Useful for pin-compatible parts.
func WithExpectedIdentity(manufacturer, capacity byte) Option {
	return func(c *Config) {
		c.ExpectedManufacturer = manufacturer
		c.ExpectedCapacity = capacity
	}
}
