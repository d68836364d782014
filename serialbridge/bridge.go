// Package serialbridge implements the is25lp Transport over a UART-attached
// SPI bridge adapter.
//
// The adapter is a small microcontroller dongle wired to the flash chip; the
// host drives it through a framed packet protocol on a serial port. Each
// Transport call maps to one or more adapter requests: select control is its
// own request, and long transfers are split across frames while chip select
// stays asserted, so the SPI exchange remains continuous on the wire.
package serialbridge

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
	"github.com/pkg/errors"
)

// Config holds the serial port settings for the adapter.
type Config struct {
	// Port is the serial device path, e.g. /dev/ttyUSB0
	Port string

	// BaudRate defaults to 115200
	BaudRate int

	// Timeout bounds each port read; defaults to 2 seconds
	Timeout time.Duration
}

// Bridge is a Transport backed by the serial adapter. It is not safe for
// concurrent use, matching the exclusivity the driver requires anyway.
type Bridge struct {
	port io.ReadWriteCloser
}

// BridgeError is an error status returned by the adapter firmware.
type BridgeError struct {
	// Operation is the request that failed
	Operation string

	// Status is the adapter status code
	Status byte
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, statusName(e.Status), e.Status)
}

// Open connects to the adapter on the configured serial port.
func Open(cfg Config) (*Bridge, error) {
	if cfg.Port == "" {
		return nil, errors.New("serialbridge: port required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 115200
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", cfg.Port)
	}

	return &Bridge{port: port}, nil
}

// NewBridge wraps an already-open byte stream. Used by tests and by callers
// with their own port handling.
func NewBridge(port io.ReadWriteCloser) *Bridge {
	return &Bridge{port: port}
}

// Close releases the serial port.
func (b *Bridge) Close() error {
	return b.port.Close()
}

// SetSelect drives the chip select line through the adapter.
func (b *Bridge) SetSelect(assert bool) error {
	payload := []byte{0x00}
	if assert {
		payload[0] = 0x01
	}

	_, err := b.roundTrip("set select", OpSetSelect, payload)
	return err
}

// Transfer performs a full-duplex exchange. Transfers longer than the
// adapter's frame buffer are split into consecutive OpTransfer requests;
// chip select is controlled separately, so the device sees one continuous
// exchange.
func (b *Bridge) Transfer(tx, rx []byte) error {
	if rx != nil && len(rx) < len(tx) {
		return errors.Errorf("rx buffer too short: %d < %d", len(rx), len(tx))
	}

	for offset := 0; offset < len(tx); offset += MaxPayloadSize {
		end := offset + MaxPayloadSize
		if end > len(tx) {
			end = len(tx)
		}

		payload, err := b.roundTrip("transfer", OpTransfer, tx[offset:end])
		if err != nil {
			return err
		}
		if len(payload) != end-offset {
			return errors.Errorf("transfer returned %d bytes, expected %d", len(payload), end-offset)
		}
		if rx != nil {
			copy(rx[offset:], payload)
		}
	}
	return nil
}

// roundTrip writes one request frame and reads the matching response.
func (b *Bridge) roundTrip(op string, opcode byte, payload []byte) ([]byte, error) {
	if _, err := b.port.Write(buildFrame(opcode, payload)); err != nil {
		return nil, errors.Wrapf(err, "%s: write request", op)
	}

	// Header first: SOP, status and the payload length.
	header := make([]byte, 4)
	if _, err := io.ReadFull(b.port, header); err != nil {
		return nil, errors.Wrapf(err, "%s: read response header", op)
	}
	dataLen := binary.LittleEndian.Uint16(header[2:4])
	if dataLen > MaxPayloadSize {
		return nil, errors.Errorf("%s: response payload %d exceeds frame buffer", op, dataLen)
	}

	rest := make([]byte, int(dataLen)+3)
	if _, err := io.ReadFull(b.port, rest); err != nil {
		return nil, errors.Wrapf(err, "%s: read response body", op)
	}

	status, data, err := parseFrame(append(header, rest...))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", op)
	}
	if status != StatusOK {
		return nil, &BridgeError{Operation: op, Status: status}
	}
	return data, nil
}
