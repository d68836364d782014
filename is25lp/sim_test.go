package is25lp

import (
	"errors"
	"fmt"
	"time"

	"github.com/kevko/go-is25lp/protocol"
)

// fakeClock advances only when the driver sleeps, making busy-wait and
// timeout behavior deterministic.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// simFlash simulates an IS25LP040E behind the Transport interface: a
// memory array with NOR semantics (erase to 0xFF, program clears bits,
// wrap within page), a write enable latch and a busy counter that holds
// the WIP bit set for a configurable number of status polls.
type simFlash struct {
	mem      []byte
	identity [3]byte
	deviceID byte
	uniqueID [8]byte

	selected     bool
	writeEnabled bool

	// busyPolls is how many further status reads report WIP set
	busyPolls int

	// programBusyPolls / eraseBusyPolls seed busyPolls after each command
	programBusyPolls int
	eraseBusyPolls   int

	// neverReady pins the WIP bit for timeout tests
	neverReady bool

	// failAfterPrograms, when > 0, fails the Nth page program transfer
	failAfterPrograms int
	programs          int

	transferErr error
	selectErr   error

	// frames records a copy of every tx buffer observed
	frames    [][]byte
	transfers int
}

func newSimFlash() *simFlash {
	s := &simFlash{
		mem:              make([]byte, protocol.ChipSize),
		identity:         [3]byte{protocol.ManufacturerID, protocol.MemoryType, protocol.CapacityID},
		deviceID:         0x12,
		uniqueID:         [8]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04},
		programBusyPolls: 2,
		eraseBusyPolls:   3,
	}
	for i := range s.mem {
		s.mem[i] = 0xFF
	}
	return s
}

func (s *simFlash) SetSelect(assert bool) error {
	if s.selectErr != nil {
		return s.selectErr
	}
	s.selected = assert
	return nil
}

func (s *simFlash) Transfer(tx, rx []byte) error {
	s.transfers++
	s.frames = append(s.frames, append([]byte(nil), tx...))

	if s.transferErr != nil {
		return s.transferErr
	}
	if !s.selected {
		return errors.New("sim: transfer without select asserted")
	}
	if rx != nil && len(rx) < len(tx) {
		return errors.New("sim: rx shorter than tx")
	}

	switch tx[0] {
	case protocol.CmdReadJEDECID:
		if rx != nil && len(rx) >= 4 {
			rx[1], rx[2], rx[3] = s.identity[0], s.identity[1], s.identity[2]
		}

	case protocol.CmdReadDeviceID:
		if rx != nil && len(rx) >= 6 {
			rx[4] = s.identity[0]
			rx[5] = s.deviceID
		}

	case protocol.CmdReadUniqueID:
		if rx != nil && len(rx) >= 13 {
			copy(rx[5:13], s.uniqueID[:])
		}

	case protocol.CmdReadStatus:
		var status byte
		if s.neverReady || s.busyPolls > 0 {
			status |= protocol.StatusBusy
			if s.busyPolls > 0 {
				s.busyPolls--
			}
		}
		if s.writeEnabled {
			status |= protocol.StatusWEL
		}
		if rx != nil && len(rx) >= 2 {
			rx[1] = status
		}

	case protocol.CmdWriteEnable:
		s.writeEnabled = true

	case protocol.CmdWriteDisable:
		s.writeEnabled = false

	case protocol.CmdReadData:
		addr := decodeAddr(tx)
		if rx != nil {
			copy(rx[4:], s.mem[addr:])
		}

	case protocol.CmdFastRead:
		addr := decodeAddr(tx)
		if rx != nil {
			copy(rx[5:], s.mem[addr:])
		}

	case protocol.CmdPageProgram:
		s.programs++
		if s.failAfterPrograms > 0 && s.programs >= s.failAfterPrograms {
			return fmt.Errorf("sim: program fault on page program %d", s.programs)
		}
		if !s.writeEnabled {
			return errors.New("sim: page program without write enable")
		}
		addr := decodeAddr(tx)
		pageBase := addr / protocol.PageSize * protocol.PageSize
		offset := addr - pageBase
		for i, b := range tx[4:] {
			// Hardware wraps within the page; bits only clear.
			target := pageBase + (offset+uint32(i))%protocol.PageSize
			s.mem[target] &= b
		}
		s.writeEnabled = false
		s.busyPolls = s.programBusyPolls

	case protocol.CmdSectorErase:
		return s.erase(decodeAddr(tx), protocol.SectorSize)

	case protocol.CmdBlockErase32K:
		return s.erase(decodeAddr(tx), protocol.Block32KSize)

	case protocol.CmdBlockErase64K:
		return s.erase(decodeAddr(tx), protocol.Block64KSize)

	case protocol.CmdChipErase:
		return s.erase(0, protocol.ChipSize)

	case protocol.CmdDeepPowerDown, protocol.CmdReleasePowerDown:
		// no observable effect in the simulation

	default:
		return fmt.Errorf("sim: unknown opcode 0x%02X", tx[0])
	}

	return nil
}

func (s *simFlash) erase(addr, granularity uint32) error {
	if !s.writeEnabled {
		return errors.New("sim: erase without write enable")
	}
	base := addr / granularity * granularity
	for i := base; i < base+granularity; i++ {
		s.mem[i] = 0xFF
	}
	s.writeEnabled = false
	s.busyPolls = s.eraseBusyPolls
	return nil
}

func decodeAddr(tx []byte) uint32 {
	return uint32(tx[1])<<16 | uint32(tx[2])<<8 | uint32(tx[3])
}

// programFrames returns the recorded page program frames.
func (s *simFlash) programFrames() [][]byte {
	var out [][]byte
	for _, f := range s.frames {
		if f[0] == protocol.CmdPageProgram {
			out = append(out, f)
		}
	}
	return out
}

// eraseFrames returns the recorded erase command frames for the opcode.
func (s *simFlash) eraseFrames(opcode byte) [][]byte {
	var out [][]byte
	for _, f := range s.frames {
		if f[0] == opcode {
			out = append(out, f)
		}
	}
	return out
}

// newTestDevice wires a simulated flash to a Device with a fake clock.
func newTestDevice(sim *simFlash, opts ...Option) (*Device, *fakeClock) {
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock)}, opts...)
	return New(sim, opts...), clock
}
