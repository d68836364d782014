package serialbridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// fakePort is a scripted io.ReadWriteCloser standing in for the adapter.
type fakePort struct {
	writes    [][]byte
	responses *bytes.Buffer
	writeErr  error
	closed    bool
}

func newFakePort() *fakePort {
	return &fakePort{responses: new(bytes.Buffer)}
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.writes = append(p.writes, append([]byte(nil), b...))
	return len(b), nil
}

func (p *fakePort) Read(b []byte) (int, error) {
	return p.responses.Read(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

// queueResponse appends a well-formed response frame to the port script.
func (p *fakePort) queueResponse(status byte, payload []byte) {
	frame := make([]byte, 0, MinFrameSize+len(payload))
	frame = append(frame, StartOfPacket, status)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, uint16(len(payload)))
	frame = append(frame, lenBytes...)
	frame = append(frame, payload...)

	checksumBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksumBytes, frameChecksum(frame[1:]))
	frame = append(frame, checksumBytes...)
	frame = append(frame, EndOfPacket)

	p.responses.Write(frame)
}

func TestSetSelectFrames(t *testing.T) {
	port := newFakePort()
	port.queueResponse(StatusOK, nil)
	port.queueResponse(StatusOK, nil)
	bridge := NewBridge(port)

	if err := bridge.SetSelect(true); err != nil {
		t.Fatalf("SetSelect(true): %v", err)
	}
	if err := bridge.SetSelect(false); err != nil {
		t.Fatalf("SetSelect(false): %v", err)
	}

	if len(port.writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(port.writes))
	}
	assertFrame := port.writes[0]
	if assertFrame[1] != OpSetSelect || assertFrame[4] != 0x01 {
		t.Errorf("assert frame = % X", assertFrame)
	}
	releaseFrame := port.writes[1]
	if releaseFrame[1] != OpSetSelect || releaseFrame[4] != 0x00 {
		t.Errorf("release frame = % X", releaseFrame)
	}
}

func TestTransferRoundTrip(t *testing.T) {
	port := newFakePort()
	echo := []byte{0x00, 0x9D, 0x60, 0x13}
	port.queueResponse(StatusOK, echo)
	bridge := NewBridge(port)

	tx := []byte{0x9F, 0xFF, 0xFF, 0xFF}
	rx := make([]byte, len(tx))
	if err := bridge.Transfer(tx, rx); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if !bytes.Equal(rx, echo) {
		t.Errorf("rx = % X, want % X", rx, echo)
	}

	// The request carries the tx bytes inside an OpTransfer frame.
	req := port.writes[0]
	if req[1] != OpTransfer {
		t.Errorf("op = 0x%02X, want 0x%02X", req[1], OpTransfer)
	}
	if !bytes.Equal(req[4:4+len(tx)], tx) {
		t.Errorf("request payload = % X, want % X", req[4:4+len(tx)], tx)
	}
}

func TestTransferNilRx(t *testing.T) {
	port := newFakePort()
	port.queueResponse(StatusOK, []byte{0xFF})
	bridge := NewBridge(port)

	if err := bridge.Transfer([]byte{0x06}, nil); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
}

func TestTransferSplitsLargePayload(t *testing.T) {
	port := newFakePort()
	tx := make([]byte, MaxPayloadSize+100)
	port.queueResponse(StatusOK, make([]byte, MaxPayloadSize))
	port.queueResponse(StatusOK, make([]byte, 100))
	bridge := NewBridge(port)

	if err := bridge.Transfer(tx, make([]byte, len(tx))); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if len(port.writes) != 2 {
		t.Fatalf("got %d request frames, want 2", len(port.writes))
	}
}

func TestTransferShortRx(t *testing.T) {
	bridge := NewBridge(newFakePort())
	if err := bridge.Transfer(make([]byte, 4), make([]byte, 2)); err == nil {
		t.Fatal("expected error for short rx buffer")
	}
}

func TestBridgeErrorStatus(t *testing.T) {
	port := newFakePort()
	port.queueResponse(StatusErrChecksum, nil)
	bridge := NewBridge(port)

	err := bridge.SetSelect(true)
	var bridgeErr *BridgeError
	if !errors.As(err, &bridgeErr) {
		t.Fatalf("error = %v, want BridgeError", err)
	}
	if bridgeErr.Status != StatusErrChecksum {
		t.Errorf("status = 0x%02X, want 0x%02X", bridgeErr.Status, StatusErrChecksum)
	}
}

func TestCorruptResponseChecksum(t *testing.T) {
	port := newFakePort()
	port.queueResponse(StatusOK, []byte{0x01})
	// Flip a payload byte after the checksum was computed.
	port.responses.Bytes()[4] ^= 0xFF
	bridge := NewBridge(port)

	err := bridge.Transfer([]byte{0x05}, make([]byte, 1))
	if err == nil {
		t.Fatal("expected checksum error")
	}
}

func TestWriteError(t *testing.T) {
	port := newFakePort()
	port.writeErr = errors.New("port gone")
	bridge := NewBridge(port)

	if err := bridge.SetSelect(true); err == nil {
		t.Fatal("expected error")
	}
}

func TestFrameChecksumRoundTrip(t *testing.T) {
	frame := buildFrame(OpTransfer, []byte{0xDE, 0xAD})
	status, payload, err := parseFrame(frame)
	if err != nil {
		t.Fatalf("parseFrame: %v", err)
	}
	if status != OpTransfer {
		t.Errorf("status byte = 0x%02X, want 0x%02X", status, OpTransfer)
	}
	if !bytes.Equal(payload, []byte{0xDE, 0xAD}) {
		t.Errorf("payload = % X", payload)
	}
}
