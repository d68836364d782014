package serialbridge

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Bridge link framing. The adapter firmware speaks a packet protocol over
// the UART; SPI bytes ride inside it.
//
//	Request:  [SOP][OP][LEN_L][LEN_H][PAYLOAD...][CHECKSUM_L][CHECKSUM_H][EOP]
//	Response: [SOP][STATUS][LEN_L][LEN_H][PAYLOAD...][CHECKSUM_L][CHECKSUM_H][EOP]
const (
	// StartOfPacket is the frame start marker
	StartOfPacket = 0x01

	// EndOfPacket is the frame end marker
	EndOfPacket = 0x17

	// MinFrameSize is SOP(1) + OP/STATUS(1) + LEN(2) + CHECKSUM(2) + EOP(1)
	MinFrameSize = 7

	// MaxPayloadSize is the largest payload the adapter buffers per frame
	MaxPayloadSize = 4096
)

// Adapter operation codes.
const (
	// OpSetSelect drives the chip select line; payload is one byte, 0x01
	// asserts and 0x00 releases
	OpSetSelect = 0x10

	// OpTransfer clocks the payload out over SPI and returns the bytes
	// clocked in
	OpTransfer = 0x11
)

// Adapter status codes.
const (
	// StatusOK means the request was executed
	StatusOK = 0x00

	// StatusErrOp means the operation code was not recognized
	StatusErrOp = 0x01

	// StatusErrLength means the payload length was out of range
	StatusErrLength = 0x02

	// StatusErrChecksum means the request checksum did not match
	StatusErrChecksum = 0x08
)

// frameChecksum computes the 16-bit 2's complement of the byte sum over
// everything between SOP and the checksum field.
func frameChecksum(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return 1 + (0xFFFF ^ sum)
}

// buildFrame constructs a request frame for the given operation.
func buildFrame(op byte, payload []byte) []byte {
	frame := make([]byte, 0, MinFrameSize+len(payload))
	frame = append(frame, StartOfPacket, op)

	lenBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(lenBytes, uint16(len(payload)))
	frame = append(frame, lenBytes...)

	frame = append(frame, payload...)

	checksumBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(checksumBytes, frameChecksum(frame[1:]))
	frame = append(frame, checksumBytes...)

	return append(frame, EndOfPacket)
}

// parseFrame validates a response frame and returns its status and payload.
func parseFrame(frame []byte) (status byte, payload []byte, err error) {
	if len(frame) < MinFrameSize {
		return 0, nil, errors.Errorf("frame too short: got %d bytes, minimum is %d", len(frame), MinFrameSize)
	}
	if frame[0] != StartOfPacket {
		return 0, nil, errors.Errorf("invalid start of packet: got 0x%02X, expected 0x%02X", frame[0], StartOfPacket)
	}
	if frame[len(frame)-1] != EndOfPacket {
		return 0, nil, errors.Errorf("invalid end of packet: got 0x%02X, expected 0x%02X", frame[len(frame)-1], EndOfPacket)
	}

	status = frame[1]
	dataLen := binary.LittleEndian.Uint16(frame[2:4])
	if len(frame) != int(MinFrameSize+dataLen) {
		return 0, nil, errors.Errorf("frame length mismatch: got %d bytes, expected %d", len(frame), MinFrameSize+dataLen)
	}

	want := binary.LittleEndian.Uint16(frame[len(frame)-3 : len(frame)-1])
	got := frameChecksum(frame[1 : len(frame)-3])
	if want != got {
		return 0, nil, errors.Errorf("checksum mismatch: got 0x%04X, expected 0x%04X", got, want)
	}

	if dataLen > 0 {
		payload = frame[4 : 4+dataLen]
	}
	return status, payload, nil
}

// statusName returns a human-readable name for an adapter status code.
func statusName(code byte) string {
	switch code {
	case StatusOK:
		return "ok"
	case StatusErrOp:
		return "unrecognized operation"
	case StatusErrLength:
		return "invalid length"
	case StatusErrChecksum:
		return "checksum mismatch"
	default:
		return "unknown status"
	}
}
