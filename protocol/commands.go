package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// BuildLegacyProbeCmd returns the legacy startup sequence.
//
// Frame structure:
//
//	[0x00][0x01][0x02][0x03][0x04]
func BuildLegacyProbeCmd() []byte {
	cmd := make([]byte, len(LegacyStartupSequence))
	copy(cmd, LegacyStartupSequence[:])
	return cmd
}

// EncodeName returns the fixed-width name field: the name bytes followed by
// zero padding up to MaxNameLength.
func EncodeName(name []byte) ([MaxNameLength]byte, error) {
	var field [MaxNameLength]byte
	if len(name) > MaxNameLength {
		return field, newUploadError(KindInvalidName,
			fmt.Sprintf("name is %d bytes, maximum is %d", len(name), MaxNameLength), nil)
	}
	copy(field[:], name)
	return field, nil
}

// EncodeLength returns n as a little-endian uint32.
func EncodeLength(n int) ([LengthFieldSize]byte, error) {
	var field [LengthFieldSize]byte
	if n < 0 || uint64(n) > MaxPayloadLength {
		return field, newUploadError(KindConversionFailure,
			fmt.Sprintf("payload length %d does not fit in %d bytes", n, LengthFieldSize), nil)
	}
	binary.LittleEndian.PutUint32(field[:], uint32(n))
	return field, nil
}

// UploadFrame is a fully encoded UPLOAD command, kept as the four parts that
// are written to the transport one after another.
type UploadFrame struct {
	// Command is the literal "UPLOAD" token
	Command []byte

	// Name is the zero-padded name field (MaxNameLength bytes)
	Name []byte

	// Length is the little-endian payload length (LengthFieldSize bytes)
	Length []byte

	// Payload is the program source, verbatim
	Payload []byte
}

// BuildUploadFrame constructs an UPLOAD command frame.
// The payload slice is referenced, not copied.
//
// Frame structure:
//
//	["UPLOAD"(6)][NAME(100, zero-padded)][LEN(4, little-endian)][PAYLOAD...]
//
// Returns an *UploadError of kind KindInvalidName or KindConversionFailure if
// validation fails. Validation order is name first, then payload length.
func BuildUploadFrame(name, payload []byte) (*UploadFrame, error) {
	nameField, err := EncodeName(name)
	if err != nil {
		return nil, err
	}

	lenField, err := EncodeLength(len(payload))
	if err != nil {
		return nil, err
	}

	return &UploadFrame{
		Command: []byte(UploadCommand),
		Name:    nameField[:],
		Length:  lenField[:],
		Payload: payload,
	}, nil
}

// Parts returns the frame parts in wire order.
func (f *UploadFrame) Parts() [][]byte {
	return [][]byte{f.Command, f.Name, f.Length, f.Payload}
}

// Len returns the total number of bytes in the frame.
func (f *UploadFrame) Len() int {
	return len(f.Command) + len(f.Name) + len(f.Length) + len(f.Payload)
}

// Bytes returns the frame as one contiguous slice.
func (f *UploadFrame) Bytes() []byte {
	return bytes.Join(f.Parts(), nil)
}
