package protocol

import "math"

// Legacy detection handshake.
const (
	// LegacyResponse is the reply sent by targets running a legacy Spade version
	LegacyResponse = "found startup seq!"

	// LegacyResponseBufferSize is the size of the single read used by the probe (18 bytes)
	LegacyResponseBufferSize = 18
)

// LegacyStartupSequence is the 5-byte probe request. Upload frames never begin
// with these bytes.
var LegacyStartupSequence = [5]byte{0x00, 0x01, 0x02, 0x03, 0x04}

// Upload frame structure constants.
const (
	// UploadCommand is the command token that starts an upload frame
	UploadCommand = "UPLOAD"

	// MaxNameLength is the width of the zero-padded name field in bytes
	MaxNameLength = 100

	// LengthFieldSize is the size of the little-endian payload length field
	LengthFieldSize = 4

	// MaxPayloadLength is the largest payload the length field can describe
	MaxPayloadLength = math.MaxUint32

	// UploadHeaderSize is the frame size without payload:
	// CMD(6) + NAME(100) + LEN(4)
	UploadHeaderSize = len(UploadCommand) + MaxNameLength + LengthFieldSize
)

// Reply tokens sent by the target once an upload has been processed.
const (
	// TokenAllGood means the program was stored
	TokenAllGood = "ALL_GOOD"

	// TokenOutOfFlash means the program does not fit in the remaining flash
	TokenOutOfFlash = "OO_FLASH"

	// TokenOutOfMetadata means the target already holds its maximum number of programs
	TokenOutOfMetadata = "OO_METADATA"
)

// ResponseWindowSize is the size of the sliding window used to scan the
// reply stream. It must be at least the length of the longest token.
const ResponseWindowSize = len(TokenOutOfMetadata)
