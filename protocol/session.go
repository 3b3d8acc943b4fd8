package protocol

import (
	"errors"
	"fmt"
	"io"
)

// IsRunningLegacy checks whether the target runs a legacy Spade version.
//
// It writes LegacyStartupSequence, performs exactly one read into a
// LegacyResponseBufferSize buffer and compares the buffer with LegacyResponse.
// The read is not retried or looped, so a short read yields false. An io.EOF
// from the read counts as an empty reply, not as an error.
//
// Transport errors are returned wrapped; errors.Is matches the underlying error.
// A reply that is not valid UTF-8 yields a *ResponseError.
func IsRunningLegacy(rw io.ReadWriter) (bool, error) {
	if err := writeFull(rw, BuildLegacyProbeCmd()); err != nil {
		return false, fmt.Errorf("write startup sequence: %w", err)
	}

	buf := make([]byte, LegacyResponseBufferSize)
	if _, err := rw.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read startup response: %w", err)
	}

	return ParseLegacyResponse(buf)
}

// UploadGame sends a program to the target with the UPLOAD command and waits
// for the target's verdict.
//
// Name and payload length are validated before anything is written. The frame
// is then written as four separate writes (command, name field, length,
// payload). The reply is scanned one byte at a time through a
// ResponseWindowSize sliding window until a token is contained in it.
//
// Errors are always *UploadError:
//   - KindInvalidName: name longer than MaxNameLength, nothing written
//   - KindConversionFailure: payload longer than MaxPayloadLength, nothing written
//   - KindTransportFailure: a write or read failed
//   - KindNoRecognizedResponse: a read returned no data before any token matched
func UploadGame(rw io.ReadWriter, name, payload []byte) (UploadResult, error) {
	frame, err := BuildUploadFrame(name, payload)
	if err != nil {
		return 0, err
	}

	if err := SendUploadFrame(rw, frame); err != nil {
		return 0, err
	}

	return ReadUploadResult(rw)
}

// SendUploadFrame writes the frame parts in order, one write per part.
func SendUploadFrame(w io.Writer, frame *UploadFrame) error {
	for i, part := range frame.Parts() {
		if err := writeFull(w, part); err != nil {
			return newUploadError(KindTransportFailure, fmt.Sprintf("write %s", partNames[i]), err)
		}
	}
	return nil
}

// ReadUploadResult scans the reply stream for a token.
//
// Each iteration shifts the window left by one byte and reads into the freed
// tail slot. A read of zero bytes, or io.EOF, ends the scan with
// KindNoRecognizedResponse. Windows that are not valid UTF-8 are treated as
// "no match yet".
func ReadUploadResult(r io.Reader) (UploadResult, error) {
	var window ResponseWindow
	for {
		window.Shift()

		n, err := r.Read(window.Tail())
		if n > 0 {
			if result, ok := Classify(window.Bytes()); ok {
				return result, nil
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return 0, newUploadError(KindNoRecognizedResponse, "stream closed", nil)
		case err != nil:
			return 0, newUploadError(KindTransportFailure, "read response", err)
		case n == 0:
			return 0, newUploadError(KindNoRecognizedResponse, "", nil)
		}
	}
}

var partNames = [...]string{"command", "name", "length", "payload"}

// writeFull performs a single write and reports a short write as io.ErrShortWrite.
func writeFull(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}
