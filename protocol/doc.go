// Package protocol implements the Spade serial upload protocol.
//
// This package provides functions to build command frames, classify the
// target's replies, and run the two one-shot operations of the protocol over
// any io.ReadWriter.
//
// # Protocol Overview
//
// The host sends byte-level commands; the target answers with fixed text tokens:
//
//	Legacy probe:   [00 01 02 03 04]
//	Probe reply:    "found startup seq!" (legacy targets only)
//	Upload:         ["UPLOAD"][NAME(100, zero-padded)][LEN(4, little-endian)][PAYLOAD...]
//	Upload reply:   "ALL_GOOD" | "OO_FLASH" | "OO_METADATA"
//
// Upload replies may arrive in arbitrarily small reads and may be preceded by
// unrelated output. The reply is scanned through an 11-byte sliding window,
// one byte per read, until a token is contained in the window.
//
// # Operations
//
// Run the probe first and upload only to current targets:
//
//	legacy, err := protocol.IsRunningLegacy(port)
//	if err != nil || legacy {
//	    return
//	}
//	result, err := protocol.UploadGame(port, []byte("game1"), source)
//
// # Builders and Classifiers
//
// The I/O-free parts are exported for testing and for simulated targets:
//
//	frame, err := protocol.BuildUploadFrame(name, source)
//	result, ok := protocol.Classify(window)
//	legacy, err := protocol.ParseLegacyResponse(buf)
//
// # Error Handling
//
// UploadGame returns *UploadError values. Use errors.Is with the sentinel
// errors to classify them:
//
//	if errors.Is(err, protocol.ErrNoRecognizedResponse) {
//	    // target closed the stream or timed out without a verdict
//	}
//
// This package is not safe for concurrent use on the same transport.
// Timeouts belong to the transport.
package protocol
