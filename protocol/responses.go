package protocol

import (
	"strings"
	"unicode/utf8"
)

// ParseLegacyResponse interprets the buffer filled by the probe read.
// The whole buffer is decoded, including any zero bytes a short read left
// behind, and compared exactly against LegacyResponse.
//
// Returns a *ResponseError wrapping ErrInvalidText if the buffer is not valid
// UTF-8. A valid but different reply is not an error.
func ParseLegacyResponse(buf []byte) (bool, error) {
	text, ok := decodeText(buf)
	if !ok {
		return false, &ResponseError{Operation: "legacy probe", Err: ErrInvalidText}
	}
	return text == LegacyResponse, nil
}

// Classify reports which reply token, if any, is contained in window.
// Tokens are tested in precedence order: ALL_GOOD, OO_FLASH, OO_METADATA.
// A window that is not valid UTF-8 never matches.
func Classify(window []byte) (UploadResult, bool) {
	text, ok := decodeText(window)
	if !ok {
		return 0, false
	}

	for _, rt := range resultTokens {
		if strings.Contains(text, rt.token) {
			return rt.result, true
		}
	}
	return 0, false
}

func decodeText(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}
