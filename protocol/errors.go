package protocol

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per UploadErrorKind, plus the probe decode failure.
// Use errors.Is to classify an error returned by this package.
var (
	// ErrInvalidName indicates the program name exceeds MaxNameLength bytes.
	ErrInvalidName = errors.New("invalid name")

	// ErrConversionFailure indicates a value could not be converted for the wire.
	ErrConversionFailure = errors.New("conversion failure")

	// ErrTransportFailure indicates a read or write on the transport failed.
	ErrTransportFailure = errors.New("transport failure")

	// ErrNoRecognizedResponse indicates the reply stream ended without a known token.
	ErrNoRecognizedResponse = errors.New("no recognized response")

	// ErrInvalidText indicates a response buffer was not valid UTF-8.
	ErrInvalidText = errors.New("response is not valid text")
)

// UploadErrorKind categorizes upload failures.
type UploadErrorKind int

const (
	// KindInvalidName is returned before any I/O when the name is too long.
	KindInvalidName UploadErrorKind = iota
	// KindConversionFailure is returned when the payload length does not fit in 32 bits.
	KindConversionFailure
	// KindTransportFailure wraps any write or read error from the transport.
	KindTransportFailure
	// KindNoRecognizedResponse is returned when a read yields zero bytes before a token matched.
	KindNoRecognizedResponse
)

func (k UploadErrorKind) String() string {
	switch k {
	case KindInvalidName:
		return "invalid name"
	case KindConversionFailure:
		return "conversion failure"
	case KindTransportFailure:
		return "transport failure"
	case KindNoRecognizedResponse:
		return "no recognized response"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

func (k UploadErrorKind) sentinel() error {
	switch k {
	case KindInvalidName:
		return ErrInvalidName
	case KindConversionFailure:
		return ErrConversionFailure
	case KindTransportFailure:
		return ErrTransportFailure
	case KindNoRecognizedResponse:
		return ErrNoRecognizedResponse
	default:
		return nil
	}
}

// UploadError represents a failed upload.
type UploadError struct {
	// Kind is the failure category
	Kind UploadErrorKind

	// Message is additional context (optional)
	Message string

	// Err is the underlying cause, if any
	Err error
}

func (e *UploadError) Error() string {
	msg := "upload failed: " + e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel error for the error's kind.
func (e *UploadError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// IsUploadError returns true if the error is or wraps an UploadError.
func IsUploadError(err error) bool {
	var ue *UploadError
	return errors.As(err, &ue)
}

// ResponseError represents a response that could not be interpreted.
type ResponseError struct {
	// Operation is the command whose response failed
	Operation string

	// Err is the underlying cause
	Err error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

func newUploadError(kind UploadErrorKind, msg string, err error) *UploadError {
	return &UploadError{Kind: kind, Message: msg, Err: err}
}
