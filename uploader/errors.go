package uploader

import (
	"fmt"

	"github.com/moffa90/go-spade/protocol"
)

// LegacyDeviceError indicates that the device runs a legacy Spade version
// that does not understand the UPLOAD command.
type LegacyDeviceError struct {
	Device string
}

func (e *LegacyDeviceError) Error() string {
	if e.Device == "" {
		return "device is running a legacy Spade version"
	}
	return fmt.Sprintf("device %s is running a legacy Spade version", e.Device)
}

// RejectedError indicates that the device answered the upload but did not
// store the game.
type RejectedError struct {
	Name   string
	Result protocol.UploadResult
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("game %q %s", e.Name, e.Result)
}

// RequireAccepted turns a rejecting result into a *RejectedError.
// It returns nil for protocol.ResultAllGood.
func RequireAccepted(name string, result protocol.UploadResult) error {
	if result.Accepted() {
		return nil
	}
	return &RejectedError{Name: name, Result: result}
}
