package uploader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/moffa90/go-spade/protocol"
)

func TestLegacyDeviceError(t *testing.T) {
	err := &LegacyDeviceError{Device: "/dev/ttyACM0"}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "legacy") {
		t.Errorf("error message should contain 'legacy', got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "/dev/ttyACM0") {
		t.Errorf("error message should contain device, got: %s", errMsg)
	}

	anon := &LegacyDeviceError{}
	if strings.Contains(anon.Error(), "  ") {
		t.Errorf("error message without device has a gap: %q", anon.Error())
	}

	wrapped := fmt.Errorf("provision: %w", err)
	if !IsLegacyDevice(wrapped) {
		t.Error("IsLegacyDevice should see through wrapping")
	}
	if IsLegacyDevice(errors.New("other")) {
		t.Error("IsLegacyDevice matched an unrelated error")
	}
}

func TestRequireAccepted(t *testing.T) {
	tests := []struct {
		result  protocol.UploadResult
		wantErr bool
		errMsg  string
	}{
		{result: protocol.ResultAllGood},
		{result: protocol.ResultOutOfFlash, wantErr: true, errMsg: `game "snake" rejected: out of flash`},
		{result: protocol.ResultOutOfMetadata, wantErr: true, errMsg: `game "snake" rejected: too many programs`},
	}

	for _, tt := range tests {
		t.Run(tt.result.String(), func(t *testing.T) {
			err := RequireAccepted("snake", tt.result)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var re *RejectedError
			if !errors.As(err, &re) {
				t.Fatalf("error = %T, want *RejectedError", err)
			}
			if re.Result != tt.result {
				t.Errorf("Result = %v, want %v", re.Result, tt.result)
			}
			if err.Error() != tt.errMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.errMsg)
			}
		})
	}
}
