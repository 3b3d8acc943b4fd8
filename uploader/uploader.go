package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-spade/game"
	"github.com/moffa90/go-spade/protocol"
)

// Uploader sends games to a device running Spade.
// It runs the legacy probe and the UPLOAD command over the provided device.
//
// Uploader is not safe for concurrent use: the protocol has no framing that
// would let two exchanges share one serial link.
type Uploader struct {
	device io.ReadWriter
	config Config
}

// New creates a new Uploader with the given device and options.
// The device must implement io.ReadWriter; it is typically a serial port
// opened with a read timeout.
//
// Example:
//
//	port, _ := serialport.Open(serialport.DefaultConfig("/dev/ttyACM0"))
//	up := uploader.New(port,
//	    uploader.WithDeviceName("/dev/ttyACM0"),
//	    uploader.WithProgressCallback(progressFunc),
//	)
func New(device io.ReadWriter, opts ...Option) *Uploader {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Uploader{
		device: device,
		config: cfg,
	}
}

// Provision performs the complete upload sequence:
//  1. Probe for a legacy Spade version (unless WithSkipLegacyCheck is set)
//  2. Refuse legacy devices with *LegacyDeviceError
//  3. Upload the game and return the device's verdict
//
// A verdict other than protocol.ResultAllGood is not an error; use
// RequireAccepted to treat it as one.
func (u *Uploader) Provision(ctx context.Context, g *game.Game) (protocol.UploadResult, error) {
	if g == nil {
		return 0, fmt.Errorf("game cannot be nil")
	}

	if !u.config.SkipLegacyCheck {
		legacy, err := u.IsRunningLegacy(ctx)
		if err != nil {
			return 0, fmt.Errorf("legacy check: %w", err)
		}
		if legacy {
			u.logError("legacy device refused", "device", u.config.DeviceName)
			return 0, &LegacyDeviceError{Device: u.config.DeviceName}
		}
	}

	return u.Upload(ctx, g)
}

// IsRunningLegacy checks whether the device runs a legacy Spade version.
// See protocol.IsRunningLegacy.
func (u *Uploader) IsRunningLegacy(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("cancelled: %w", err)
	}

	u.reportProgress(Progress{Phase: PhaseProbing})

	legacy, err := protocol.IsRunningLegacy(u.device)
	if err != nil {
		u.logError("legacy probe failed", "device", u.config.DeviceName, "error", err)
		return false, err
	}

	u.logDebug("legacy probe", "device", u.config.DeviceName, "legacy", legacy)
	return legacy, nil
}

// Upload sends the game with the UPLOAD command and waits for the device's
// verdict. It does not probe for a legacy device first.
//
// Errors from the protocol layer are returned unwrapped, so they can be
// classified with errors.Is against the protocol sentinel errors.
//
// Example:
//
//	result, err := up.Upload(ctx, g)
//	if errors.Is(err, protocol.ErrNoRecognizedResponse) {
//	    // device closed the link or timed out
//	}
func (u *Uploader) Upload(ctx context.Context, g *game.Game) (protocol.UploadResult, error) {
	if g == nil {
		return 0, fmt.Errorf("game cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("cancelled: %w", err)
	}

	frame, err := protocol.BuildUploadFrame([]byte(g.Name), g.Source)
	if err != nil {
		return 0, err
	}

	startTime := time.Now()
	total := frame.Len()

	u.logDebug("uploading game",
		"device", u.config.DeviceName,
		"name", g.Name,
		"source_bytes", len(g.Source),
		"frame_bytes", total,
	)

	u.reportProgress(Progress{
		Phase:      PhaseUploading,
		TotalBytes: total,
	})

	cw := &countingWriter{w: u.device}
	cw.onWrite = func() {
		phase := PhaseUploading
		if cw.n >= total {
			phase = PhaseAwaiting
		}
		u.reportProgress(Progress{
			Phase:        phase,
			BytesWritten: cw.n,
			TotalBytes:   total,
			Percentage:   percentage(cw.n, total),
			ElapsedTime:  time.Since(startTime),
		})
	}

	if err := protocol.SendUploadFrame(cw, frame); err != nil {
		u.logError("upload failed", "name", g.Name, "bytes_written", cw.n, "error", err)
		return 0, err
	}

	result, err := protocol.ReadUploadResult(u.device)
	if err != nil {
		u.logError("no verdict from device", "name", g.Name, "error", err)
		return 0, err
	}

	u.reportProgress(Progress{
		Phase:        PhaseComplete,
		BytesWritten: total,
		TotalBytes:   total,
		Percentage:   100,
		ElapsedTime:  time.Since(startTime),
	})

	u.logInfo("upload complete",
		"name", g.Name,
		"result", result.String(),
		"bytes", total,
		"elapsed", time.Since(startTime).String(),
	)

	return result, nil
}

// countingWriter counts bytes successfully written and notifies after each write.
type countingWriter struct {
	w       io.Writer
	n       int
	onWrite func()
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	if err == nil && c.onWrite != nil {
		c.onWrite()
	}
	return n, err
}

func percentage(done, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(done) / float64(total) * 100
}

// IsLegacyDevice returns true if err is or wraps a *LegacyDeviceError.
func IsLegacyDevice(err error) bool {
	var le *LegacyDeviceError
	return errors.As(err, &le)
}

// reportProgress calls the progress callback if configured.
func (u *Uploader) reportProgress(progress Progress) {
	if u.config.ProgressCallback != nil {
		u.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (u *Uploader) logDebug(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (u *Uploader) logInfo(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (u *Uploader) logError(msg string, keysAndValues ...interface{}) {
	if u.config.Logger != nil {
		u.config.Logger.Error(msg, keysAndValues...)
	}
}
