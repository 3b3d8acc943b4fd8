package uploader

import "time"

// Upload phases reported through Progress.Phase.
const (
	PhaseProbing   = "probing"
	PhaseUploading = "uploading"
	PhaseAwaiting  = "awaiting"
	PhaseComplete  = "complete"
)

// Progress contains information about the upload progress.
// Passed to ProgressCallback during upload operations.
type Progress struct {
	// Phase describes the current operation phase:
	//   "probing"   - Checking for a legacy device
	//   "uploading" - Sending the UPLOAD frame
	//   "awaiting"  - Frame sent, scanning the device's reply
	//   "complete"  - The device replied with a verdict
	Phase string

	// BytesWritten is the number of frame bytes written so far
	BytesWritten int

	// TotalBytes is the size of the complete frame
	TotalBytes int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// ElapsedTime is the time elapsed since the upload started
	ElapsedTime time.Duration
}

// ProgressCallback is called during an upload to report progress.
// Implementations should return quickly; the serial link is idle while it runs.
//
// Example:
//
//	up := uploader.New(port,
//	    uploader.WithProgressCallback(func(p uploader.Progress) {
//	        fmt.Printf("[%s] %.1f%% (%d/%d bytes)\n",
//	            p.Phase, p.Percentage, p.BytesWritten, p.TotalBytes)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the uploader.
// This allows integration with any logging framework.
//
// Example with zap:
//
//	up := uploader.New(port, uploader.WithLogger(logging.NewAdapter(zapLogger)))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
