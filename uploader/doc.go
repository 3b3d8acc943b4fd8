// Package uploader provides a high-level API for sending games to Spade devices.
//
// # Overview
//
// This package orchestrates the upload sequence:
//   - Probing for a legacy Spade version, which cannot accept uploads
//   - Framing and sending the game with the UPLOAD command
//   - Waiting for the device's verdict
//
// # Basic Usage
//
// The simplest way to upload a game:
//
//	// User provides the serial link (io.ReadWriter)
//	port, err := serialport.Open(serialport.DefaultConfig("/dev/ttyACM0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	g, err := game.Load("breakout", "breakout.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	up := uploader.New(port)
//	result, err := up.Provision(context.Background(), g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result) // "accepted"
//
// # Progress Tracking
//
// Track upload progress with a callback:
//
//	up := uploader.New(port,
//	    uploader.WithProgressCallback(func(p uploader.Progress) {
//	        fmt.Printf("[%s] %.1f%%\n", p.Phase, p.Percentage)
//	    }),
//	)
//
// # Error Handling
//
// The package provides structured error types:
//   - LegacyDeviceError: the device runs a legacy Spade version
//   - RejectedError: the device refused the game (see RequireAccepted)
//   - protocol.UploadError: framing, transport or reply failures
//
// # Timeouts
//
// Reads and writes block for as long as the device allows. Configure read and
// write timeouts on the serial port; a read that times out with no data ends
// the reply scan with protocol.ErrNoRecognizedResponse. The context passed to
// each method is checked before any I/O starts.
package uploader
