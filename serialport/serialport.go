// Package serialport opens the serial link to a Spade device.
//
// The returned Port is the io.ReadWriter the protocol and uploader packages
// expect. Reads time out after Config.ReadTimeout and then return 0, nil,
// which the upload reply scan treats as the end of the device's reply.
package serialport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Defaults used by Spade devices over USB CDC.
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 1000 * time.Millisecond
)

// Config describes how to open the serial link.
type Config struct {
	// Device is the serial port path, e.g. /dev/ttyACM0 or COM3
	Device string

	// BaudRate is the line speed in bits per second
	BaudRate int

	// ReadTimeout bounds every Read; zero or negative blocks forever
	ReadTimeout time.Duration
}

// DefaultConfig returns the configuration used by the Spade upload tools.
func DefaultConfig(device string) Config {
	return Config{
		Device:      device,
		BaudRate:    DefaultBaudRate,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Device == "" {
		return errors.New("serial device is required")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	return nil
}

// Port is an open serial link.
type Port struct {
	port   serial.Port
	device string
}

// openFunc is replaced in tests.
var openFunc = serial.Open

// Open opens and configures the serial device.
func Open(cfg Config) (*Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := openFunc(cfg.Device, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}

	timeout := serial.NoTimeout
	if cfg.ReadTimeout > 0 {
		timeout = cfg.ReadTimeout
	}
	if err := p.SetReadTimeout(timeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", cfg.Device, err)
	}

	return &Port{port: p, device: cfg.Device}, nil
}

// Read reads from the device. It returns 0, nil when the read timeout expires.
func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes to the device.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the device.
func (p *Port) Close() error {
	return p.port.Close()
}

// Device returns the path the port was opened with.
func (p *Port) Device() string {
	return p.device
}

// List returns the serial ports present on the system.
func List() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	return ports, nil
}
