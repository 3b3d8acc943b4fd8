package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "spade.yaml", `
device: /dev/ttyACM0
baud_rate: 9600
read_timeout: 250ms
log_level: debug
log_format: json
skip_legacy_check: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Config{
		Device:          "/dev/ttyACM0",
		BaudRate:        9600,
		ReadTimeout:     250 * time.Millisecond,
		LogLevel:        "debug",
		LogFormat:       "json",
		SkipLegacyCheck: true,
	}
	if cfg != want {
		t.Errorf("cfg = %+v\nwant  %+v", cfg, want)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "spade.toml", `
device = "COM3"
read_timeout = "2s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device != "COM3" || cfg.ReadTimeout != 2*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset fields keep their defaults
	if cfg.BaudRate != 115200 || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("SPADE_TEST_DEVICE", "/dev/ttyUSB1")

	path := writeFile(t, "spade.yml", `
device: ${SPADE_TEST_DEVICE}
log_level: ${SPADE_TEST_UNSET:-warn}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Device != "/dev/ttyUSB1" {
		t.Errorf("Device = %q", cfg.Device)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "bad duration", file: "a.yaml", content: "read_timeout: soon\n", errMsg: "read_timeout"},
		{name: "negative baud", file: "a.yaml", content: "baud_rate: -5\n", errMsg: "baud_rate"},
		{name: "bad format", file: "a.yaml", content: "log_format: xml\n", errMsg: "log_format"},
		{name: "invalid yaml", file: "a.yaml", content: "device: [unclosed\n", errMsg: "invalid YAML"},
		{name: "invalid toml", file: "a.toml", content: "device = \n", errMsg: "invalid TOML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing file error = %v", err)
	}
}

func TestSerial(t *testing.T) {
	cfg := Default()
	cfg.Device = "/dev/ttyACM0"

	sc := cfg.Serial()
	if sc.Device != "/dev/ttyACM0" || sc.BaudRate != 115200 || sc.ReadTimeout != time.Second {
		t.Errorf("Serial() = %+v", sc)
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SPADE_A", "alpha")
	t.Setenv("SPADE_EMPTY", "")

	tests := []struct {
		in   string
		want string
	}{
		{"${SPADE_A}", "alpha"},
		{"x-${SPADE_A}-y", "x-alpha-y"},
		{"${SPADE_EMPTY:-fallback}", "fallback"},
		{"${SPADE_NOPE}", ""},
		{"$SPADE_A", "$SPADE_A"},
	}

	for _, tt := range tests {
		if got := ExpandEnv(tt.in); got != tt.want {
			t.Errorf("ExpandEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
