// Package config loads the optional configuration file of spade-upload.
//
// YAML (.yaml, .yml) and TOML (.toml) files are supported. Values may
// reference environment variables as ${VAR} or ${VAR:-default}.
//
//	device: /dev/ttyACM0
//	baud_rate: 115200
//	read_timeout: 1s
//	log_level: debug
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-spade/serialport"
)

// Config is the resolved tool configuration.
type Config struct {
	Device          string
	BaudRate        int
	ReadTimeout     time.Duration
	LogLevel        string
	LogFormat       string
	SkipLegacyCheck bool
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		BaudRate:    serialport.DefaultBaudRate,
		ReadTimeout: serialport.DefaultReadTimeout,
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Serial returns the serial port configuration.
func (c Config) Serial() serialport.Config {
	return serialport.Config{
		Device:      c.Device,
		BaudRate:    c.BaudRate,
		ReadTimeout: c.ReadTimeout,
	}
}

// fileConfig mirrors the file layout. Durations are strings ("1s", "500ms").
type fileConfig struct {
	Device          string `yaml:"device" toml:"device"`
	BaudRate        int    `yaml:"baud_rate" toml:"baud_rate"`
	ReadTimeout     string `yaml:"read_timeout" toml:"read_timeout"`
	LogLevel        string `yaml:"log_level" toml:"log_level"`
	LogFormat       string `yaml:"log_format" toml:"log_format"`
	SkipLegacyCheck bool   `yaml:"skip_legacy_check" toml:"skip_legacy_check"`
}

// Load reads a config file, expands environment variables, and applies the
// values on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		return Config{}, fmt.Errorf("cannot read config file %q: %w", path, err)
	}

	expanded := ExpandEnv(string(data))

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, &raw); err != nil {
			return Config{}, fmt.Errorf("invalid TOML in %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return Config{}, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	return raw.resolve()
}

func (f fileConfig) resolve() (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(f.Device); v != "" {
		cfg.Device = v
	}
	if f.BaudRate != 0 {
		if f.BaudRate < 0 {
			return Config{}, fmt.Errorf("invalid baud_rate %d", f.BaudRate)
		}
		cfg.BaudRate = f.BaudRate
	}
	if v := strings.TrimSpace(f.ReadTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if v := strings.TrimSpace(f.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(f.LogFormat); v != "" {
		if v != "console" && v != "json" {
			return Config{}, fmt.Errorf("invalid log_format %q: want console or json", v)
		}
		cfg.LogFormat = v
	}
	cfg.SkipLegacyCheck = f.SkipLegacyCheck

	return cfg, nil
}
