package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/moffa90/go-spade/game"
	"github.com/moffa90/go-spade/internal/config"
	"github.com/moffa90/go-spade/internal/logging"
	"github.com/moffa90/go-spade/serialport"
	"github.com/moffa90/go-spade/uploader"
)

// Exit codes.
const (
	exitAccepted = 0
	exitError    = 1
	exitLegacy   = 2
	exitRejected = 3
)

// Replaced in tests.
var (
	openPort = func(cfg serialport.Config) (io.ReadWriteCloser, error) {
		return serialport.Open(cfg)
	}
	listPorts = serialport.List
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML or TOML config file",
			EnvVars: []string{"SPADE_CONFIG"},
		},
		&cli.IntFlag{
			Name:  "baud",
			Usage: "Serial baud rate (default 115200)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Serial read timeout; the target counts as silent after it (default 1s)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: console, json",
		},
		&cli.BoolFlag{
			Name:  "skip-legacy-check",
			Usage: "Upload without probing for a legacy Spade version",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Do not print upload progress",
		},
	}
}

func uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload a game to the target",
		ArgsUsage: "<device> <name> [source]",
		Action:    uploadAction,
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Check whether the target runs a legacy Spade version",
		ArgsUsage: "[device]",
		Action:    probeAction,
	}
}

func portsCommand() *cli.Command {
	return &cli.Command{
		Name:   "ports",
		Usage:  "List serial ports",
		Action: portsAction,
	}
}

// loadSettings reads the config file, if any, and applies flag overrides.
func loadSettings(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if c.IsSet("baud") {
		cfg.BaudRate = c.Int("baud")
	}
	if c.IsSet("timeout") {
		cfg.ReadTimeout = c.Duration("timeout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("skip-legacy-check") {
		cfg.SkipLegacyCheck = c.Bool("skip-legacy-check")
	}
	return cfg, nil
}

func newLogger(c *cli.Context, cfg config.Config) *zap.Logger {
	return logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: c.App.ErrWriter,
	})
}

func open(cfg config.Config, device string) (io.ReadWriteCloser, error) {
	sc := cfg.Serial()
	sc.Device = device
	port, err := openPort(sc)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("cannot open %s: %v", device, err), exitError)
	}
	return port, nil
}

func uploadAction(c *cli.Context) error {
	if c.NArg() < 2 || c.NArg() > 3 {
		return cli.Exit("usage: spade-upload upload <device> <name> [source]", exitError)
	}
	device, name, source := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)

	cfg, err := loadSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}

	var g *game.Game
	if source == "" || source == "-" {
		g, err = game.LoadReader(name, c.App.Reader)
	} else {
		g, err = game.Load(name, source)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot load game: %v", err), exitError)
	}

	logger := newLogger(c, cfg)
	defer func() { _ = logger.Sync() }()

	port, err := open(cfg, device)
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	opts := []uploader.Option{
		uploader.WithLogger(logging.NewAdapter(logger)),
		uploader.WithDeviceName(device),
		uploader.WithSkipLegacyCheck(cfg.SkipLegacyCheck),
	}
	if !c.Bool("quiet") {
		opts = append(opts, uploader.WithProgressCallback(progressPrinter(c.App.ErrWriter)))
	}

	result, err := uploader.New(port, opts...).Provision(contextOf(c), g)
	if err != nil {
		if uploader.IsLegacyDevice(err) {
			return cli.Exit(fmt.Sprintf("%v; update the firmware before uploading", err), exitLegacy)
		}
		return cli.Exit(err.Error(), exitError)
	}

	newPrinter(c.App.Writer, c.Bool("no-color")).verdict(g.Name, result.Accepted(), result.String(), g.Size())
	if err := uploader.RequireAccepted(g.Name, result); err != nil {
		return cli.Exit(err.Error(), exitRejected)
	}
	return nil
}

func probeAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return cli.Exit("usage: spade-upload probe [device]", exitError)
	}

	cfg, err := loadSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), exitError)
	}

	device := c.Args().First()
	if device == "" {
		device = cfg.Device
	}
	if device == "" {
		return cli.Exit("no device given and none configured", exitError)
	}

	logger := newLogger(c, cfg)
	defer func() { _ = logger.Sync() }()

	port, err := open(cfg, device)
	if err != nil {
		return err
	}
	defer func() { _ = port.Close() }()

	up := uploader.New(port,
		uploader.WithLogger(logging.NewAdapter(logger)),
		uploader.WithDeviceName(device),
	)

	legacy, err := up.IsRunningLegacy(contextOf(c))
	if err != nil {
		return cli.Exit(fmt.Sprintf("probe failed: %v", err), exitError)
	}
	newPrinter(c.App.Writer, c.Bool("no-color")).probe(legacy)
	if legacy {
		return cli.Exit("", exitLegacy)
	}
	return nil
}

func portsAction(c *cli.Context) error {
	ports, err := listPorts()
	if err != nil {
		return cli.Exit(fmt.Sprintf("cannot list serial ports: %v", err), exitError)
	}
	if len(ports) == 0 {
		return cli.Exit("no serial ports found", exitError)
	}
	for _, p := range ports {
		fmt.Fprintln(c.App.Writer, p)
	}
	return nil
}

func contextOf(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

// progressPrinter writes a single updating progress line.
func progressPrinter(w io.Writer) uploader.ProgressCallback {
	last := -1
	return func(p uploader.Progress) {
		switch p.Phase {
		case uploader.PhaseProbing:
			fmt.Fprintln(w, "checking target firmware...")
		case uploader.PhaseUploading, uploader.PhaseAwaiting:
			pct := int(p.Percentage)
			if pct == last {
				return
			}
			last = pct
			fmt.Fprintf(w, "\ruploading %3d%% (%d/%d bytes)", pct, p.BytesWritten, p.TotalBytes)
		case uploader.PhaseComplete:
			fmt.Fprintf(w, "\ruploaded %d bytes in %s\n", p.TotalBytes, p.ElapsedTime.Round(time.Millisecond))
		}
	}
}
