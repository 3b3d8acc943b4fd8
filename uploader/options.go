package uploader

// Config holds the uploader configuration.
type Config struct {
	// ProgressCallback is called during uploads to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// DeviceName identifies the device in logs and errors (optional)
	DeviceName string

	// SkipLegacyCheck makes Provision upload without probing first
	SkipLegacyCheck bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{}
}

// Option is a functional option for configuring the Uploader.
type Option func(*Config)

// WithProgressCallback sets a callback function to track upload progress.
//
// Example:
//
//	up := uploader.New(port,
//	    uploader.WithProgressCallback(func(p uploader.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the uploader operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithDeviceName sets the name used for the device in logs and errors,
// typically the serial port path.
func WithDeviceName(name string) Option {
	return func(c *Config) {
		c.DeviceName = name
	}
}

// WithSkipLegacyCheck disables the legacy probe in Provision.
// Only use this when the device is known to run a current Spade version.
func WithSkipLegacyCheck(skip bool) Option {
	return func(c *Config) {
		c.SkipLegacyCheck = skip
	}
}
