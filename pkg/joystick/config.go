package joystick

import "flag"

// Config defines the configurations of joystick input.
type Config struct {
	Enabled     bool
	DeviceIndex int
	Verbose     bool
}

var defaultConfig = Config{
	DeviceIndex: -1,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Enabled, "joystick", defaultConfig.Enabled, "Press keys with a joystick.")
	flag.IntVar(&defaultConfig.DeviceIndex, "joystick-device", defaultConfig.DeviceIndex, "Joystick device index, -1 for auto detection.")
	flag.BoolVar(&defaultConfig.Verbose, "joystick-verbose", defaultConfig.Verbose, "Log joystick events.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewInput creates an Input using the config.
func (c *Config) NewInput(keys KeyHandler) *Input {
	in := NewInput(keys)
	in.DeviceIndex = c.DeviceIndex
	in.Verbose = c.Verbose
	return in
}
