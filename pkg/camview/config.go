package camview

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	fx "github.com/robotalks/camview/pkg/framework"
	"github.com/robotalks/camview/pkg/notify"
	"github.com/robotalks/camview/pkg/serial"
)

// Config defines the configurations of a camera session.
type Config struct {
	// Port is the serial device connected to the camera.
	Port string `toml:"port"`
	Baud int    `toml:"baud"`
	// Redraw is the interval between redraws.
	Redraw time.Duration `toml:"redraw"`
	// Storage is the root directory of snapshots.
	Storage string `toml:"storage"`
	// Viewer is the listen address of the web viewer, empty to disable.
	Viewer string `toml:"viewer"`
	// MQTTURL specifies the MQTT broker to publish events to, empty to disable.
	// e.g. mqtt://host:port/topic-prefix
	MQTTURL  string `toml:"mqtt"`
	CameraID string `toml:"camera-id"`
}

var (
	defaultConfig = Config{
		Port:    "/dev/ttyUSB0",
		Baud:    serial.DefaultBaud,
		Redraw:  fx.DefaultInterval,
		Storage: ".",
		Viewer:  "localhost:8064",
	}

	configFile string
)

func init() {
	defaultConfig.CameraID = defaultCameraID()
	applyEnv(&defaultConfig, os.Getenv)
}

func defaultCameraID() string {
	id, err := machineid.ProtectedID("camview")
	if err != nil || len(id) < 12 {
		return "camview"
	}
	return id[:12]
}

func applyEnv(c *Config, getenv func(string) string) {
	if val := getenv("CAMVIEW_PORT"); val != "" {
		c.Port = val
	}
	if val := getenv("CAMVIEW_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			c.Baud = baud
		}
	}
	if val := getenv("CAMVIEW_STORAGE"); val != "" {
		c.Storage = val
	}
	if val := getenv("CAMVIEW_VIEWER"); val != "" {
		c.Viewer = val
	}
	if val := getenv("CAMVIEW_MQTT_URL"); val != "" {
		c.MQTTURL = val
	}
	if val := getenv("CAMVIEW_ID"); val != "" {
		c.CameraID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "config", configFile, "TOML config file, command line flags take precedence.")
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port of the camera.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.Redraw, "redraw", defaultConfig.Redraw, "Redraw interval.")
	flag.StringVar(&defaultConfig.Storage, "storage", defaultConfig.Storage, "Root directory of snapshots.")
	flag.StringVar(&defaultConfig.Viewer, "viewer", defaultConfig.Viewer, "Web viewer listen address, empty to disable.")
	flag.StringVar(&defaultConfig.MQTTURL, "mqtt", defaultConfig.MQTTURL, "MQTT broker URL for events, empty to disable.")
	flag.StringVar(&defaultConfig.CameraID, "camera-id", defaultConfig.CameraID, "Camera ID used in MQTT topics.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// LoadConfig creates a Config with defaults and the config file
// specified by -config. Flags set on the command line win over the file.
func LoadConfig() (*Config, error) {
	conf := NewConfig()
	if configFile == "" {
		return conf, nil
	}
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	return conf, conf.LoadFile(configFile, explicit)
}

// LoadFile applies keys in a TOML file except the skipped ones.
func (c *Config) LoadFile(path string, skip map[string]bool) error {
	var file Config
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return fmt.Errorf("load config %s error: %v", path, err)
	}
	for _, key := range md.Keys() {
		name := key.String()
		if skip[name] {
			continue
		}
		switch name {
		case "port":
			c.Port = file.Port
		case "baud":
			c.Baud = file.Baud
		case "redraw":
			c.Redraw = file.Redraw
		case "storage":
			c.Storage = file.Storage
		case "viewer":
			c.Viewer = file.Viewer
		case "mqtt":
			c.MQTTURL = file.MQTTURL
		case "camera-id":
			c.CameraID = file.CameraID
		}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		glog.Warningf("unknown keys in %s: %v", path, undecoded)
	}
	return nil
}

// NewController creates a Controller over the port using the config.
func (c *Config) NewController(port io.ReadWriter, notifier notify.Notifier) *Controller {
	ctl := NewController(port, notifier)
	ctl.Snapshots.Root = c.Storage
	return ctl
}

// NewLoop creates the loop redrawing at the configured interval.
func (c *Config) NewLoop() *fx.Loop {
	loop := fx.NewLoop()
	if c.Redraw > 0 {
		loop.Interval = c.Redraw
	}
	return loop
}
