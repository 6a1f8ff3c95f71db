package presence

// This module defines the yaml configuration file for the presence daemon,
// the file is optional and every value has a default

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"net/url"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"gopkg.in/yaml.v3"

	"github.com/TeamNorCal/presence/animation"
	"github.com/TeamNorCal/presence/model"
)

type Config struct {
	Strip   StripConfig              `yaml:"strip"`
	Network NetworkConfig            `yaml:"network"`
	Theme   animation.Theme          `yaml:"theme"`
	Presets map[string][]model.Color `yaml:"presets"`
	Gateway GatewayConfig            `yaml:"gateway"`
}

type StripConfig struct {
	Backend string `yaml:"backend"` // 'opc' fadecandy server, 'term' terminal preview, 'none'
	Server  string `yaml:"server"`  // host:port of the fcserver
	Channel int    `yaml:"channel"` // OPC channel, 0 broadcasts to all
}

type NetworkConfig struct {
	Probe      string `yaml:"probe"` // http(s):// or tcp:// URL, empty means always connected
	IntervalMS int    `yaml:"interval_ms"`
}

type GatewayConfig struct {
	PollMS int  `yaml:"poll_ms"`
	Boot   bool `yaml:"boot"` // play the boot sequence on start
}

// DefaultConfig returns a fully populated configuration
func DefaultConfig() (cfg *Config) {
	cfg = &Config{
		Strip: StripConfig{
			Backend: "opc",
			Server:  "localhost:7890",
			Channel: 0,
		},
		Network: NetworkConfig{
			IntervalMS: 1000,
		},
		Theme:   animation.DefaultTheme,
		Presets: map[string][]model.Color{},
		Gateway: GatewayConfig{
			PollMS: 2,
			Boot:   true,
		},
	}
	for name, preset := range animation.DefaultPresets() {
		cfg.Presets[name] = append([]model.Color{}, preset.Colors...)
	}
	return cfg
}

// LoadConfig reads the yaml file at path on top of the defaults, unknown
// fields are rejected
func LoadConfig(path string) (cfg *Config, err errors.Error) {
	byt, errGo := ioutil.ReadFile(path)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
	}
	cfg, err = ParseConfig(byt)
	if err != nil {
		return nil, err.With("path", path)
	}
	return cfg, nil
}

// ParseConfig decodes a yaml document on top of the defaults
func ParseConfig(byt []byte) (cfg *Config, err errors.Error) {
	cfg = DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(byt))
	dec.KnownFields(true)
	if errGo := dec.Decode(cfg); errGo != nil && len(bytes.TrimSpace(byt)) != 0 {
		return nil, errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be normalized
func (cfg *Config) Validate() (err errors.Error) {
	switch cfg.Strip.Backend {
	case "opc", "term", "none":
	default:
		return errors.New(fmt.Sprintf("unknown strip backend %q", cfg.Strip.Backend)).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.Strip.Channel < 0 || cfg.Strip.Channel > 255 {
		return errors.New("OPC channel must be in the range 0-255").With("channel", cfg.Strip.Channel).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.Network.IntervalMS <= 0 {
		return errors.New("network probe interval must be positive").With("interval_ms", cfg.Network.IntervalMS).With("stack", stack.Trace().TrimRuntime())
	}
	if cfg.Gateway.PollMS <= 0 {
		return errors.New("gateway poll interval must be positive").With("poll_ms", cfg.Gateway.PollMS).With("stack", stack.Trace().TrimRuntime())
	}
	if _, err = cfg.ProbeURL(); err != nil {
		return err
	}
	for name, colors := range cfg.Presets {
		if len(colors) == 0 {
			return errors.New("preset has no colors").With("preset", name).With("stack", stack.Trace().TrimRuntime())
		}
		if len(colors) > animation.MaxPulseColors {
			return errors.New("preset has too many colors").With("preset", name).With("max", animation.MaxPulseColors).With("stack", stack.Trace().TrimRuntime())
		}
	}
	return nil
}

// ProbeURL parses the network probe, nil is returned when no probe is set
func (cfg *Config) ProbeURL() (probe *url.URL, err errors.Error) {
	if cfg.Network.Probe == "" {
		return nil, nil
	}
	probe, errGo := url.Parse(cfg.Network.Probe)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("probe", cfg.Network.Probe).With("stack", stack.Trace().TrimRuntime())
	}
	switch probe.Scheme {
	case "http", "https", "tcp":
	default:
		return nil, errors.New("network probe must be an http, https or tcp URL").With("probe", cfg.Network.Probe).With("stack", stack.Trace().TrimRuntime())
	}
	return probe, nil
}

// PresetCatalog converts the configured palettes for the engine
func (cfg *Config) PresetCatalog() (presets animation.Presets) {
	presets = animation.Presets{}
	for name, colors := range cfg.Presets {
		presets.Add(animation.Preset{Name: name, Colors: append([]model.Color{}, colors...)})
	}
	return presets
}

func (cfg *Config) PollInterval() time.Duration {
	return time.Duration(cfg.Gateway.PollMS) * time.Millisecond
}

func (cfg *Config) ProbeInterval() time.Duration {
	return time.Duration(cfg.Network.IntervalMS) * time.Millisecond
}

// String renders the effective configuration as yaml
func (cfg *Config) String() string {
	byt, errGo := yaml.Marshal(cfg)
	if errGo != nil {
		return errGo.Error()
	}
	return string(byt)
}
