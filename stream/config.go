package stream

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/matt-g-everett/devicetx/device"
	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the transmitter.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		ClientID string `yaml:"clientID"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
		Format string `yaml:"format"`
	} `yaml:"mqtt"`

	Animation struct {
		BaseSize        float64       `yaml:"baseSize"`
		Ratio           float64       `yaml:"ratio"`
		InitialStep     string        `yaml:"initialStep"`
		Period          time.Duration `yaml:"period"`
		Duration        time.Duration `yaml:"duration"`
		FrameRate       float64       `yaml:"frameRate"`
		Easing          string        `yaml:"easing"`
		SkipIfUnchanged bool          `yaml:"skipIfUnchanged"`
	} `yaml:"animation"`

	Style struct {
		Stroke       string  `yaml:"stroke"`
		StrokeWidth  float64 `yaml:"strokeWidth"`
		BoundsRadius float64 `yaml:"boundsRadius"`
	} `yaml:"style"`

	// Profiles replaces the templated profile of a step. Each table must
	// name every animated property.
	Profiles map[string]map[string]float64 `yaml:"profiles"`

	HTTP struct {
		Addr   string `yaml:"addr"`
		Static string `yaml:"static"`
	} `yaml:"http"`
}

// ReadConfig decodes a YAML config, fills in defaults and validates it.
func ReadConfig(r io.Reader) (Config, error) {
	var c Config
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("decode config: %w", err)
	}

	c.setDefaults()

	if _, err := c.EngineConfig(); err != nil {
		return c, err
	}

	return c, nil
}

func (c *Config) setDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "devicetx"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/devices/stream"
	}
	if c.Mqtt.Format == "" {
		c.Mqtt.Format = FormatJSON
	}
	if c.Animation.BaseSize == 0 {
		c.Animation.BaseSize = 480
	}
	if c.Animation.Ratio == 0 {
		c.Animation.Ratio = device.DefaultRatio
	}
	if c.Animation.InitialStep == "" {
		c.Animation.InitialStep = device.Desktop.String()
	}
	if c.Animation.Period == 0 {
		c.Animation.Period = DefaultPeriod
	}
	if c.Animation.Duration == 0 {
		c.Animation.Duration = DefaultDuration
	}
	if c.Animation.FrameRate == 0 {
		c.Animation.FrameRate = DefaultFrameRate
	}
	if c.Style.Stroke == "" {
		c.Style.Stroke = "#ff0000"
	}
	if c.Style.StrokeWidth == 0 {
		c.Style.StrokeWidth = 2
	}
	if c.Style.BoundsRadius == 0 {
		c.Style.BoundsRadius = 16
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":3000"
	}
	if c.HTTP.Static == "" {
		c.HTTP.Static = "client/dist"
	}
}

// ProfileSet resolves the step profiles, applying any overrides.
func (c *Config) ProfileSet() (device.ProfileSet, error) {
	set := device.PresetTemplate(c.Animation.BaseSize).Resolve(c.Animation.BaseSize, c.Animation.Ratio)
	for name, table := range c.Profiles {
		step, err := device.ParseStepName(name)
		if err != nil {
			return set, fmt.Errorf("profiles: %w", err)
		}
		profile, err := device.ProfileFromMap(table)
		if err != nil {
			return set, fmt.Errorf("profiles.%s: %w", name, err)
		}
		set[step] = profile
	}
	return set, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// validateAnimation rejects values that would resolve to negative
// dimensions or to timers the runtime refuses to create.
func (c *Config) validateAnimation() error {
	a := &c.Animation
	if !positive(a.BaseSize) {
		return fmt.Errorf("baseSize must be positive, got %v", a.BaseSize)
	}
	if !positive(a.Ratio) {
		return fmt.Errorf("ratio must be positive, got %v", a.Ratio)
	}
	if !positive(a.FrameRate) || frameInterval(a.FrameRate) <= 0 {
		return fmt.Errorf("frameRate must be positive and at most 1e9, got %v", a.FrameRate)
	}
	// Bare integers decode as nanoseconds.
	if a.Period < time.Millisecond {
		return fmt.Errorf("period must be at least 1ms, got %v", a.Period)
	}
	if a.Duration < time.Millisecond {
		return fmt.Errorf("duration must be at least 1ms, got %v", a.Duration)
	}
	return nil
}

// EngineConfig builds the engine settings described by the config.
func (c *Config) EngineConfig() (EngineConfig, error) {
	var ec EngineConfig

	if err := c.validateAnimation(); err != nil {
		return ec, err
	}

	step, err := device.ParseStepName(c.Animation.InitialStep)
	if err != nil {
		return ec, fmt.Errorf("initialStep: %w", err)
	}

	profiles, err := c.ProfileSet()
	if err != nil {
		return ec, err
	}

	easing, err := LookupEasing(c.Animation.Easing)
	if err != nil {
		return ec, err
	}

	style, err := NewStyle(c.Style.Stroke, c.Style.StrokeWidth, c.Style.BoundsRadius)
	if err != nil {
		return ec, fmt.Errorf("style.stroke: %w", err)
	}

	switch c.Mqtt.Format {
	case FormatJSON, FormatBinary:
	default:
		return ec, fmt.Errorf("unknown frame format %q", c.Mqtt.Format)
	}

	ec.Profiles = profiles
	ec.InitialStep = step
	ec.Duration = c.Animation.Duration
	ec.Easing = easing
	ec.SkipIfUnchanged = c.Animation.SkipIfUnchanged
	ec.Style = style

	return ec, nil
}
