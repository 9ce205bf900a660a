// Package config loads host settings from EYEBEAM_* environment variables and flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/eyebeam/audio"
)

// ErrInvalid marks a configuration value outside its accepted range
var ErrInvalid = errors.New("invalid config")

// Color modes accepted by -color
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// Config is the host configuration
type Config struct {
	AudioEnabled bool          `env:"EYEBEAM_AUDIO_ENABLED" envDefault:"true"`
	SampleRate   int           `env:"EYEBEAM_SAMPLE_RATE"   envDefault:"44100"`
	AudioBuffer  time.Duration `env:"EYEBEAM_AUDIO_BUFFER"  envDefault:"50ms"`
	MasterVolume float64       `env:"EYEBEAM_MASTER_VOLUME" envDefault:"1"`
	Seed         int64         `env:"EYEBEAM_SEED"`
	FPS          int           `env:"EYEBEAM_FPS"           envDefault:"60"`
	Color        string        `env:"EYEBEAM_COLOR"         envDefault:"auto"`
	Demo         bool          `env:"EYEBEAM_DEMO"`
	Debug        bool          `env:"EYEBEAM_DEBUG"`
	LogLevel     string        `env:"EYEBEAM_LOG_LEVEL"     envDefault:"info"`
	LogDir       string        `env:"EYEBEAM_LOG_DIR"       envDefault:"logs"`
}

// ParseEnv fills target from the environment
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the environment without validating, so flags can still override
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegisterFlags binds command-line overrides onto c, current values become the flag defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Color, "color", c.Color, "Color mode: auto, truecolor, 256")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Write debug logs to "+c.LogDir)
	fs.BoolVar(&c.Demo, "demo", c.Demo, "Replay the scripted demo instead of mouse input")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for sparks and crackle, 0 = time-seeded")
	fs.BoolVar(&c.AudioEnabled, "audio", c.AudioEnabled, "Enable audio output")
	fs.IntVar(&c.FPS, "fps", c.FPS, "Frame rate")
}

// Validate checks ranges, errors wrap ErrInvalid
func (c *Config) Validate() error {
	var errs []error
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: sample rate %d must be positive", ErrInvalid, c.SampleRate))
	}
	if c.AudioBuffer <= 0 {
		errs = append(errs, fmt.Errorf("%w: audio buffer %v must be positive", ErrInvalid, c.AudioBuffer))
	}
	if c.MasterVolume < 0 || c.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("%w: master volume %.2f outside [0,1]", ErrInvalid, c.MasterVolume))
	}
	if c.FPS <= 0 || c.FPS > 1000 {
		errs = append(errs, fmt.Errorf("%w: fps %d outside (0,1000]", ErrInvalid, c.FPS))
	}
	switch strings.ToLower(c.Color) {
	case ColorAuto, ColorTrueColor, "true", "24bit", Color256:
	default:
		errs = append(errs, fmt.Errorf("%w: color mode %q", ErrInvalid, c.Color))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel))
	}
	return errors.Join(errs...)
}

// ColorMode normalizes the color aliases
func (c *Config) ColorMode() string {
	switch strings.ToLower(c.Color) {
	case ColorTrueColor, "true", "24bit":
		return ColorTrueColor
	case Color256:
		return Color256
	default:
		return ColorAuto
	}
}

// FrameInterval returns the ticker period for FPS
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FPS)
}

// AudioConfig converts to backend settings
func (c *Config) AudioConfig() audio.Config {
	return audio.Config{
		SampleRate: c.SampleRate,
		Buffer:     c.AudioBuffer,
		Volume:     c.MasterVolume,
		Seed:       c.Seed,
	}
}
