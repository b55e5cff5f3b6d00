package scratch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a card configuration. Unset fields keep
// their defaults. Durations are in milliseconds.
type File struct {
	Width          int     `yaml:"width" toml:"width"`
	Height         int     `yaml:"height" toml:"height"`
	Unit           string  `yaml:"unit" toml:"unit"`
	RewardColor    string  `yaml:"rewardColor" toml:"rewardColor"`
	RewardImage    string  `yaml:"rewardImage" toml:"rewardImage"`
	RewardText     *string `yaml:"rewardText" toml:"rewardText"`
	Font           string  `yaml:"font" toml:"font"`
	FontColor      string  `yaml:"fontColor" toml:"fontColor"`
	CoverColor     string  `yaml:"coverColor" toml:"coverColor"`
	CoverImage     string  `yaml:"coverImage" toml:"coverImage"`
	Radius         float64 `yaml:"radius" toml:"radius"`
	Mode           string  `yaml:"mode" toml:"mode"`
	Duration       *int64  `yaml:"duration" toml:"duration"`
	Threshold      float64 `yaml:"percent" toml:"percent"`
	ContainerClass string  `yaml:"containerClass" toml:"containerClass"`
	PixelRatio     float64 `yaml:"pixelRatio" toml:"pixelRatio"`
}

// LoadConfig reads a configuration file, choosing the format from its
// extension: .yaml or .yml for YAML, .toml for TOML.
func LoadConfig(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f, err := ParseConfig(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseConfig decodes data in the given format ("yaml", "yml" or "toml").
// Unknown keys are rejected.
func ParseConfig(data []byte, format string) (*File, error) {
	var f File
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, format)
	}
	if _, err := ParseMode(f.Mode); err != nil {
		return nil, err
	}
	return &f, nil
}

// Apply copies the fields set in f onto cfg. An unknown mode name is kept
// as an invalid Mode, so Validate rejects it.
func (f *File) Apply(cfg *Config) {
	setInt(&cfg.Width, f.Width)
	setInt(&cfg.Height, f.Height)
	setString(&cfg.Unit, f.Unit)
	setString(&cfg.RewardColor, f.RewardColor)
	setString(&cfg.RewardImageURL, f.RewardImage)
	if f.RewardText != nil {
		cfg.RewardText = *f.RewardText
	}
	setString(&cfg.Font, f.Font)
	setString(&cfg.FontColor, f.FontColor)
	setString(&cfg.CoverColor, f.CoverColor)
	setString(&cfg.CoverImageURL, f.CoverImage)
	if f.Radius != 0 {
		cfg.Radius = f.Radius
	}
	if f.Mode != "" {
		m, err := ParseMode(f.Mode)
		if err != nil {
			m = modeUnknown
		}
		cfg.Mode = m
	}
	if f.Duration != nil {
		cfg.Duration = time.Duration(*f.Duration) * time.Millisecond
	}
	if f.Threshold != 0 {
		cfg.Threshold = f.Threshold
	}
	setString(&cfg.ContainerClass, f.ContainerClass)
	if f.PixelRatio != 0 {
		cfg.PixelRatio = f.PixelRatio
	}
}

// Option returns an Option that applies f.
func (f *File) Option() Option {
	return f.Apply
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
