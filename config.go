package scratch

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gogpu/scratch/surface"
	"github.com/gogpu/scratch/text"
)

// Default configuration values.
const (
	DefaultWidth          = 300
	DefaultHeight         = 150
	DefaultUnit           = "px"
	DefaultRewardColor    = "#ffffff"
	DefaultRewardText     = "特等奖"
	DefaultFont           = "bold 30px Arial"
	DefaultFontColor      = "#ffffff"
	DefaultCoverColor     = "#cccccc"
	DefaultRadius         = 28
	DefaultDuration       = 500 * time.Millisecond
	DefaultThreshold      = 60
	DefaultContainerClass = "jy-scraping-container"
)

// Mode selects how successive punches of one stroke are combined.
type Mode uint8

const (
	// ModePunch erases an independent closed circle for every sample.
	ModePunch Mode = iota

	// ModeSector accumulates every sample of a stroke into one open path,
	// connected by straight segments, and refills the whole path on each
	// sample.
	ModeSector

	// modeUnknown stands in for a mode name that did not parse, so
	// Validate rejects it.
	modeUnknown Mode = 0xff
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePunch:
		return "default"
	case ModeSector:
		return "sector"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. The empty string, "default" and "punch"
// select ModePunch; "sector" selects ModeSector.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "punch":
		return ModePunch, nil
	case "sector":
		return ModeSector, nil
	default:
		return ModePunch, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Config holds everything a Card needs. The zero value is not usable;
// start from DefaultConfig or let New apply the defaults.
//
// Sizes are in logical pixels. The surfaces are allocated at
// Width*PixelRatio by Height*PixelRatio device pixels and the radius and
// font size are scaled by the same ratio.
type Config struct {
	Width  int
	Height int
	Unit   string

	RewardColor    string
	RewardImageURL string
	RewardText     string
	Font           string
	FontColor      string

	CoverColor    string
	CoverImageURL string

	Radius float64
	Mode   Mode

	// Duration of the fade before a completed card is cleared. Zero clears
	// at once after snapping opacity to 0; a negative duration clears at
	// once without touching opacity.
	Duration time.Duration

	// Threshold is the erased percentage, in (0, 100], that completes the
	// card.
	Threshold float64

	ContainerClass string
	PixelRatio     float64

	OnReady    func()
	OnProgress func(percent float64)
	OnSuccess  func()

	Loader    ImageLoader
	Scheduler Scheduler
	Logger    *slog.Logger
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Unit:           DefaultUnit,
		RewardColor:    DefaultRewardColor,
		RewardText:     DefaultRewardText,
		Font:           DefaultFont,
		FontColor:      DefaultFontColor,
		CoverColor:     DefaultCoverColor,
		Radius:         DefaultRadius,
		Mode:           ModePunch,
		Duration:       DefaultDuration,
		Threshold:      DefaultThreshold,
		ContainerClass: DefaultContainerClass,
		PixelRatio:     1,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return configError("size", fmt.Errorf("%dx%d is not positive", c.Width, c.Height))
	}
	if c.Radius <= 0 {
		return configError("radius", fmt.Errorf("%g is not positive", c.Radius))
	}
	if c.Threshold <= 0 || c.Threshold > 100 {
		return configError("threshold", fmt.Errorf("%g is outside (0, 100]", c.Threshold))
	}
	if c.PixelRatio <= 0 {
		return configError("pixel ratio", fmt.Errorf("%g is not positive", c.PixelRatio))
	}
	if c.Mode != ModePunch && c.Mode != ModeSector {
		return configError("mode", errors.New(c.Mode.String()))
	}
	for _, f := range []struct{ name, value string }{
		{"reward color", c.RewardColor},
		{"font color", c.FontColor},
		{"cover color", c.CoverColor},
	} {
		if _, err := surface.ParseColor(f.value); err != nil {
			return configError(f.name, err)
		}
	}
	if _, err := text.ParseSpec(c.Font); err != nil {
		return configError("font", err)
	}
	return nil
}

// content returns the parts of the configuration Set may replace.
func (c *Config) content() Content {
	return Content{
		RewardImageURL: c.RewardImageURL,
		RewardText:     c.RewardText,
		CoverImageURL:  c.CoverImageURL,
	}
}

func (c *Config) setContent(v Content) {
	c.RewardImageURL = v.RewardImageURL
	c.RewardText = v.RewardText
	c.CoverImageURL = v.CoverImageURL
}
