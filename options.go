package scratch

import (
	"log/slog"
	"time"
)

// Option configures a Card during creation.
//
// Example:
//
//	card, err := scratch.New(mount,
//	    scratch.WithSize(320, 160),
//	    scratch.WithThreshold(50),
//	    scratch.OnSuccess(func() { log.Println("revealed") }),
//	)
type Option func(*Config)

// WithConfig replaces the whole configuration. Options after it still
// apply on top.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithSize sets the logical card size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithUnit sets the CSS unit hosts use when sizing the container.
func WithUnit(unit string) Option {
	return func(c *Config) {
		c.Unit = unit
	}
}

// WithRewardColor sets the reward background color. "transparent" leaves
// the reward background unpainted.
func WithRewardColor(color string) Option {
	return func(c *Config) {
		c.RewardColor = color
	}
}

// WithFont sets the reward text font as a CSS shorthand such as
// "bold 30px Arial".
func WithFont(font string) Option {
	return func(c *Config) {
		c.Font = font
	}
}

// WithFontColor sets the reward text color.
func WithFontColor(color string) Option {
	return func(c *Config) {
		c.FontColor = color
	}
}

// WithCoverColor sets the color the cover is painted with when it has no
// image.
func WithCoverColor(color string) Option {
	return func(c *Config) {
		c.CoverColor = color
	}
}

// WithRadius sets the eraser radius in logical pixels.
func WithRadius(r float64) Option {
	return func(c *Config) {
		c.Radius = r
	}
}

// WithMode sets the erasure mode.
func WithMode(m Mode) Option {
	return func(c *Config) {
		c.Mode = m
	}
}

// WithDuration sets the fade duration of the final clear.
func WithDuration(d time.Duration) Option {
	return func(c *Config) {
		c.Duration = d
	}
}

// WithThreshold sets the erased percentage that completes the card.
func WithThreshold(percent float64) Option {
	return func(c *Config) {
		c.Threshold = percent
	}
}

// WithContainerClass sets the class name handed to an Attacher.
func WithContainerClass(class string) Option {
	return func(c *Config) {
		c.ContainerClass = class
	}
}

// WithPixelRatio sets the device pixel ratio used for the surfaces.
func WithPixelRatio(ratio float64) Option {
	return func(c *Config) {
		c.PixelRatio = ratio
	}
}

// WithContent sets the initial reward image, reward text and cover image.
func WithContent(opts ...ContentOption) Option {
	return func(c *Config) {
		v := c.content()
		for _, o := range opts {
			o(&v)
		}
		c.setContent(v)
	}
}

// WithLoader sets the image loader. The default is loader.New().
func WithLoader(l ImageLoader) Option {
	return func(c *Config) {
		c.Loader = l
	}
}

// WithScheduler sets the scheduler for delayed actions. The default
// schedules on the system clock.
func WithScheduler(s Scheduler) Option {
	return func(c *Config) {
		c.Scheduler = s
	}
}

// WithLogger sets a logger for this card only. Without it the card logs
// to the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// OnReady registers a callback invoked once, on the first accepted
// pointer-down.
func OnReady(fn func()) Option {
	return func(c *Config) {
		c.OnReady = fn
	}
}

// OnProgress registers a callback invoked with the erased percentage after
// every accepted pointer-move.
func OnProgress(fn func(percent float64)) Option {
	return func(c *Config) {
		c.OnProgress = fn
	}
}

// OnSuccess registers a callback invoked when a clear completes.
func OnSuccess(fn func()) Option {
	return func(c *Config) {
		c.OnSuccess = fn
	}
}

// Content is the part of a card that Set can replace.
type Content struct {
	RewardImageURL string
	RewardText     string
	CoverImageURL  string
}

// ContentOption changes one field of Content. Fields no option touches
// keep their current value.
type ContentOption func(*Content)

// WithRewardImage sets the reward image URL. An empty URL removes the
// image.
func WithRewardImage(url string) ContentOption {
	return func(v *Content) {
		v.RewardImageURL = url
	}
}

// WithRewardText sets the reward text. An empty string draws no text.
func WithRewardText(s string) ContentOption {
	return func(v *Content) {
		v.RewardText = s
	}
}

// WithCoverImage sets the cover image URL. An empty URL paints the cover
// color instead.
func WithCoverImage(url string) ContentOption {
	return func(v *Content) {
		v.CoverImageURL = url
	}
}
