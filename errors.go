package scratch

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the scratch package.
var (
	// ErrInvalidMount is returned by New when no mount is supplied.
	ErrInvalidMount = errors.New("scratch: invalid mount")

	// ErrInvalidArgument is returned when an operation receives an argument
	// of the wrong kind, such as a non-boolean lock value.
	ErrInvalidArgument = errors.New("scratch: invalid argument")

	// ErrInvalidConfig is returned when a configuration value cannot be
	// used: a non-positive size, an unparsable color or font, an unknown
	// mode, or a threshold outside (0, 100].
	ErrInvalidConfig = errors.New("scratch: invalid config")
)

// ImageLoadError reports a reward or cover image that could not be
// fetched or decoded. It is logged rather than returned: the layer is
// painted without the image and the card keeps working.
type ImageLoadError struct {
	Layer string // "reward" or "cover"
	URL   string
	Err   error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("scratch: load %s image %q: %v", e.Layer, e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// configError wraps err as an ErrInvalidConfig for the named field.
func configError(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, field, err)
}
