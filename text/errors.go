package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrInvalidFont is returned when a font shorthand has no pixel size.
	ErrInvalidFont = errors.New("text: invalid font")

	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")
)
