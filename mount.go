package scratch

import (
	"context"
	"image"

	"github.com/gogpu/scratch/surface"
)

// Rect is a rectangle in host client coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Mount is the host element a card is placed in. Bounds is read at the
// start of every stroke so the card follows a mount that moves.
type Mount interface {
	Bounds() Rect
}

// Attacher is implemented by mounts that display the card. Attach is
// called once from New with the container class and the two surfaces,
// reward first so the cover stacks above it.
type Attacher interface {
	Attach(class string, reward, cover *surface.Surface)
}

// FixedMount is a Mount that never moves.
type FixedMount Rect

// Bounds returns the rectangle itself.
func (m FixedMount) Bounds() Rect {
	return Rect(m)
}

// ImageLoader loads a raster image by reference. The loader package
// provides the default implementation.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}
