package loader

import (
	"context"
	"fmt"
	"image"
	"os"
)

// Static serves preloaded images by reference. Unknown references fail
// with an error wrapping os.ErrNotExist.
type Static map[string]image.Image

// Load implements the scratch image loader contract.
func (s Static) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, ok := s[ref]
	if !ok {
		return nil, fmt.Errorf("loader: %q: %w", ref, os.ErrNotExist)
	}
	return img, nil
}

// Func adapts an ordinary function to the loader contract.
type Func func(ctx context.Context, ref string) (image.Image, error)

// Load calls f(ctx, ref).
func (f Func) Load(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}
