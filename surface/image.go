// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// DrawImageScaled draws img stretched to cover the whole surface using the
// current composite operation. The aspect ratio is not preserved.
func (s *Surface) DrawImageScaled(img image.Image) {
	s.DrawImageRect(img, s.Bounds())
}

// DrawImageRect draws img stretched into dst using the current composite
// operation. Scaling uses Catmull-Rom resampling.
func (s *Surface) DrawImageRect(img image.Image, dst image.Rectangle) {
	if s.closed || img == nil || dst.Empty() {
		return
	}
	scaled := image.NewRGBA(dst)
	xdraw.CatmullRom.Scale(scaled, dst, img, img.Bounds(), xdraw.Src, nil)
	s.compositeImage(scaled)
}

// Compose flattens layers bottom to top into a new image, honoring each
// layer's presentation opacity. It is how a host displays stacked surfaces.
// All layers are expected to share the size of the first.
func Compose(layers ...*Surface) *image.RGBA {
	if len(layers) == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	out := image.NewRGBA(layers[0].Bounds())
	for _, l := range layers {
		if l == nil || l.closed || l.opacity == 0 {
			continue
		}
		//nolint:gosec // G115: opacity is clamped to [0, 1]
		mask := image.NewUniform(alphaColor(uint8(l.opacity*255 + 0.5)))
		draw.DrawMask(out, out.Rect, l.img, image.Point{}, mask, image.Point{}, draw.Over)
	}
	return out
}
