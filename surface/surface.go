// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/scratch/internal/blend"
)

// state is the part of a Surface saved by Save and restored by Restore.
type state struct {
	op   CompositeOp
	fill color.RGBA
}

// Surface is a CPU pixel canvas backed by an *image.RGBA (premultiplied).
//
// Its size is the logical size multiplied by the device pixel ratio. All
// coordinates passed to drawing methods are device pixels.
//
// Besides pixels, a Surface carries presentation state (opacity and
// transition) that a host applies when it displays the layer. Presentation
// state never changes pixel data.
//
// Surfaces are NOT thread-safe.
//
// Example:
//
//	s := surface.New(300, 150, 2)
//	s.FillColor(color.Gray{Y: 0xcc})
//	s.SetCompositeOp(surface.DestinationOut)
//	s.BeginPath()
//	s.Arc(100, 100, 56, 0, 2*math.Pi)
//	s.Fill()
type Surface struct {
	width  int
	height int
	ratio  float64
	img    *image.RGBA

	cur   state
	stack []state
	path  *Path

	raster *vector.Rasterizer
	mask   *image.Alpha
	damage *damage

	opacity    float64
	transition Transition

	closed bool
}

// New creates a transparent surface for a layer of the given logical size
// at the given device pixel ratio. Non-positive ratios are treated as 1.
func New(width, height int, ratio float64) *Surface {
	if ratio <= 0 {
		ratio = 1
	}
	w := int(math.Round(float64(width) * ratio))
	h := int(math.Round(float64(height) * ratio))
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	d := newDamage(w, h)
	d.markAll()

	return &Surface{
		damage:  d,
		width:   w,
		height:  h,
		ratio:   ratio,
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		cur:     state{op: SourceOver, fill: color.RGBA{A: 0xff}},
		path:    NewPath(),
		raster:  vector.NewRasterizer(w, h),
		mask:    image.NewAlpha(image.Rect(0, 0, w, h)),
		opacity: 1,
	}
}

// Width returns the surface width in device pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in device pixels.
func (s *Surface) Height() int {
	return s.height
}

// PixelRatio returns the device pixel ratio the surface was created with.
func (s *Surface) PixelRatio() float64 {
	return s.ratio
}

// Bounds returns the pixel rectangle of the surface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current surface contents.
func (s *Surface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	result := image.NewRGBA(s.img.Rect)
	copy(result.Pix, s.img.Pix)
	return result
}

// AlphaAt returns the alpha channel of the pixel at (x, y), or 0 outside
// the surface.
func (s *Surface) AlphaAt(x, y int) uint8 {
	if s.closed || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0
	}
	return s.img.Pix[s.img.PixOffset(x, y)+3]
}

// Save pushes the composite operation and fill color.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.cur)
}

// Restore pops the state saved by the matching Save.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// SetCompositeOp sets how subsequent drawing combines with existing pixels.
func (s *Surface) SetCompositeOp(op CompositeOp) {
	s.cur.op = op
}

// CompositeOp returns the current composite operation.
func (s *Surface) CompositeOp() CompositeOp {
	return s.cur.op
}

// SetFillColor sets the color used by Fill and FillRect.
func (s *Surface) SetFillColor(c color.Color) {
	s.cur.fill = toRGBA(c)
}

// Clear resets every pixel to transparent black and drops the current
// path. Composite state is kept.
func (s *Surface) Clear() {
	if s.closed {
		return
	}
	clear(s.img.Pix)
	s.path.Clear()
	s.damage.markAll()
}

// FillColor fills the whole surface with c using the current composite
// operation.
func (s *Surface) FillColor(c color.Color) {
	s.Save()
	s.SetFillColor(c)
	s.FillRect(s.Bounds())
	s.Restore()
}

// FillRect fills r with the current fill color and composite operation.
func (s *Surface) FillRect(r image.Rectangle) {
	if s.closed {
		return
	}
	r = r.Intersect(s.Bounds())
	s.damage.markRect(r)
	fn := blend.GetBlendFunc(s.cur.op.blendMode())
	c := s.cur.fill
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			p := s.img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = fn(c.R, c.G, c.B, c.A, p[0], p[1], p[2], p[3])
		}
	}
}

// BeginPath discards the current path.
func (s *Surface) BeginPath() {
	s.path.Clear()
}

// ClosePath closes the current subpath.
func (s *Surface) ClosePath() {
	s.path.Close()
}

// Arc appends a circular arc to the current path, joined to the current
// point by a line, as the canvas arc operation does.
func (s *Surface) Arc(cx, cy, r, angle1, angle2 float64) {
	s.path.Arc(cx, cy, r, angle1, angle2)
}

// Path returns the current path.
func (s *Surface) Path() *Path {
	return s.path
}

// Fill fills the current path with the current fill color and composite
// operation using the non-zero rule. The path is kept, so a later Fill
// paints the accumulated path again. Fill returns the rectangle of pixels
// it may have changed.
func (s *Surface) Fill() image.Rectangle {
	if s.closed || s.path.IsEmpty() {
		return image.Rectangle{}
	}
	r := s.path.pixelBounds().Intersect(s.Bounds())
	if r.Empty() {
		return image.Rectangle{}
	}

	s.raster.Reset(r.Dx(), r.Dy())
	s.raster.DrawOp = draw.Src
	s.path.rasterize(s.raster, r.Min)
	s.raster.Draw(s.mask, r, image.Opaque, image.Point{})

	s.compositeMask(r)
	s.damage.markRect(r)
	return r
}

// compositeMask blends the fill color through the coverage mask within r.
func (s *Surface) compositeMask(r image.Rectangle) {
	fn := blend.GetBlendFunc(s.cur.op.blendMode())
	c := s.cur.fill
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := s.mask.PixOffset(r.Min.X, y)
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i, mi = x+1, i+4, mi+1 {
			cov := s.mask.Pix[mi]
			if cov == 0 {
				continue
			}
			sr, sg, sb, sa := blend.Coverage(c.R, c.G, c.B, c.A, cov)
			p := s.img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = fn(sr, sg, sb, sa, p[0], p[1], p[2], p[3])
		}
	}
}

// DrawImage composites img over the surface using the current composite
// operation, at its own size with its top-left corner at (x, y).
func (s *Surface) DrawImage(img image.Image, x, y int) {
	if s.closed || img == nil {
		return
	}
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(x, y, x+b.Dx(), y+b.Dy()))
	draw.Draw(src, src.Rect, img, b.Min, draw.Src)
	s.compositeImage(src)
}

// compositeImage blends src (in surface coordinates) onto the surface.
func (s *Surface) compositeImage(src *image.RGBA) {
	r := src.Rect.Intersect(s.Bounds())
	s.damage.markRect(r)
	fn := blend.GetBlendFunc(s.cur.op.blendMode())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		i := s.img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i, si = x+1, i+4, si+4 {
			q := src.Pix[si : si+4 : si+4]
			p := s.img.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = fn(q[0], q[1], q[2], q[3], p[0], p[1], p[2], p[3])
		}
	}
}

// SetOpacity sets the presentation opacity, clamped to [0, 1].
func (s *Surface) SetOpacity(v float64) {
	s.opacity = math.Max(0, math.Min(1, v))
}

// Opacity returns the presentation opacity.
func (s *Surface) Opacity() float64 {
	return s.opacity
}

// SetTransition sets how presentation changes animate.
func (s *Surface) SetTransition(t Transition) {
	s.transition = t
}

// Transition returns the current presentation transition.
func (s *Surface) Transition() Transition {
	return s.transition
}

// EncodePNG writes the surface pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

// SavePNG saves the surface pixels to a PNG file.
func (s *Surface) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return s.EncodePNG(f)
}

// Close releases the pixel buffers. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.img = image.NewRGBA(image.Rectangle{})
	s.mask = nil
	s.raster = nil
	return nil
}

// toRGBA converts any color to premultiplied 8-bit RGBA.
func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	r, g, b, a := c.RGBA()
	//nolint:gosec // G115: safe - r>>8 is always in [0, 255]
	return color.RGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(a >> 8),
	}
}
