package text

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face is a font at a specific pixel size.
//
// Face is NOT safe for concurrent use: the underlying opentype face caches
// glyph data.
type Face struct {
	spec Spec
	src  *source
	ot   font.Face
}

// NewFace creates a face for spec. Sizes are in pixels.
func NewFace(spec Spec) (*Face, error) {
	if spec.Size <= 0 {
		return nil, ErrInvalidFont
	}
	src, err := sourceFor(spec)
	if err != nil {
		return nil, err
	}

	opts := &opentype.FaceOptions{
		Size:    spec.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	}
	ot, err := opentype.NewFace(src.glyphs, opts)
	if err != nil {
		return nil, err
	}
	return &Face{spec: spec, src: src, ot: ot}, nil
}

// Spec returns the font spec the face was created from.
func (f *Face) Spec() Spec {
	return f.spec
}

// Size returns the font size in pixels.
func (f *Face) Size() float64 {
	return f.spec.Size
}

// Measure returns the shaped advance width of s in pixels.
func (f *Face) Measure(s string) float64 {
	return shapedAdvance(f.src.shaper, s, f.spec.Size)
}

// Metrics returns the ascent and descent in pixels.
func (f *Face) Metrics() (ascent, descent float64) {
	m := f.ot.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// Draw renders s with its top edge at (x, top), like a canvas fillText with
// a "top" baseline. If maxWidth is positive and the text is wider, it is
// condensed horizontally to fit. Draw returns the part of dst it may have
// written.
func (f *Face) Draw(dst draw.Image, s string, x, top, maxWidth float64, col color.Color) image.Rectangle {
	if s == "" || dst == nil {
		return image.Rectangle{}
	}
	ascent, descent := f.Metrics()
	src := image.NewUniform(col)

	width := fixedToFloat(font.MeasureString(f.ot, s))
	if maxWidth <= 0 || width <= maxWidth {
		dot := fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(top + ascent)}
		d := &font.Drawer{Dst: dst, Src: src, Face: f.ot, Dot: dot}
		d.DrawString(s)

		b, _ := font.BoundString(f.ot, s)
		ink := image.Rect(
			(dot.X + b.Min.X).Floor(), (dot.Y + b.Min.Y).Floor(),
			(dot.X + b.Max.X).Ceil(), (dot.Y + b.Max.Y).Ceil(),
		)
		// Glyph masks snap to whole pixels around the dot.
		return ink.Inset(-1).Intersect(dst.Bounds())
	}

	// Render at natural width, then squeeze into maxWidth.
	h := int(math.Ceil(ascent + descent))
	tmp := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(width)), h))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  src,
		Face: f.ot,
		Dot:  fixed.Point26_6{Y: floatToFixed(ascent)},
	}
	d.DrawString(s)

	x0, y0 := int(math.Round(x)), int(math.Round(top))
	r := image.Rect(x0, y0, x0+int(math.Round(maxWidth)), y0+h)
	xdraw.ApproxBiLinear.Scale(dst, r, tmp, tmp.Bounds(), xdraw.Over, nil)
	return r.Intersect(dst.Bounds())
}

// Close releases the face's glyph caches.
func (f *Face) Close() error {
	return f.ot.Close()
}
