package text

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFace(t *testing.T, size float64) *Face {
	t.Helper()
	face, err := NewFace(Spec{Weight: "bold", Size: size, Family: "Arial"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = face.Close() })
	return face
}

func inked(img *image.RGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestNewFaceRejectsZeroSize(t *testing.T) {
	_, err := NewFace(Spec{})
	assert.ErrorIs(t, err, ErrInvalidFont)
}

func TestMeasureScalesWithSize(t *testing.T) {
	small := newTestFace(t, 20)
	large := newTestFace(t, 40)

	w1 := small.Measure("Winner")
	w2 := large.Measure("Winner")
	require.Greater(t, w1, 0.0)
	assert.InDelta(t, 2*w1, w2, 1)
	assert.Equal(t, 0.0, small.Measure(""))
	assert.Greater(t, small.Measure("Winner Winner"), w1)
}

func TestMeasureRTL(t *testing.T) {
	face := newTestFace(t, 20)
	// Hebrew is not covered by the Go fonts; shaping still yields a
	// non-negative advance from notdef glyphs.
	assert.GreaterOrEqual(t, face.Measure("שלום"), 0.0)
}

func TestDrawPlacesTextBelowTop(t *testing.T) {
	face := newTestFace(t, 30)
	dst := image.NewRGBA(image.Rect(0, 0, 300, 150))
	drawn := face.Draw(dst, "WIN", 10, 40, 0, color.White)

	ink := inked(dst)
	require.False(t, ink.Empty())
	assert.Equal(t, ink, ink.Intersect(drawn))
	assert.GreaterOrEqual(t, ink.Min.Y, 40)
	assert.GreaterOrEqual(t, ink.Min.X, 9)
	assert.LessOrEqual(t, ink.Max.X, 10+int(face.Measure("WIN"))+2)
}

func TestDrawCondensesToMaxWidth(t *testing.T) {
	face := newTestFace(t, 30)
	dst := image.NewRGBA(image.Rect(0, 0, 300, 150))
	drawn := face.Draw(dst, "A VERY LONG PRIZE MESSAGE", 0, 0, 100, color.White)

	ink := inked(dst)
	require.False(t, ink.Empty())
	assert.Equal(t, ink, ink.Intersect(drawn))
	assert.LessOrEqual(t, ink.Max.X, 100)
}

func TestDrawEmpty(t *testing.T) {
	face := newTestFace(t, 12)
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.True(t, face.Draw(dst, "", 0, 0, 0, color.White).Empty())
	assert.True(t, face.Draw(nil, "x", 0, 0, 0, color.White).Empty())
	assert.True(t, inked(dst).Empty())
}

func TestMetrics(t *testing.T) {
	face := newTestFace(t, 30)
	ascent, descent := face.Metrics()
	assert.Greater(t, ascent, 0.0)
	assert.Greater(t, descent, 0.0)
	assert.Less(t, ascent+descent, 45.0)
	assert.Equal(t, 30.0, face.Size())
	assert.Equal(t, "Arial", face.Spec().Family)
}
