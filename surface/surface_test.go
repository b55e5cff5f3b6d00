// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opaqueSurface(w, h int) *Surface {
	s := New(w, h, 1)
	s.FillColor(color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff})
	return s
}

func countTransparent(s *Surface) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.AlphaAt(x, y) < 128 {
				n++
			}
		}
	}
	return n
}

func TestNewScalesByPixelRatio(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		ratio        float64
		wantW, wantH int
		wantRatio    float64
	}{
		{"ratio 1", 300, 150, 1, 300, 150, 1},
		{"ratio 2", 300, 150, 2, 600, 300, 2},
		{"fractional", 100, 50, 1.5, 150, 75, 1.5},
		{"non-positive ratio", 10, 10, 0, 10, 10, 1},
		{"degenerate size", 0, 0, 1, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.w, tt.h, tt.ratio)
			assert.Equal(t, tt.wantW, s.Width())
			assert.Equal(t, tt.wantH, s.Height())
			assert.Equal(t, tt.wantRatio, s.PixelRatio())
			assert.Equal(t, 1.0, s.Opacity())
		})
	}
}

func TestFillColor(t *testing.T) {
	s := opaqueSurface(20, 10)
	for _, p := range []image.Point{{0, 0}, {19, 9}, {10, 5}} {
		assert.Equal(t, uint8(0xff), s.AlphaAt(p.X, p.Y))
	}
	assert.Equal(t, SourceOver, s.CompositeOp(), "FillColor must restore composite state")
	assert.Equal(t, uint8(0), s.AlphaAt(-1, 0))
	assert.Equal(t, uint8(0), s.AlphaAt(20, 0))
}

func TestDestinationOutCircle(t *testing.T) {
	s := opaqueSurface(100, 100)
	s.SetCompositeOp(DestinationOut)
	s.BeginPath()
	s.Arc(50, 50, 20, 0, 2*math.Pi)
	s.ClosePath()
	dirty := s.Fill()

	assert.Equal(t, uint8(0), s.AlphaAt(50, 50), "center must be erased")
	assert.Equal(t, uint8(0), s.AlphaAt(60, 50))
	assert.Equal(t, uint8(0xff), s.AlphaAt(5, 5), "far pixel must be untouched")
	assert.Equal(t, uint8(0xff), s.AlphaAt(50, 75))
	assert.True(t, dirty.Overlaps(image.Rect(30, 30, 70, 70)))
	assert.True(t, dirty.In(s.Bounds()))

	// Area of the erased disk should be close to pi*r^2.
	got := float64(countTransparent(s))
	want := math.Pi * 20 * 20
	assert.InDelta(t, want, got, want*0.03)
}

func TestFillClipsToSurface(t *testing.T) {
	s := opaqueSurface(40, 40)
	s.SetCompositeOp(DestinationOut)
	s.BeginPath()
	s.Arc(0, 0, 10, 0, 2*math.Pi)
	s.ClosePath()
	dirty := s.Fill()

	assert.Equal(t, image.Point{}, dirty.Min)
	assert.Equal(t, uint8(0), s.AlphaAt(0, 0))
	assert.Equal(t, uint8(0xff), s.AlphaAt(39, 39))
}

func TestFillEmptyPath(t *testing.T) {
	s := opaqueSurface(10, 10)
	s.BeginPath()
	assert.True(t, s.Fill().Empty())
	assert.Equal(t, 0, countTransparent(s))
}

func TestAccumulatedPathConnectsCircles(t *testing.T) {
	s := opaqueSurface(200, 60)
	s.SetCompositeOp(DestinationOut)
	s.BeginPath()
	s.Arc(30, 30, 10, 0, 2*math.Pi)
	s.Fill()
	s.Arc(170, 30, 10, 0, 2*math.Pi)
	s.Fill()

	// Both disks are erased.
	assert.Equal(t, uint8(0), s.AlphaAt(30, 30))
	assert.Equal(t, uint8(0), s.AlphaAt(170, 30))
	// The connecting edge from (40,30) to (180,30) and the implicit close
	// back to (40,30) enclose no area, so the gap between disks survives.
	assert.Equal(t, uint8(0xff), s.AlphaAt(100, 45))
}

func TestSaveRestore(t *testing.T) {
	s := New(4, 4, 1)
	s.SetCompositeOp(DestinationOut)
	s.Save()
	s.SetCompositeOp(SourceOver)
	s.Restore()
	assert.Equal(t, DestinationOut, s.CompositeOp())

	// Unbalanced Restore is a no-op.
	s.Restore()
	assert.Equal(t, DestinationOut, s.CompositeOp())
}

func TestClear(t *testing.T) {
	s := opaqueSurface(8, 8)
	s.BeginPath()
	s.Arc(4, 4, 2, 0, 2*math.Pi)
	s.Clear()
	assert.Equal(t, 64, countTransparent(s))
	assert.True(t, s.Path().IsEmpty())
}

func TestDrawImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	s := New(30, 20, 1)
	s.DrawImageScaled(src)
	assert.Equal(t, 0, countTransparent(s))
	assert.GreaterOrEqual(t, s.Image().RGBAAt(15, 10).R, uint8(0xfe))
}

func TestDrawImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	s := New(10, 10, 1)
	s.DrawImage(src, 2, 2)
	assert.Equal(t, uint8(0xff), s.AlphaAt(3, 3))
	assert.Equal(t, uint8(0), s.AlphaAt(7, 7))
}

func TestOpacityAndTransition(t *testing.T) {
	s := New(4, 4, 1)
	s.SetOpacity(2)
	assert.Equal(t, 1.0, s.Opacity())
	s.SetOpacity(-1)
	assert.Equal(t, 0.0, s.Opacity())

	assert.True(t, s.Transition().IsNone())
	s.SetTransition(Transition{Duration: 500e6, Timing: TimingLinear})
	assert.Equal(t, "all 0.5s linear", s.Transition().String())
}

func TestCompose(t *testing.T) {
	reward := New(4, 4, 1)
	reward.FillColor(color.RGBA{R: 0xff, A: 0xff})
	cover := New(4, 4, 1)
	cover.FillColor(color.RGBA{B: 0xff, A: 0xff})

	out := Compose(reward, cover)
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, out.RGBAAt(1, 1))

	cover.SetOpacity(0)
	out = Compose(reward, cover)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, out.RGBAAt(1, 1))

	assert.True(t, Compose().Rect.Empty())
}

func TestEncodePNG(t *testing.T) {
	s := opaqueSurface(3, 2)
	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestClose(t *testing.T) {
	s := opaqueSurface(4, 4)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Nil(t, s.Snapshot())
	assert.Equal(t, uint8(0), s.AlphaAt(1, 1))
	s.BeginPath()
	s.Arc(1, 1, 1, 0, 2*math.Pi)
	assert.True(t, s.Fill().Empty())
}
