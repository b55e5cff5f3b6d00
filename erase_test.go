package scratch

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/scratch/surface"
)

func newCover(w, h int) *surface.Surface {
	s := surface.New(w, h, 1)
	s.FillColor(color.RGBA{0xcc, 0xcc, 0xcc, 0xff})
	return s
}

func TestPunchErasesCircle(t *testing.T) {
	s := newCover(100, 100)
	r := Punch(s, Stroke{X: 50, Y: 50, Radius: 10}, ModePunch)

	assert.Equal(t, uint8(0), s.AlphaAt(50, 50))
	assert.Equal(t, uint8(0), s.AlphaAt(57, 50))
	assert.Equal(t, uint8(0xff), s.AlphaAt(62, 50))
	assert.Equal(t, uint8(0xff), s.AlphaAt(50, 38))
	assert.True(t, r.In(image.Rect(39, 39, 61, 61)), "dirty rect %v", r)
	assert.Equal(t, surface.SourceOver, s.CompositeOp(), "composite state restored")
}

func TestPunchZeroRadius(t *testing.T) {
	s := newCover(20, 20)
	r := Punch(s, Stroke{X: 10, Y: 10}, ModePunch)
	assert.True(t, r.Empty())
	assert.InDelta(t, 0.0, EstimateCoverage(s), 1e-9)
	assert.True(t, Punch(nil, Stroke{Radius: 3}, ModePunch).Empty())
}

func TestPunchNeverAddsAlpha(t *testing.T) {
	s := newCover(60, 60)
	prev := s.Snapshot()
	for i, st := range []Stroke{{10, 10, 8}, {15, 12, 8}, {40, 40, 20}, {10, 10, 8}} {
		Punch(s, st, ModePunch)
		cur := s.Snapshot()
		for j := 3; j < len(cur.Pix); j += 4 {
			require.LessOrEqual(t, cur.Pix[j], prev.Pix[j], "punch %d byte %d", i, j)
		}
		prev = cur
	}
}

func TestPunchBoundsContainFill(t *testing.T) {
	for _, mode := range []Mode{ModePunch, ModeSector} {
		s := newCover(200, 100)
		s.BeginPath()
		for _, st := range []Stroke{{20, 20, 10}, {80, 60, 10}, {190, 95, 15}, {0, 0, 5}} {
			want := punchBounds(s, st, mode)
			got := Punch(s, st, mode)
			assert.True(t, got.In(want), "%v: %v not in %v", mode, got, want)
		}
	}
}

func TestSectorRefillsWholePath(t *testing.T) {
	s := newCover(100, 40)
	s.BeginPath()
	Punch(s, Stroke{X: 20, Y: 20, Radius: 8}, ModeSector)
	r := Punch(s, Stroke{X: 80, Y: 20, Radius: 8}, ModeSector)

	assert.LessOrEqual(t, r.Min.X, 11, "fill covers the first circle again")
	assert.GreaterOrEqual(t, r.Max.X, 89)
	assert.Equal(t, uint8(0), s.AlphaAt(20, 20))
	assert.Equal(t, uint8(0), s.AlphaAt(80, 20))
}

func TestEstimateCoverage(t *testing.T) {
	s := newCover(300, 150)
	assert.InDelta(t, 0.0, EstimateCoverage(s), 1e-9)

	s.Clear()
	assert.InDelta(t, 100.0, EstimateCoverage(s), 1e-9)

	assert.InDelta(t, 0.0, EstimateCoverage(nil), 1e-9)
}

func TestEstimateCoverageThreshold(t *testing.T) {
	s := surface.New(2, 2, 1)
	s.FillColor(color.NRGBA{A: 127})
	assert.InDelta(t, 100.0, EstimateCoverage(s), 1e-9)

	s.Clear()
	s.FillColor(color.NRGBA{A: 128})
	assert.InDelta(t, 0.0, EstimateCoverage(s), 1e-9)
}

func TestPercentOf(t *testing.T) {
	assert.InDelta(t, 33.33, percentOf(1, 3), 1e-9)
	assert.InDelta(t, 66.67, percentOf(2, 3), 1e-9)
	assert.InDelta(t, 16.42, percentOf(7389, 45000), 1e-9)
	assert.InDelta(t, 0.0, percentOf(5, 0), 1e-9)
}

func TestCoverageCounterMatchesBruteForce(t *testing.T) {
	for _, mode := range []Mode{ModePunch, ModeSector} {
		s := newCover(300, 150)
		var cc coverageCounter
		assert.InDelta(t, 0.0, cc.percent(s), 1e-9)

		s.BeginPath()
		for i := range 60 {
			a := float64(i) * 0.7
			st := Stroke{
				X:      150 + 120*math.Cos(a)*float64(i%7)/6,
				Y:      75 + 60*math.Sin(a*1.3),
				Radius: float64(4 + i%20),
			}
			cc.track(s, punchBounds(s, st, mode), func() { Punch(s, st, mode) })
			require.Equal(t, EstimateCoverage(s), cc.percent(s), "%v step %d", mode, i)
		}
	}
}

func TestCoverageCounterInvalidate(t *testing.T) {
	s := newCover(50, 50)
	var cc coverageCounter
	assert.InDelta(t, 0.0, cc.percent(s), 1e-9)

	s.Clear()
	cc.invalidate()
	assert.InDelta(t, 100.0, cc.percent(s), 1e-9)
}
