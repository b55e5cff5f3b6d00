package scratch

import (
	"image"
	"math"

	"github.com/gogpu/scratch/surface"
)

// Punch erases one filled circle from cover with destination-out and
// returns the rectangle of pixels it may have changed.
//
// In ModePunch each call fills an independent closed circle. In
// ModeSector the circle is appended to the current path, joined to the
// previous sample by a line, and the whole path is filled again; callers
// start a new path with cover.BeginPath at the start of each stroke.
//
// A zero-radius stroke erases nothing.
func Punch(cover *surface.Surface, st Stroke, mode Mode) image.Rectangle {
	if cover == nil || st.Radius <= 0 {
		return image.Rectangle{}
	}

	cover.Save()
	defer cover.Restore()
	cover.SetCompositeOp(surface.DestinationOut)

	if mode == ModePunch {
		cover.BeginPath()
	}
	cover.Arc(st.X, st.Y, st.Radius, 0, 2*math.Pi)
	if mode == ModePunch {
		cover.ClosePath()
	}
	return cover.Fill()
}

// punchBounds returns a rectangle containing every pixel the next Punch
// of st may change.
func punchBounds(cover *surface.Surface, st Stroke, mode Mode) image.Rectangle {
	minX, minY := st.X-st.Radius, st.Y-st.Radius
	maxX, maxY := st.X+st.Radius, st.Y+st.Radius
	if p := cover.Path(); mode == ModeSector && !p.IsEmpty() {
		x0, y0, x1, y1 := p.Bounds()
		minX, minY = math.Min(minX, x0), math.Min(minY, y0)
		maxX, maxY = math.Max(maxX, x1), math.Max(maxY, y1)
	}
	r := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
	return r.Intersect(cover.Bounds())
}
