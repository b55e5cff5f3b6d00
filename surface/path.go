// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// verb identifies a path element.
type verb uint8

const (
	verbMoveTo verb = iota
	verbLineTo
	verbCubicTo
	verbClose
)

// Path represents a vector path in device pixel coordinates.
//
// Path follows the HTML canvas model: Arc connects to the current point with
// a straight line, and a closed subpath leaves the pen at its start point so
// that the next element opens a new subpath there.
//
// Example:
//
//	p := surface.NewPath()
//	p.Arc(50, 50, 28, 0, 2*math.Pi)
//	p.Close()
type Path struct {
	verbs  []verb
	points []float32
	startX float32
	startY float32
	curX   float32
	curY   float32
	open   bool
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]verb, 0, 16),
		points: make([]float32, 0, 64),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, verbMoveTo)
	p.points = append(p.points, float32(x), float32(y))
	p.startX, p.startY = float32(x), float32(y)
	p.curX, p.curY = float32(x), float32(y)
	p.open = true
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(x, y)
		return
	}
	if !p.open {
		p.MoveTo(float64(p.curX), float64(p.curY))
	}
	p.verbs = append(p.verbs, verbLineTo)
	p.points = append(p.points, float32(x), float32(y))
	p.curX, p.curY = float32(x), float32(y)
}

// CubicTo adds a cubic Bezier curve from the current point.
// (c1x, c1y) and (c2x, c2y) are control points, (x, y) is the endpoint.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(c1x, c1y)
	}
	if !p.open {
		p.MoveTo(float64(p.curX), float64(p.curY))
	}
	p.verbs = append(p.verbs, verbCubicTo)
	p.points = append(p.points,
		float32(c1x), float32(c1y),
		float32(c2x), float32(c2y),
		float32(x), float32(y))
	p.curX, p.curY = float32(x), float32(y)
}

// Close closes the current subpath by connecting to the start point.
func (p *Path) Close() {
	if len(p.verbs) == 0 || !p.open {
		return
	}
	p.verbs = append(p.verbs, verbClose)
	p.curX, p.curY = p.startX, p.startY
	p.open = false
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.startX, p.startY = 0, 0
	p.curX, p.curY = 0, 0
	p.open = false
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Len returns the number of path elements.
func (p *Path) Len() int {
	return len(p.verbs)
}

// Circle adds a closed circle to the path as its own subpath.
func (p *Path) Circle(cx, cy, r float64) {
	const k = 0.5522847498307936
	offset := r * k

	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+offset, cx+offset, cy+r, cx, cy+r)
	p.CubicTo(cx-offset, cy+r, cx-r, cy+offset, cx-r, cy)
	p.CubicTo(cx-r, cy-offset, cx-offset, cy-r, cx, cy-r)
	p.CubicTo(cx+offset, cy-r, cx+r, cy-offset, cx+r, cy)
	p.Close()
}

// Arc adds a circular arc to the path.
// The arc goes from angle1 to angle2 (in radians) around (cx, cy). If the
// path already has a current point, a line joins it to the start of the arc.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}

	x0 := cx + r*math.Cos(angle1)
	y0 := cy + r*math.Sin(angle1)
	if len(p.verbs) == 0 {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	if angle2 == angle1 || r <= 0 {
		return
	}

	const maxAngle = math.Pi / 2
	numSegments := int(math.Ceil((angle2 - angle1) / maxAngle))
	angleStep := (angle2 - angle1) / float64(numSegments)

	for i := 0; i < numSegments; i++ {
		a1 := angle1 + float64(i)*angleStep
		a2 := a1 + angleStep
		p.arcSegment(cx, cy, r, a1, a2)
	}
}

// arcSegment adds a single arc segment (up to 90 degrees).
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	c1x := x1 - alpha*r*sin1
	c1y := y1 + alpha*r*cos1
	c2x := x2 + alpha*r*sin2
	c2y := y2 - alpha*r*cos2

	p.CubicTo(c1x, c1y, c2x, c2y, x2, y2)
}

// Bounds returns the axis-aligned bounding box of the path, including
// control points. Returns zeros if the path is empty.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.points) == 0 {
		return 0, 0, 0, 0
	}

	minX = float64(p.points[0])
	maxX = minX
	minY = float64(p.points[1])
	maxY = minY

	for i := 2; i < len(p.points); i += 2 {
		x := float64(p.points[i])
		y := float64(p.points[i+1])
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	return minX, minY, maxX, maxY
}

// pixelBounds returns the integer pixel rectangle touched by the path,
// grown by one pixel for anti-aliased edges.
func (p *Path) pixelBounds() image.Rectangle {
	if p.IsEmpty() {
		return image.Rectangle{}
	}
	minX, minY, maxX, maxY := p.Bounds()
	return image.Rect(
		int(math.Floor(minX))-1,
		int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1,
		int(math.Ceil(maxY))+1,
	)
}

// rasterize replays the path into z, translated by -origin. Every subpath
// is implicitly closed, as a canvas fill does.
func (p *Path) rasterize(z *vector.Rasterizer, origin image.Point) {
	ox, oy := float32(origin.X), float32(origin.Y)
	i := 0
	open := false
	for _, v := range p.verbs {
		switch v {
		case verbMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(p.points[i]-ox, p.points[i+1]-oy)
			open = true
			i += 2
		case verbLineTo:
			z.LineTo(p.points[i]-ox, p.points[i+1]-oy)
			i += 2
		case verbCubicTo:
			z.CubeTo(
				p.points[i]-ox, p.points[i+1]-oy,
				p.points[i+2]-ox, p.points[i+3]-oy,
				p.points[i+4]-ox, p.points[i+5]-oy)
			i += 6
		case verbClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
}
