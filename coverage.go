package scratch

import (
	"image"
	"math"

	"github.com/gogpu/scratch/surface"
)

// transparentBelow is the alpha under which a cover pixel counts as
// erased.
const transparentBelow = 128

// EstimateCoverage returns the percentage of s whose alpha is below 128,
// rounded to two decimals.
func EstimateCoverage(s *surface.Surface) float64 {
	if s == nil {
		return 0
	}
	b := s.Bounds()
	return percentOf(countTransparent(s, b), b.Dx()*b.Dy())
}

// countTransparent counts the pixels of r whose alpha is below 128.
func countTransparent(s *surface.Surface, r image.Rectangle) int {
	img := s.Image()
	r = r.Intersect(img.Rect)
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y) + 3
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			if img.Pix[i] < transparentBelow {
				n++
			}
		}
	}
	return n
}

func percentOf(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}

// coverageCounter tracks the number of transparent cover pixels across
// punches by recounting only the rectangle each punch changes. Any other
// change to the cover must invalidate it.
type coverageCounter struct {
	valid       bool
	transparent int
}

func (c *coverageCounter) invalidate() {
	c.valid = false
}

// track runs mutate, which may only change pixels inside r, and updates
// the count.
func (c *coverageCounter) track(s *surface.Surface, r image.Rectangle, mutate func()) {
	if !c.valid {
		mutate()
		return
	}
	before := countTransparent(s, r)
	mutate()
	c.transparent += countTransparent(s, r) - before
}

// percent returns the erased percentage of s, recounting the whole
// surface if the counter was invalidated.
func (c *coverageCounter) percent(s *surface.Surface) float64 {
	b := s.Bounds()
	if !c.valid {
		c.transparent = countTransparent(s, b)
		c.valid = true
	}
	return percentOf(c.transparent, b.Dx()*b.Dy())
}
