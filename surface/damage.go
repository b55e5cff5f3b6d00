// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math/bits"
	"sync/atomic"
)

// DamageTile is the edge length, in device pixels, of the tiles damage is
// tracked in.
const DamageTile = 32

// damage tracks which tiles of a surface changed since the host last
// asked, as an atomic bitmap with one bit per tile. Marking and taking
// are lock-free so a host may collect damage from its own goroutine.
type damage struct {
	words  []atomic.Uint64
	tilesX int
	tilesY int
	width  int
	height int
}

func newDamage(width, height int) *damage {
	tx := (width + DamageTile - 1) / DamageTile
	ty := (height + DamageTile - 1) / DamageTile
	return &damage{
		words:  make([]atomic.Uint64, (tx*ty+63)/64),
		tilesX: tx,
		tilesY: ty,
		width:  width,
		height: height,
	}
}

func (d *damage) mark(tx, ty int) {
	idx := ty*d.tilesX + tx
	d.words[idx/64].Or(1 << (idx & 63))
}

// markRect marks every tile r touches.
func (d *damage) markRect(r image.Rectangle) {
	r = r.Intersect(image.Rect(0, 0, d.width, d.height))
	if r.Empty() {
		return
	}
	for ty := r.Min.Y / DamageTile; ty <= (r.Max.Y-1)/DamageTile; ty++ {
		for tx := r.Min.X / DamageTile; tx <= (r.Max.X-1)/DamageTile; tx++ {
			d.mark(tx, ty)
		}
	}
}

func (d *damage) markAll() {
	total := d.tilesX * d.tilesY
	for i := range total / 64 {
		d.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		d.words[total/64].Store(uint64(1)<<rem - 1)
	}
}

// take clears the bitmap and returns the damaged area as rectangles, one
// per horizontal run of damaged tiles, clipped to the surface.
func (d *damage) take() []image.Rectangle {
	total := d.tilesX * d.tilesY
	tiles := make([]bool, total)
	found := false
	for w := range d.words {
		word := d.words[w].Swap(0)
		for word != 0 {
			b := bits.TrailingZeros64(word)
			if idx := w*64 + b; idx < total {
				tiles[idx] = true
				found = true
			}
			word &^= 1 << b
		}
	}
	if !found {
		return nil
	}

	var rects []image.Rectangle
	for ty := range d.tilesY {
		row := tiles[ty*d.tilesX : (ty+1)*d.tilesX]
		for tx := 0; tx < d.tilesX; tx++ {
			if !row[tx] {
				continue
			}
			start := tx
			for tx < d.tilesX && row[tx] {
				tx++
			}
			r := image.Rect(start*DamageTile, ty*DamageTile, tx*DamageTile, (ty+1)*DamageTile)
			rects = append(rects, r.Intersect(image.Rect(0, 0, d.width, d.height)))
		}
	}
	return rects
}

// TakeDamage returns the areas changed since the previous call and
// resets the record. A new surface reports itself fully damaged. It is
// safe to call from a goroutine other than the one drawing.
func (s *Surface) TakeDamage() []image.Rectangle {
	if s.damage == nil {
		return nil
	}
	return s.damage.take()
}

// AddDamage records r as changed. Callers that write to Image directly use
// it so TakeDamage still reports their pixels.
func (s *Surface) AddDamage(r image.Rectangle) {
	if s.closed || s.damage == nil {
		return
	}
	s.damage.markRect(r)
}
