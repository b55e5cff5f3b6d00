// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Transparent is the CSS keyword for a fully transparent color.
const Transparent = "transparent"

// ErrInvalidColor is returned by ParseColor for unrecognized input.
var ErrInvalidColor = errors.New("surface: invalid color")

// IsTransparent reports whether s is the "transparent" keyword.
func IsTransparent(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), Transparent)
}

// ParseColor parses a CSS color: "transparent", a named color ("white"),
// hex notation ("#ccc", "#cccccc", "#cccccc80") or functional notation
// ("rgb(204, 204, 204)", "rgba(0, 0, 0, 0.5)").
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == Transparent:
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgb"):
		return parseFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(v string) (color.NRGBA, error) {
	alpha := uint8(0xff)
	switch len(v) {
	case 5, 9:
		n := (len(v) - 1) / 4
		a, err := strconv.ParseUint(v[len(v)-n:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
		if n == 1 {
			a *= 0x11
		}
		alpha = uint8(a)
		v = v[:len(v)-n]
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunc(v string) (color.NRGBA, error) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
	}
	args := strings.FieldsFunc(v[open+1:len(v)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
	}

	var ch [3]uint8
	for i := range ch {
		f, err := strconv.ParseFloat(strings.TrimSuffix(args[i], "%"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
		if strings.HasSuffix(args[i], "%") {
			f = f * 255 / 100
		}
		ch[i] = clampByte(f)
	}
	alpha := uint8(0xff)
	if len(args) == 4 {
		f, err := strconv.ParseFloat(strings.TrimSuffix(args[3], "%"), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
		if strings.HasSuffix(args[3], "%") {
			f /= 100
		}
		alpha = clampByte(f * 255)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f + 0.5)
	}
}
