// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"transparent", color.NRGBA{}},
		{" Transparent ", color.NRGBA{}},
		{"#cccccc", color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}},
		{"#ccc", color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}},
		{"#FFFFFF", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#ff000080", color.NRGBA{R: 0xff, A: 0x80}},
		{"#f008", color.NRGBA{R: 0xff, A: 0x88}},
		{"white", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"rgb(204, 204, 204)", color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}},
		{"rgba(0, 0, 0, 0.5)", color.NRGBA{A: 0x80}},
		{"rgb(100%, 0%, 0%)", color.NRGBA{R: 0xff, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "rgb(1,2)", "rgb(a,b,c)", "nosuchcolor"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidColor))
		})
	}
}

func TestIsTransparent(t *testing.T) {
	assert.True(t, IsTransparent("transparent"))
	assert.True(t, IsTransparent("TRANSPARENT"))
	assert.False(t, IsTransparent("#ffffff"))
}

func TestMustParseColorPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseColor("bogus") })
	assert.NotPanics(t, func() { MustParseColor("black") })
}
