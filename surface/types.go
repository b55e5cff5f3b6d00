// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/gogpu/scratch/internal/blend"
)

// CompositeOp selects how new drawing combines with existing pixels.
type CompositeOp uint8

const (
	// SourceOver paints new pixels over existing ones. This is the default.
	SourceOver CompositeOp = iota

	// DestinationOut removes existing alpha where new drawing is opaque.
	// Color of the drawing is irrelevant; only its coverage counts.
	DestinationOut
)

// String returns the canvas name of the operation.
func (op CompositeOp) String() string {
	return op.blendMode().String()
}

func (op CompositeOp) blendMode() blend.BlendMode {
	if op == DestinationOut {
		return blend.BlendDestinationOut
	}
	return blend.BlendSourceOver
}

// Timing is the easing curve of a Transition.
type Timing uint8

const (
	// TimingNone means no animation.
	TimingNone Timing = iota

	// TimingLinear interpolates at constant speed.
	TimingLinear
)

// String returns the CSS name of the timing function.
func (t Timing) String() string {
	if t == TimingLinear {
		return "linear"
	}
	return "none"
}

// Transition describes how a presentation property animates toward its
// new value. The zero value means changes apply instantly.
type Transition struct {
	// Property is the animated property; "all" when empty.
	Property string

	// Duration of the animation.
	Duration time.Duration

	// Timing is the easing curve.
	Timing Timing
}

// IsNone reports whether the transition applies changes instantly.
func (t Transition) IsNone() bool {
	return t.Timing == TimingNone
}

// String formats the transition the way a CSS transition value reads,
// for example "all 0.5s linear".
func (t Transition) String() string {
	if t.IsNone() {
		return "none"
	}
	prop := t.Property
	if prop == "" {
		prop = "all"
	}
	secs := strconv.FormatFloat(t.Duration.Seconds(), 'f', -1, 64)
	return fmt.Sprintf("%s %ss %s", prop, secs, t.Timing)
}

// Progress returns the interpolated fraction [0, 1] of the transition
// after elapsed time. Instant transitions are always complete.
func (t Transition) Progress(elapsed time.Duration) float64 {
	if t.IsNone() || t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(t.Duration)
}

// alphaColor returns an alpha-only color for masks.
func alphaColor(a uint8) color.Alpha {
	return color.Alpha{A: a}
}
