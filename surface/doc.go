// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the CPU pixel canvas that scratch layers are
// drawn on.
//
// A Surface follows the HTML canvas model closely enough that erasing code
// reads like its browser counterpart: a current path built with Arc and
// ClosePath, a composite operation (SourceOver or DestinationOut), and a
// Save/Restore stack. Pixels live in a premultiplied *image.RGBA so alpha
// can be read back directly after every operation.
//
// # Rasterization
//
// Paths are rasterized with golang.org/x/image/vector into an 8-bit
// coverage mask limited to the path's bounding box, then blended with the
// Porter-Duff operators from internal/blend. Fill reports the rectangle it
// touched so callers can maintain incremental statistics.
//
// # Presentation
//
// Opacity and Transition describe how a host should display the layer
// (for example a linear fade). They never modify pixels; Compose applies
// opacity when flattening layers for export.
//
// # Colors
//
// ParseColor understands the CSS forms used in configuration files:
// named colors, hex, rgb()/rgba() and the "transparent" keyword.
package surface
