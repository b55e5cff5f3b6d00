// Package blend implements the Porter-Duff compositing operators used by
// scratch surfaces.
//
// All operations work with premultiplied alpha values in the range 0-255,
// matching the pixel layout of image.RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// BlendMode represents a Porter-Duff compositing operation.
type BlendMode uint8

const (
	BlendClear          BlendMode = iota // Result: 0 (clear destination)
	BlendSource                          // Result: S (replace with source)
	BlendDestination                     // Result: D (keep destination)
	BlendSourceOver                      // Result: S + D*(1-Sa) [default]
	BlendDestinationIn                   // Result: D*Sa
	BlendDestinationOut                  // Result: D*(1-Sa)
)

// String returns the canvas name of the mode.
func (m BlendMode) String() string {
	switch m {
	case BlendClear:
		return "clear"
	case BlendSource:
		return "copy"
	case BlendDestination:
		return "destination"
	case BlendSourceOver:
		return "source-over"
	case BlendDestinationIn:
		return "destination-in"
	case BlendDestinationOut:
		return "destination-out"
	default:
		return "unknown"
	}
}

// BlendFunc is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
// Parameters:
//   - sr, sg, sb, sa: source color (red, green, blue, alpha)
//   - dr, dg, db, da: destination color (red, green, blue, alpha)
//
// Returns: resulting color (r, g, b, a) after blending.
type BlendFunc func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// GetBlendFunc returns the blend function for the given mode.
// Returns blendSourceOver for unknown modes.
func GetBlendFunc(mode BlendMode) BlendFunc {
	switch mode {
	case BlendClear:
		return blendClear
	case BlendSource:
		return blendSource
	case BlendDestination:
		return blendDestination
	case BlendSourceOver:
		return blendSourceOver
	case BlendDestinationIn:
		return blendDestinationIn
	case BlendDestinationOut:
		return blendDestinationOut
	default:
		return blendSourceOver
	}
}

// Coverage scales a premultiplied color by an 8-bit coverage value, as a
// rasterizer does for partially covered edge pixels.
func Coverage(r, g, b, a, cov byte) (byte, byte, byte, byte) {
	if cov == 255 {
		return r, g, b, a
	}
	return mulDiv255(r, cov), mulDiv255(g, cov), mulDiv255(b, cov), mulDiv255(a, cov)
}

// blendClear clears the destination to transparent black.
func blendClear(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

// blendSource replaces destination with source.
func blendSource(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

// blendDestination keeps destination unchanged.
func blendDestination(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// blendSourceOver composites source over destination (default blend mode).
// Formula: S + D * (1 - Sa)
func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

// blendDestinationIn shows destination where source is opaque.
// Formula: D * Sa
func blendDestinationIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

// blendDestinationOut shows destination where source is transparent.
// Formula: D * (1 - Sa)
func blendDestinationOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two byte values with clamping to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
