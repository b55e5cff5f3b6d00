package text

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Spec is a parsed CSS font shorthand.
type Spec struct {
	// Style is "normal", "italic" or "oblique".
	Style string

	// Weight is "normal", "bold", "bolder", "lighter" or a number 100-900.
	Weight string

	// Size is the font size in pixels.
	Size float64

	// Family is the requested family list, for example "Arial, sans-serif".
	Family string
}

// ParseSpec parses a CSS font shorthand such as "bold 30px Arial" or
// "italic 600 12.5px/1.2 'Noto Sans'". The size token is required.
func ParseSpec(s string) (Spec, error) {
	spec := Spec{Style: "normal", Weight: "normal"}
	fields := strings.Fields(s)
	sizeAt := -1
	for i, f := range fields {
		if size, ok := parsePixelSize(f); ok {
			spec.Size = size
			sizeAt = i
			break
		}
		switch lf := strings.ToLower(f); lf {
		case "italic", "oblique":
			spec.Style = lf
		case "bold", "bolder", "lighter":
			spec.Weight = lf
		case "normal", "small-caps":
		default:
			if n, err := strconv.Atoi(lf); err == nil && n >= 100 && n <= 900 {
				spec.Weight = lf
			}
		}
	}
	if sizeAt < 0 || spec.Size <= 0 {
		return Spec{}, fmt.Errorf("%w: %q has no pixel size", ErrInvalidFont, s)
	}
	family := strings.Join(fields[sizeAt+1:], " ")
	spec.Family = strings.NewReplacer(`"`, "", "'", "").Replace(family)
	return spec, nil
}

// parsePixelSize recognizes "30px" and "30px/1.2".
func parsePixelSize(tok string) (float64, bool) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	num, ok := strings.CutSuffix(strings.ToLower(tok), "px")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Scale returns the spec with its size multiplied by ratio and rounded to
// one decimal, so text stays crisp on high-density surfaces.
func (s Spec) Scale(ratio float64) Spec {
	if ratio <= 0 {
		return s
	}
	s.Size = math.Round(s.Size*ratio*10) / 10
	return s
}

// Bold reports whether the weight selects a bold face.
func (s Spec) Bold() bool {
	switch s.Weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(s.Weight)
	return err == nil && n >= 600
}

// Italic reports whether the style selects an italic face.
func (s Spec) Italic() bool {
	return s.Style == "italic" || s.Style == "oblique"
}

// Monospace reports whether the family asks for a fixed-pitch font.
func (s Spec) Monospace() bool {
	f := strings.ToLower(s.Family)
	return strings.Contains(f, "mono") || strings.Contains(f, "courier")
}

// String formats the spec back into shorthand form.
func (s Spec) String() string {
	var parts []string
	if s.Style != "" && s.Style != "normal" {
		parts = append(parts, s.Style)
	}
	if s.Weight != "" && s.Weight != "normal" {
		parts = append(parts, s.Weight)
	}
	parts = append(parts, strconv.FormatFloat(s.Size, 'f', -1, 64)+"px")
	if s.Family != "" {
		parts = append(parts, s.Family)
	}
	return strings.Join(parts, " ")
}
