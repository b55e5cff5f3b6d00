// Package text draws the reward message of a scratch card.
//
// It understands the CSS font shorthand used in scratch configuration
// ("bold 30px Arial"), scales it to the device pixel ratio, measures text
// with HarfBuzz shaping from github.com/go-text/typesetting, and rasterizes
// glyphs with golang.org/x/image/font/opentype.
//
// Glyphs come from the Go font family (golang.org/x/image/font/gofont);
// the requested family only selects between proportional and monospace.
//
// # Example usage
//
//	spec, err := text.ParseSpec("bold 30px Arial")
//	if err != nil {
//	    return err
//	}
//	face, err := text.NewFace(spec.Scale(2))
//	if err != nil {
//	    return err
//	}
//	defer face.Close()
//
//	w := face.Measure("Jackpot")
//	face.Draw(dst, "Jackpot", (600-w)/2, 100, 600, color.White)
package text
