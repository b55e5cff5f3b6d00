package text

import (
	"bytes"
	"fmt"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// source is a parsed font file, shared by every Face built from it.
// Both parsed forms are read-only and safe for concurrent use.
type source struct {
	name   string
	glyphs *opentype.Font // glyph outlines for rasterization
	shaper *gtfont.Font   // tables for HarfBuzz shaping
}

var (
	sourcesMu sync.RWMutex
	sources   = make(map[string]*source)
)

// sourceFor picks the Go font matching spec.
func sourceFor(spec Spec) (*source, error) {
	name, data := goFont(spec)
	return loadSource(name, data)
}

func goFont(spec Spec) (string, []byte) {
	bold, italic := spec.Bold(), spec.Italic()
	if spec.Monospace() {
		switch {
		case bold && italic:
			return "gomonobolditalic", gomonobolditalic.TTF
		case bold:
			return "gomonobold", gomonobold.TTF
		case italic:
			return "gomonoitalic", gomonoitalic.TTF
		default:
			return "gomono", gomono.TTF
		}
	}
	switch {
	case bold && italic:
		return "gobolditalic", gobolditalic.TTF
	case bold:
		return "gobold", gobold.TTF
	case italic:
		return "goitalic", goitalic.TTF
	default:
		return "goregular", goregular.TTF
	}
}

// loadSource parses data once per name and caches the result.
func loadSource(name string, data []byte) (*source, error) {
	// Fast path: check cache with read lock.
	sourcesMu.RLock()
	if s, ok := sources[name]; ok {
		sourcesMu.RUnlock()
		return s, nil
	}
	sourcesMu.RUnlock()

	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	sourcesMu.Lock()
	defer sourcesMu.Unlock()

	// Double-check after acquiring write lock.
	if s, ok := sources[name]; ok {
		return s, nil
	}

	glyphs, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %s: %w", name, err)
	}
	// ParseTTF returns a *Face which embeds the thread-safe *Font.
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font %s for shaping: %w", name, err)
	}

	s := &source{name: name, glyphs: glyphs, shaper: face.Font}
	sources[name] = s
	return s, nil
}
