// Package loader fetches and decodes the raster images drawn on scratch
// card layers.
//
// A Loader resolves four kinds of references:
//
//   - data URIs ("data:image/png;base64,...")
//   - http and https URLs, fetched with the request context
//   - file URLs ("file:///srv/prize.png")
//   - plain paths, resolved against an optional base directory
//
// PNG, JPEG and GIF are decoded by the standard library; WebP, BMP and TIFF
// by golang.org/x/image. WithCache keeps decoded images in an LRU.
package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/scratch/internal/cache"
)

// Loader errors.
var (
	// ErrEmptyURL is returned when Load is called without a reference.
	ErrEmptyURL = errors.New("loader: empty url")

	// ErrEmptyData is returned when the fetched payload is empty.
	ErrEmptyData = errors.New("loader: empty data")

	// ErrUnsupportedScheme is returned for URL schemes the loader cannot fetch.
	ErrUnsupportedScheme = errors.New("loader: unsupported scheme")

	// ErrBadDataURI is returned for malformed data URIs.
	ErrBadDataURI = errors.New("loader: malformed data uri")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("loader: GET %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// DefaultMaxBytes caps the size of a fetched image.
const DefaultMaxBytes = 32 << 20

// Loader loads images by reference. The zero value is not usable; call New.
// A Loader is safe for concurrent use.
type Loader struct {
	client    *http.Client
	baseDir   string
	cacheBust bool
	maxBytes  int64
	now       func() time.Time
	images    *cache.LRU[string, image.Image]
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http and https URLs.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// WithCacheBust appends a "timestamp" query parameter holding the current
// Unix time in milliseconds to every remote URL, so intermediaries never
// serve a stale prize image. Enabled by default.
func WithCacheBust(enabled bool) Option {
	return func(l *Loader) {
		l.cacheBust = enabled
	}
}

// WithMaxBytes caps the payload size read from any source.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithCache keeps up to n decoded images in memory, keyed by reference.
// Remote images are cached only when cache busting is disabled.
func WithCache(n int) Option {
	return func(l *Loader) {
		l.images = cache.New[string, image.Image](n)
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:    &http.Client{Timeout: 30 * time.Second},
		cacheBust: true,
		maxBytes:  DefaultMaxBytes,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes the image referenced by ref.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyURL
	}

	scheme := schemeOf(ref)
	cached := l.images != nil && (!l.cacheBust || !isRemote(scheme))
	if cached {
		if img, ok := l.images.Get(ref); ok {
			return img, nil
		}
	}

	data, err := l.read(ctx, scheme, ref)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if cached {
		l.images.Set(ref, img)
	}
	return img, nil
}

// read returns the raw bytes behind ref.
func (l *Loader) read(ctx context.Context, scheme, ref string) ([]byte, error) {
	switch scheme {
	case "data":
		return decodeDataURI(ref)
	case "http", "https":
		return l.fetch(ctx, ref)
	case "file":
		u, err := url.Parse(ref)
		if err != nil {
			return nil, err
		}
		return l.readFile(u.Path)
	case "":
		return l.readFile(l.resolve(ref))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

// CacheStats returns the image cache counters, or zero Stats when caching
// is disabled.
func (l *Loader) CacheStats() cache.Stats {
	if l.images == nil {
		return cache.Stats{}
	}
	return l.images.Stats()
}

func isRemote(scheme string) bool {
	return scheme == "http" || scheme == "https"
}

// Decode decodes an image from data, auto-detecting the format.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loader: decode: %w", err)
	}
	return img, nil
}

func schemeOf(ref string) string {
	i := strings.IndexByte(ref, ':')
	// Single letters are Windows drive names, not schemes.
	if i <= 1 {
		return ""
	}
	s := strings.ToLower(ref[:i])
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return ""
		}
	}
	return s
}

func (l *Loader) resolve(path string) string {
	if l.baseDir == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(l.baseDir, path)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("loader: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return l.readAll(f)
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("loader: payload exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	target := ref
	if l.cacheBust {
		target = bustCache(ref, l.now())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: ref, Code: resp.StatusCode}
	}
	return l.readAll(resp.Body)
}

// bustCache adds timestamp=<unix millis> to the query of ref.
func bustCache(ref string, now time.Time) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	q := u.Query()
	q.Set("timestamp", strconv.FormatInt(now.UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// decodeDataURI extracts the payload of "data:[<mime>][;base64],<data>".
func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(ref[len("data:"):], ",")
	if !ok {
		return nil, ErrBadDataURI
	}
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadDataURI, err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDataURI, err)
	}
	return []byte(s), nil
}
