package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prize.png"), pngBytes(t, 4, 3), 0o600))

	tests := []struct {
		name string
		l    *Loader
		ref  string
	}{
		{"absolute path", New(), filepath.Join(dir, "prize.png")},
		{"relative to base", New(WithBaseDir(dir)), "prize.png"},
		{"file url", New(), "file://" + filepath.ToSlash(filepath.Join(dir, "prize.png"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := tt.l.Load(context.Background(), tt.ref)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDataURI(t *testing.T) {
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 2, 2))
	img, err := New().Load(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())

	_, err = New().Load(context.Background(), "data:image/png;base64")
	assert.ErrorIs(t, err, ErrBadDataURI)
	_, err = New().Load(context.Background(), "data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrBadDataURI)
}

func TestLoadHTTP(t *testing.T) {
	body := pngBytes(t, 5, 5)
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("timestamp")
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	l := New(WithHTTPClient(srv.Client()))
	l.now = func() time.Time { return time.UnixMilli(1700000000123) }

	img, err := l.Load(context.Background(), srv.URL+"/prize.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), img.Bounds())
	assert.Equal(t, "1700000000123", gotQuery)

	_, err = l.Load(context.Background(), srv.URL+"/missing.png")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)

	gotQuery = "unset"
	_, err = New(WithHTTPClient(srv.Client()), WithCacheBust(false)).Load(context.Background(), srv.URL+"/prize.png")
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestLoadHTTPCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithHTTPClient(srv.Client())).Load(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadErrors(t *testing.T) {
	_, err := New().Load(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyURL)

	_, err = New().Load(context.Background(), "ftp://example.com/a.png")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestMaxBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 64, 64), 0o600))

	_, err := New(WithMaxBytes(16)).Load(context.Background(), path)
	assert.ErrorContains(t, err, "exceeds")
}

func TestBustCache(t *testing.T) {
	now := time.UnixMilli(42)
	assert.Equal(t, "https://cdn.test/a.png?timestamp=42", bustCache("https://cdn.test/a.png", now))
	assert.Equal(t, "https://cdn.test/a.png?timestamp=42&v=2", bustCache("https://cdn.test/a.png?v=2", now))
}

func TestSchemeOf(t *testing.T) {
	assert.Equal(t, "https", schemeOf("HTTPS://x"))
	assert.Equal(t, "", schemeOf(`C:\prizes\a.png`))
	assert.Equal(t, "", schemeOf("prizes/a.png"))
	assert.Equal(t, "data", schemeOf("data:,x"))
}

func TestStatic(t *testing.T) {
	img := image.NewUniform(color.White)
	s := Static{"a": img}

	got, err := s.Load(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, img, got)

	_, err = s.Load(context.Background(), "b")
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Load(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFunc(t *testing.T) {
	want := errors.New("boom")
	_, err := Func(func(context.Context, string) (image.Image, error) { return nil, want }).Load(context.Background(), "x")
	assert.ErrorIs(t, err, want)
}

func TestCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prize.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 2, 2), 0o600))

	l := New(WithCache(4))
	first, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	second, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Same(t, first, second)

	st := l.CacheStats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, 1, st.Len)
}

func TestCacheSkipsBustedRemote(t *testing.T) {
	body := pngBytes(t, 3, 3)
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	busted := New(WithHTTPClient(srv.Client()), WithCache(4))
	for range 2 {
		_, err := busted.Load(context.Background(), srv.URL+"/a.png")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), requests.Load())

	plain := New(WithHTTPClient(srv.Client()), WithCache(4), WithCacheBust(false))
	for range 2 {
		_, err := plain.Load(context.Background(), srv.URL+"/a.png")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), requests.Load())
	assert.Zero(t, New().CacheStats().Len)
}
