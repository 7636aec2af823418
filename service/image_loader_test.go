package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type stubDrive struct {
	data []byte
	err  error
	ids  []string
}

func (d *stubDrive) DownloadImage(_ context.Context, fileID string) ([]byte, error) {
	d.ids = append(d.ids, fileID)
	return d.data, d.err
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestImageLoader_Static(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "logo.png"), pngBytes(t, 4, 3), 0o644))

	loader := NewImageLoader(dir, nil, nil, time.Second)

	img, err := loader.LoadImage(context.Background(), "/assets/logo.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = loader.LoadImage(context.Background(), "/assets/missing.png")
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "fetch", loadErr.Op)

	_, err = loader.LoadImage(context.Background(), "/../../etc/passwd")
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "resolve", loadErr.Op)
}

func TestImageLoader_MissingStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "slides"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "logo.png"), pngBytes(t, 4, 3), 0o644))

	loader := NewImageLoader(dir, nil, nil, time.Second)

	missing := loader.MissingStatic([]string{
		"/assets/logo.png",
		"/assets/option-template.png",
		"/assets/slides",
		"/../outside.png",
	})
	assert.Equal(t, []string{"/assets/option-template.png", "/assets/slides", "/../outside.png"}, missing)

	empty := NewImageLoader(filepath.Join(dir, "nope"), nil, nil, time.Second)
	assert.Len(t, empty.MissingStatic([]string{"/assets/logo.png", "/assets/slides/welcome.jpg"}), 2)
}

func TestImageLoader_HTTP(t *testing.T) {
	good := pngBytes(t, 5, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write(good)
		case "/garbage.png":
			w.Write([]byte("not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewImageLoader(t.TempDir(), srv.Client(), nil, time.Second)
	ctx := context.Background()

	img, err := loader.LoadImage(ctx, srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dy())

	tests := []struct {
		url string
		op  string
	}{
		{srv.URL + "/missing.png", "status"},
		{srv.URL + "/garbage.png", "decode"},
		{"", "resolve"},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			_, err := loader.LoadImage(ctx, tt.url)
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.op, loadErr.Op)
		})
	}
}

func TestImageLoader_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	loader := NewImageLoader(t.TempDir(), srv.Client(), nil, 50*time.Millisecond)
	_, err := loader.LoadImage(context.Background(), srv.URL+"/slow.png")
	assert.Error(t, err)
}

func TestImageLoader_DriveLinks(t *testing.T) {
	data := pngBytes(t, 2, 2)

	t.Run("drive api when configured", func(t *testing.T) {
		drive := &stubDrive{data: data}
		loader := NewImageLoader(t.TempDir(), nil, drive, time.Second)
		_, err := loader.LoadImage(context.Background(), "https://drive.google.com/file/d/abc/view")
		require.NoError(t, err)
		assert.Equal(t, []string{"abc"}, drive.ids)
	})

	t.Run("public thumbnail otherwise", func(t *testing.T) {
		var requested string
		client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			requested = r.URL.String()
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(data)),
				Header:     make(http.Header),
				Request:    r,
			}, nil
		})}
		loader := NewImageLoader(t.TempDir(), client, nil, time.Second)
		_, err := loader.LoadImage(context.Background(), "https://drive.google.com/file/d/xyz/view?usp=sharing")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(requested, "https://drive.google.com/thumbnail?id=xyz"))
	})

	t.Run("drive failure", func(t *testing.T) {
		loader := NewImageLoader(t.TempDir(), nil, &stubDrive{err: errors.New("403")}, time.Second)
		_, err := loader.LoadImage(context.Background(), "https://drive.google.com/file/d/abc/view")
		var loadErr *LoadError
		require.True(t, errors.As(err, &loadErr))
		assert.Equal(t, "fetch", loadErr.Op)
	})
}
