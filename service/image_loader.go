package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"happywrap-deck/render"
	"happywrap-deck/utils"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// maxImageBytes bounds one fetched image
const maxImageBytes = 32 << 20

// LoadError describes why an image could not be used
type LoadError struct {
	URL string
	Op  string // resolve, fetch, status, decode
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load image %s: %s: %v", e.URL, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ImageLoader fetches slide images from the static directory, Google Drive or HTTP.
// Each call makes exactly one attempt; nothing is cached between renders.
type ImageLoader struct {
	staticDir string
	client    *http.Client
	drive     DriveServiceInterface
	timeout   time.Duration
}

// Ensure ImageLoader satisfies the renderer's contract
var _ render.ImageLoader = (*ImageLoader)(nil)

// NewImageLoader creates a loader. drive may be nil, in which case Drive links
// are fetched through their public thumbnail URL.
func NewImageLoader(staticDir string, client *http.Client, drive DriveServiceInterface, timeout time.Duration) *ImageLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageLoader{
		staticDir: staticDir,
		client:    client,
		drive:     drive,
		timeout:   timeout,
	}
}

// LoadImage fetches and decodes url, applying EXIF orientation
func (l *ImageLoader) LoadImage(ctx context.Context, url string) (image.Image, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &LoadError{URL: url, Op: "resolve", Err: fmt.Errorf("empty image url")}
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{URL: url, Op: "decode", Err: err}
	}
	return img, nil
}

func (l *ImageLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	switch {
	case strings.HasPrefix(url, "/"):
		return l.readStatic(url)
	case l.drive != nil:
		if id, ok := utils.DriveFileID(url); ok {
			data, err := l.drive.DownloadImage(ctx, id)
			if err != nil {
				return nil, &LoadError{URL: url, Op: "fetch", Err: err}
			}
			return data, nil
		}
	}
	if id, ok := utils.DriveFileID(url); ok && !strings.Contains(url, "/thumbnail") {
		url = utils.DriveThumbnailURL(id)
	}
	return l.fetchHTTP(ctx, url)
}

// readStatic maps "/assets/x.png" to <staticDir>/assets/x.png, refusing paths that leave the directory
func (l *ImageLoader) readStatic(url string) ([]byte, error) {
	path, err := l.staticPath(url)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{URL: url, Op: "fetch", Err: err}
	}
	return data, nil
}

func (l *ImageLoader) staticPath(url string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(url, "/")))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", &LoadError{URL: url, Op: "resolve", Err: fmt.Errorf("path escapes static directory")}
	}
	return filepath.Join(l.staticDir, rel), nil
}

// MissingStatic returns the static URLs among urls with no regular file behind them
func (l *ImageLoader) MissingStatic(urls []string) []string {
	var missing []string
	for _, url := range urls {
		path, err := l.staticPath(url)
		if err != nil {
			missing = append(missing, url)
			continue
		}
		if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
			missing = append(missing, url)
		}
	}
	return missing
}

func (l *ImageLoader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &LoadError{URL: url, Op: "resolve", Err: err}
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{URL: url, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{URL: url, Op: "status", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, &LoadError{URL: url, Op: "fetch", Err: err}
	}
	if len(data) > maxImageBytes {
		return nil, &LoadError{URL: url, Op: "fetch", Err: fmt.Errorf("image exceeds %d bytes", maxImageBytes)}
	}
	return data, nil
}
