// Package imageio loads the raster images annotations are drawn over and
// produces list thumbnails. Decoding runs off the UI goroutine; the canvas
// renders nothing for an asset until it is ready.
package imageio

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"
)

// Asset is a raster image referenced by a document. Image is nil until the
// decode finishes; Err records a failed decode. Both are guarded so the
// render path can poll from the UI goroutine while decoding runs elsewhere.
type Asset struct {
	Path string

	mu  sync.RWMutex
	img image.Image
	err error
}

// Ready reports whether the pixel data is available.
func (a *Asset) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.img != nil
}

// Image returns the decoded pixels, or nil while loading or after a
// failure. Callers must treat nil as "draw nothing", never as fatal.
func (a *Asset) Image() image.Image {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.img
}

// Err returns the decode error, if any.
func (a *Asset) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.err
}

// Size returns the pixel dimensions, or zeros while not ready.
func (a *Asset) Size() (w, h int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.img == nil {
		return 0, 0
	}
	b := a.img.Bounds()
	return b.Dx(), b.Dy()
}

// Load decodes an image synchronously. PNG, JPEG, and TIFF go through
// image.Decode; WebP is dispatched on extension.
func Load(path string) (*Asset, error) {
	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	return &Asset{Path: path, img: img}, nil
}

// LoadAsync returns an asset immediately and decodes in the background,
// invoking onDone (from the decode goroutine) either way. The asset
// no-ops in the renderer until the decode lands.
func LoadAsync(path string, onDone func(*Asset)) *Asset {
	a := &Asset{Path: path}
	go func() {
		img, err := decode(path)
		a.mu.Lock()
		a.img = img
		a.err = err
		a.mu.Unlock()
		if onDone != nil {
			onDone(a)
		}
	}()
	return a
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		img, err := webp.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode webp: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Thumbnail scales an image down to fit within maxDim on its longer side,
// preserving aspect ratio. Images already small enough are returned as-is.
func Thumbnail(img image.Image, maxDim int) image.Image {
	if img == nil || maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	if b.Dx() >= b.Dy() {
		return imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	}
	return imaging.Resize(img, 0, maxDim, imaging.Lanczos)
}
