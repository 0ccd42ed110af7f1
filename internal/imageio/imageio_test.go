package imageio

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestPNG(t, 32, 24)

	a, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !a.Ready() {
		t.Fatal("synchronous load must be ready")
	}
	if w, h := a.Size(); w != 32 || h != 24 {
		t.Errorf("size = %dx%d, want 32x24", w, h)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("loading a missing file must fail")
	}
}

func TestLoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not pixels"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("decoding junk must fail")
	}
}

func TestLoadAsync(t *testing.T) {
	path := writeTestPNG(t, 16, 16)

	done := make(chan *Asset, 1)
	a := LoadAsync(path, func(a *Asset) { done <- a })

	select {
	case got := <-done:
		if got != a {
			t.Error("callback received a different asset")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("decode callback never fired")
	}
	if !a.Ready() || a.Err() != nil {
		t.Errorf("asset not ready after callback: err=%v", a.Err())
	}
}

func TestLoadAsyncFailure(t *testing.T) {
	done := make(chan struct{})
	a := LoadAsync(filepath.Join(t.TempDir(), "missing.png"), func(*Asset) { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("decode callback never fired")
	}
	if a.Ready() {
		t.Error("failed decode must not be ready")
	}
	if a.Err() == nil {
		t.Error("failed decode must record its error")
	}
	if w, h := a.Size(); w != 0 || h != 0 {
		t.Errorf("size of failed asset = %dx%d, want zeros", w, h)
	}
}

func TestThumbnail(t *testing.T) {
	big := image.NewRGBA(image.Rect(0, 0, 400, 200))
	thumb := Thumbnail(big, 100)
	if b := thumb.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("thumbnail = %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	tall := image.NewRGBA(image.Rect(0, 0, 100, 300))
	thumb = Thumbnail(tall, 60)
	if b := thumb.Bounds(); b.Dy() != 60 || b.Dx() != 20 {
		t.Errorf("tall thumbnail = %dx%d, want 20x60", b.Dx(), b.Dy())
	}

	small := image.NewRGBA(image.Rect(0, 0, 30, 30))
	if got := Thumbnail(small, 100); got != image.Image(small) {
		t.Error("small image must be returned unchanged")
	}
}
