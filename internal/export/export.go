// Package export flattens a document into shareable artifacts: a PNG with
// the annotations burned in, a standalone annotation JSON, and a per-label
// statistics summary.
package export

import (
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/terravidhal/proto-annot/internal/annotation"
	"github.com/terravidhal/proto-annot/internal/render"
)

// Snapshot composites the source image and the given annotations at 1:1
// scale into a new RGBA image. Hidden ids are skipped; a nil source image
// yields nil (the caller should not export an unloaded asset).
func Snapshot(src image.Image, set []annotation.Annotation, hidden map[string]bool, showLabels bool) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)

	surface := render.NewImageSurface(out)
	for _, a := range set {
		if hidden[a.ID] {
			continue
		}
		render.Render(surface, a, 1.0, render.Options{ShowLabel: showLabels})
	}
	return out
}

// WritePNG writes a snapshot to disk.
func WritePNG(path string, img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("nothing to export: image not ready")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// WriteJSON writes the annotation set alone as indented JSON, for
// consumers that do not care about the document wrapper.
func WriteJSON(path string, set []annotation.Annotation) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode annotations: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
