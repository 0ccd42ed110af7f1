package canvas

import (
	"image"
	"image/color"

	"github.com/terravidhal/proto-annot/internal/render"
)

var canvasBackground = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// draw is the raster drawing function: composite the source image at the
// current zoom, then the annotations, then the in-progress draft. A not-
// yet-decoded or failed asset simply leaves the background — the frame
// must never fail because pixel data is late.
func (ac *AnnotationCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = canvasBackground.R
		out.Pix[i+1] = canvasBackground.G
		out.Pix[i+2] = canvasBackground.B
		out.Pix[i+3] = 255
	}

	ac.compositeImage(out, w, h)

	surface := render.NewImageSurface(out)
	selection := ac.state.Store.Selection()
	hidden := ac.state.Store.Hidden()
	showLabels := ac.state.ShowLabels()
	showHandles := ac.state.ShowHandles()

	set := ac.live
	if set == nil {
		set = ac.state.Store.All()
	}
	for _, a := range set {
		if hidden[a.ID] {
			continue
		}
		render.Render(surface, a, ac.vw.Scale, render.Options{
			Selected:    a.ID == selection,
			ShowLabel:   showLabels,
			ShowHandles: showHandles,
		})
	}
	if ac.draft != nil {
		render.Render(surface, *ac.draft, ac.vw.Scale, render.Options{})
	}
	return out
}

// compositeImage draws the zoomed source image with nearest-neighbor
// sampling, matching the pixel-accurate display the hit-testing assumes.
func (ac *AnnotationCanvas) compositeImage(out *image.RGBA, w, h int) {
	asset := ac.state.Asset()
	if asset == nil {
		return
	}
	src := asset.Image()
	if src == nil {
		return
	}
	bounds := src.Bounds()
	zoom := ac.vw.Scale

	for y := 0; y < h; y++ {
		srcY := bounds.Min.Y + int(float64(y)/zoom)
		if srcY < bounds.Min.Y || srcY >= bounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := bounds.Min.X + int(float64(x)/zoom)
			if srcX < bounds.Min.X || srcX >= bounds.Max.X {
				continue
			}
			out.Set(x, y, src.At(srcX, srcY))
		}
	}
}
