package render

import (
	"image/color"
	"math"

	"github.com/terravidhal/proto-annot/internal/annotation"
	"github.com/terravidhal/proto-annot/pkg/colorutil"
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

const (
	strokeWidth = 2.0  // constant screen thickness, already in pixels
	dashLength  = 5.0  // dash run for selected shapes, pixels
	handleSize  = 8.0  // handle square size, pixels on screen
	fillAlpha   = 64   // translucent interior
	labelPad    = 3.0  // pixels around label text
	ellipseSegs = 48   // polygon segments for rotated ellipses
)

// Options selects which decorations Render draws.
type Options struct {
	Selected    bool
	ShowLabel   bool
	ShowHandles bool
}

// Render draws one annotation onto the surface at the given view scale.
// It only ever touches the surface: the annotation is taken by value and
// unsupported or degenerate geometry draws nothing. Stroke thickness,
// dashes, handles, and labels are sized in screen pixels so they keep a
// constant apparent size at any zoom.
func Render(s Surface, a annotation.Annotation, scale float64, opts Options) {
	if !a.Kind.Valid() || scale <= 0 {
		return
	}

	box, ok := displayBounds(a)
	if !ok {
		return
	}

	stroke := colorutil.ParseHex(a.Color)
	dash := 0.0
	if opts.Selected {
		stroke = colorutil.Highlight
		dash = dashLength
	}
	fill := colorutil.WithAlpha(stroke, fillAlpha)

	dev := scaleRect(box, scale)

	switch a.Kind {
	case annotation.KindRectangle:
		if a.Rotation != 0 {
			pts := rotatedCorners(dev, a.Rotation)
			s.FillPolygon(pts, fill)
			s.StrokePolygon(pts, stroke, strokeWidth, dash)
		} else {
			s.FillRect(dev, fill)
			s.StrokeRect(dev, stroke, strokeWidth, dash)
		}
	case annotation.KindCircle:
		if a.Rotation != 0 && dev.Width != dev.Height {
			pts := rotatedEllipse(dev, a.Rotation)
			s.FillPolygon(pts, fill)
			s.StrokePolygon(pts, stroke, strokeWidth, dash)
		} else {
			s.FillEllipse(dev, fill)
			s.StrokeEllipse(dev, stroke, strokeWidth, dash)
		}
	}

	if opts.ShowHandles && opts.Selected && a.Bounds != nil {
		renderHandles(s, *a.Bounds, scale)
	}
	if opts.ShowLabel && a.Label != "" && a.Bounds != nil {
		renderLabel(s, a, dev, stroke)
	}
}

// displayBounds picks the box to draw: canonical bounds when present,
// otherwise the legacy raw-point interpretation per kind.
func displayBounds(a annotation.Annotation) (geometry.Rect, bool) {
	if a.Bounds != nil {
		return a.Bounds.Normalize(), true
	}
	if len(a.Points) < 2 {
		return geometry.Rect{}, false
	}
	if a.Kind == annotation.KindCircle {
		// Boundsless circles are true circles: points[0] is the center
		// and points[1] sets a Euclidean radius.
		r := a.Points[0].Distance(a.Points[1])
		return geometry.Rect{
			X:      a.Points[0].X - r,
			Y:      a.Points[0].Y - r,
			Width:  2 * r,
			Height: 2 * r,
		}, true
	}
	return geometry.RectFromCorners(a.Points[0], a.Points[1]), true
}

func renderHandles(s Surface, box geometry.Rect, scale float64) {
	topCenter := geometry.Point2D{X: box.X + box.Width/2, Y: box.Y}.Scale(scale)

	for _, h := range annotation.HandlesFor(box) {
		p := h.Point.Scale(scale)
		square := geometry.Rect{
			X:      p.X - handleSize/2,
			Y:      p.Y - handleSize/2,
			Width:  handleSize,
			Height: handleSize,
		}
		switch h.Kind {
		case annotation.HandleRotation:
			s.StrokeLine(topCenter, p, colorutil.Highlight, 1, 0)
			s.FillEllipse(square, colorutil.Highlight)
		default:
			s.FillRect(square, colorutil.White)
			s.StrokeRect(square, colorutil.Highlight, 1, 0)
		}
	}
}

func renderLabel(s Surface, a annotation.Annotation, dev geometry.Rect, stroke color.RGBA) {
	w, h := s.MeasureText(a.Label)
	bg := geometry.Rect{
		X:      dev.X,
		Y:      dev.Y - h - 2*labelPad,
		Width:  w + 2*labelPad,
		Height: h + 2*labelPad,
	}
	// A shape at the top of the canvas would push the chip off-surface;
	// fall back to drawing it inside the box.
	if bg.Y < 0 {
		bg.Y = math.Max(dev.Y, 0)
	}
	s.FillRect(bg, stroke)
	s.DrawText(a.Label, geometry.Point2D{X: bg.X + labelPad, Y: bg.Y + labelPad}, colorutil.White)
}

func scaleRect(r geometry.Rect, scale float64) geometry.Rect {
	return geometry.Rect{
		X:      r.X * scale,
		Y:      r.Y * scale,
		Width:  r.Width * scale,
		Height: r.Height * scale,
	}
}

func rotatedCorners(r geometry.Rect, radians float64) []geometry.Point2D {
	c := r.Center()
	corners := r.Corners()
	pts := make([]geometry.Point2D, len(corners))
	for i, p := range corners {
		pts[i] = p.RotateAround(c, radians)
	}
	return pts
}

// rotatedEllipse approximates the rotated ellipse inscribed in r with a
// polygon.
func rotatedEllipse(r geometry.Rect, radians float64) []geometry.Point2D {
	c := r.Center()
	rx := r.Width / 2
	ry := r.Height / 2
	pts := make([]geometry.Point2D, ellipseSegs)
	for i := range pts {
		t := float64(i) * 2 * math.Pi / ellipseSegs
		p := geometry.Point2D{X: c.X + rx*math.Cos(t), Y: c.Y + ry*math.Sin(t)}
		pts[i] = p.RotateAround(c, radians)
	}
	return pts
}
