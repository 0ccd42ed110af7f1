package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// ImageSurface is a software Surface backend drawing into an *image.RGBA.
type ImageSurface struct {
	dst  *image.RGBA
	face font.Face
}

// NewImageSurface wraps an RGBA image as a drawing surface.
func NewImageSurface(dst *image.RGBA) *ImageSurface {
	return &ImageSurface{dst: dst, face: basicfont.Face7x13}
}

// set writes a pixel with bounds checking. Every primitive funnels through
// here so out-of-view geometry clips instead of panicking.
func (s *ImageSurface) set(x, y int, col color.RGBA) {
	b := s.dst.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		s.dst.SetRGBA(x, y, col)
	}
}

// blend alpha-composites a pixel over the existing one.
func (s *ImageSurface) blend(x, y int, col color.RGBA) {
	if col.A == 255 {
		s.set(x, y, col)
		return
	}
	b := s.dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	dst := s.dst.RGBAAt(x, y)
	a := float64(col.A) / 255
	inv := 1 - a
	s.dst.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R) + float64(dst.R)*inv),
		G: uint8(float64(col.G) + float64(dst.G)*inv),
		B: uint8(float64(col.B) + float64(dst.B)*inv),
		A: 255,
	})
}

// StrokeLine draws a line using Bresenham's algorithm with the given
// thickness. The dash counter advances per step so dashes stay even along
// diagonals.
func (s *ImageSurface) StrokeLine(a, b geometry.Point2D, col color.RGBA, width, dash float64) {
	x1, y1 := int(math.Round(a.X)), int(math.Round(a.Y))
	x2, y2 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	thickness := int(math.Max(1, math.Round(width)))
	step := 0
	for {
		if dashOn(step, dash) {
			for t := -thickness / 2; t <= thickness/2; t++ {
				for u := -thickness / 2; u <= thickness/2; u++ {
					s.set(x1+u, y1+t, col)
				}
			}
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
		step++
	}
}

// StrokeRect draws the rectangle outline as four edges.
func (s *ImageSurface) StrokeRect(r geometry.Rect, col color.RGBA, width, dash float64) {
	c := r.Corners()
	for i := range c {
		s.StrokeLine(c[i], c[(i+1)%len(c)], col, width, dash)
	}
}

// FillRect fills the rectangle, alpha-blending translucent colors.
func (s *ImageSurface) FillRect(r geometry.Rect, col color.RGBA) {
	r = r.Normalize()
	x1, y1 := int(math.Round(r.X)), int(math.Round(r.Y))
	x2, y2 := int(math.Round(r.X+r.Width)), int(math.Round(r.Y+r.Height))
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			s.blend(x, y, col)
		}
	}
}

// StrokeEllipse draws the outline of the ellipse inscribed in r as a ring
// between the outer radii and the radii shrunk by the stroke width.
func (s *ImageSurface) StrokeEllipse(r geometry.Rect, col color.RGBA, width, dash float64) {
	r = r.Normalize()
	rx := r.Width / 2
	ry := r.Height / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	c := r.Center()
	w := math.Max(1, width)
	irx := math.Max(rx-w, 0)
	iry := math.Max(ry-w, 0)

	minX, maxX := int(c.X-rx-1), int(c.X+rx+1)
	minY, maxY := int(c.Y-ry-1), int(c.Y+ry+1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - c.X
			dy := float64(y) - c.Y
			outer := (dx*dx)/(rx*rx) + (dy*dy)/(ry*ry)
			if outer > 1 {
				continue
			}
			inner := 2.0
			if irx > 0 && iry > 0 {
				inner = (dx*dx)/(irx*irx) + (dy*dy)/(iry*iry)
			}
			if inner >= 1 && dashOn(x+y, dash) {
				s.set(x, y, col)
			}
		}
	}
}

// FillEllipse fills the ellipse inscribed in r.
func (s *ImageSurface) FillEllipse(r geometry.Rect, col color.RGBA) {
	r = r.Normalize()
	rx := r.Width / 2
	ry := r.Height / 2
	if rx <= 0 || ry <= 0 {
		return
	}
	c := r.Center()
	minY, maxY := int(c.Y-ry), int(c.Y+ry)
	for y := minY; y <= maxY; y++ {
		dy := (float64(y) - c.Y) / ry
		if dy*dy > 1 {
			continue
		}
		span := rx * math.Sqrt(1-dy*dy)
		for x := int(c.X - span); x <= int(c.X+span); x++ {
			s.blend(x, y, col)
		}
	}
}

// StrokePolygon draws the closed outline through the points.
func (s *ImageSurface) StrokePolygon(pts []geometry.Point2D, col color.RGBA, width, dash float64) {
	n := len(pts)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		s.StrokeLine(pts[i], pts[(i+1)%n], col, width, dash)
	}
}

// FillPolygon fills the polygon using a scanline pass over its edge
// intersections.
func (s *ImageSurface) FillPolygon(pts []geometry.Point2D, col color.RGBA) {
	n := len(pts)
	if n < 3 {
		return
	}
	box := geometry.BoundingBox(pts)
	for y := int(box.Y); y <= int(box.Y+box.Height); y++ {
		fy := float64(y)
		var xs []float64
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]
			if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
				t := (fy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		// Insertion sort; intersection counts are tiny.
		for i := 1; i < len(xs); i++ {
			for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
				xs[j], xs[j-1] = xs[j-1], xs[j]
			}
		}
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				s.blend(x, y, col)
			}
		}
	}
}

// DrawText draws a single line of text with its top-left at origin.
func (s *ImageSurface) DrawText(text string, origin geometry.Point2D, col color.RGBA) {
	m := s.face.Metrics()
	d := font.Drawer{
		Dst:  s.dst,
		Src:  image.NewUniform(col),
		Face: s.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(math.Round(origin.X))),
			Y: fixed.I(int(math.Round(origin.Y))) + m.Ascent,
		},
	}
	d.DrawString(text)
}

// MeasureText returns the pixel box a call to DrawText would cover.
func (s *ImageSurface) MeasureText(text string) (w, h float64) {
	adv := font.MeasureString(s.face, text)
	m := s.face.Metrics()
	return float64(adv.Ceil()), float64((m.Ascent + m.Descent).Ceil())
}

// dashOn reports whether the given step along a stroke falls on a drawn
// run of the dash pattern.
func dashOn(step int, dash float64) bool {
	if dash <= 0 {
		return true
	}
	d := int(dash)
	if d < 1 {
		d = 1
	}
	return (step/d)%2 == 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
