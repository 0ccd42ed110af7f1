// Package view maps device pointer coordinates to image-space coordinates
// and back, given the current zoom and pan of the canvas.
package view

import (
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

const (
	MinZoom  = 0.1
	MaxZoom  = 10.0
	ZoomStep = 1.25
)

// View is the zoom/pan state of a canvas. Scale is a positive uniform zoom
// factor; Offset is a pan translation in image-space units applied before
// scaling. The view is owned by the caller and passed into every operation
// that converts between spaces.
type View struct {
	Scale  float64
	Offset geometry.Point2D
}

// New returns a view at 1:1 scale with no pan.
func New() View {
	return View{Scale: 1}
}

// forward returns the image→device transform: translate by the pan offset,
// scale by the zoom, then translate to the drawing surface origin. Both
// directions of the mapping derive from this single matrix so they cannot
// drift apart.
func (v View) forward(surfaceOrigin geometry.Point2D) geometry.AffineTransform {
	return geometry.Translation(surfaceOrigin.X, surfaceOrigin.Y).
		Compose(geometry.Scaling(v.Scale, v.Scale)).
		Compose(geometry.Translation(v.Offset.X, v.Offset.Y))
}

// ToDevice converts an image-space point to device coordinates relative to
// the given surface origin.
func (v View) ToDevice(p, surfaceOrigin geometry.Point2D) geometry.Point2D {
	return v.forward(surfaceOrigin).Apply(p)
}

// ToImage converts a device pointer position to image-space coordinates:
// the exact inverse of the render pipeline's forward transform. A
// degenerate scale returns the input unchanged rather than failing.
func (v View) ToImage(device, surfaceOrigin geometry.Point2D) geometry.Point2D {
	inv, ok := v.forward(surfaceOrigin).Inverse()
	if !ok {
		return device
	}
	return inv.Apply(device)
}

// Clamp limits the scale to the supported zoom range.
func (v View) Clamp() View {
	if v.Scale < MinZoom {
		v.Scale = MinZoom
	}
	if v.Scale > MaxZoom {
		v.Scale = MaxZoom
	}
	return v
}

// ZoomIn returns the view scaled up by one zoom step.
func (v View) ZoomIn() View {
	v.Scale *= ZoomStep
	return v.Clamp()
}

// ZoomOut returns the view scaled down by one zoom step.
func (v View) ZoomOut() View {
	v.Scale /= ZoomStep
	return v.Clamp()
}

// Pan returns the view translated by a delta in image-space units.
func (v View) Pan(delta geometry.Point2D) View {
	v.Offset = v.Offset.Add(delta)
	return v
}
