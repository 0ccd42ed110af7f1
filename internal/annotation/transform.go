package annotation

import (
	"math"

	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// ApplyTransform computes the annotation geometry that results from
// dragging a handle from start to current (both in image space; the caller
// converts device coordinates first).
//
// The function is pure: the result depends only on its four inputs, and
// the input annotation is never mutated. An annotation without bounds
// fails closed and is returned unchanged — transient inconsistent states
// during a drag must never panic the interactive loop.
func ApplyTransform(a Annotation, h Handle, start, current geometry.Point2D) Annotation {
	if a.Bounds == nil {
		return a
	}

	if h.Kind == HandleRotation {
		return applyRotation(a, start, current)
	}

	delta := current.Sub(start)
	b := *a.Bounds

	switch h.Position {
	case HandleNW:
		b.X += delta.X
		b.Y += delta.Y
		b.Width -= delta.X
		b.Height -= delta.Y
	case HandleNE:
		b.Y += delta.Y
		b.Width += delta.X
		b.Height -= delta.Y
	case HandleSW:
		b.X += delta.X
		b.Width -= delta.X
		b.Height += delta.Y
	case HandleSE:
		b.Width += delta.X
		b.Height += delta.Y
	case HandleN:
		b.Y += delta.Y
		b.Height -= delta.Y
	case HandleS:
		b.Height += delta.Y
	case HandleE:
		b.Width += delta.X
	case HandleW:
		b.X += delta.X
		b.Width -= delta.X
	default:
		return a
	}

	// Dragging a handle past the opposite edge flips the box instead of
	// producing a negative size, which makes the gesture equivalent to
	// having grabbed the opposite handle. Flip first, then floor.
	b = b.Normalize()
	b.Width = math.Max(b.Width, MinSize)
	b.Height = math.Max(b.Height, MinSize)

	out := a.Clone()
	out.Bounds = &b
	return out.SyncPoints()
}

// applyRotation adds the signed angular delta between start and current,
// measured about the box center, to the annotation's rotation. Bounds and
// points are untouched for this handle type.
func applyRotation(a Annotation, start, current geometry.Point2D) Annotation {
	c := a.Bounds.Center()
	startAngle := math.Atan2(start.Y-c.Y, start.X-c.X)
	currentAngle := math.Atan2(current.Y-c.Y, current.X-c.X)

	out := a.Clone()
	out.Rotation += currentAngle - startAngle
	return out
}
