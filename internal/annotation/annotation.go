// Package annotation implements the annotation geometry engine: the shape
// model, transform handles, hit-testing, and the interactive resize/rotate
// algorithm. Everything in this package is pure value manipulation; the
// callers own the annotation set and the view state.
package annotation

import (
	"github.com/google/uuid"

	"github.com/terravidhal/proto-annot/pkg/colorutil"
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// Kind identifies the shape variant of an annotation. The set is closed:
// renderer, hit-tester, and transform engine switch exhaustively on it and
// treat anything else as a no-op so older documents stay loadable.
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
)

// Valid reports whether the kind is one the engine knows how to handle.
func (k Kind) Valid() bool {
	switch k {
	case KindRectangle, KindCircle:
		return true
	}
	return false
}

const (
	// MinSize is the floor applied to bounds width/height by the
	// transform engine, in image units.
	MinSize = 10.0

	// CommitMinSize is the smallest drag (per axis) that commits a newly
	// drawn annotation; anything below is discarded as a click.
	CommitMinSize = 5.0
)

// Annotation is a labeled geometric region attached to an image.
//
// Geometry is kept in two representations: Points (the raw two-corner
// gesture, kept for compatibility with documents written before Bounds
// existed) and Bounds (the canonical normalized box). When Bounds is
// present it is authoritative; EnsureBounds migrates old documents on load.
type Annotation struct {
	ID         string             `json:"id"`
	Kind       Kind               `json:"type"`
	Label      string             `json:"label"`
	Color      string             `json:"color"`
	Points     []geometry.Point2D `json:"points"`
	Bounds     *geometry.Rect     `json:"bounds,omitempty"`
	Rotation   float64            `json:"rotation"`
	ScaleX     float64            `json:"scaleX"`
	ScaleY     float64            `json:"scaleY"`
	Confidence *float64           `json:"confidence,omitempty"`
	Notes      string             `json:"notes,omitempty"`
}

// New creates an annotation of the given kind anchored at a single point,
// the state an annotation is in at pointer-down of a draw tool.
func New(kind Kind, label string, anchor geometry.Point2D) Annotation {
	return Annotation{
		ID:     uuid.NewString(),
		Kind:   kind,
		Label:  label,
		Color:  colorutil.FromLabel(label),
		Points: []geometry.Point2D{anchor},
		ScaleX: 1,
		ScaleY: 1,
	}
}

// SetLabel updates the label and re-derives the color from it.
func (a *Annotation) SetLabel(label string) {
	a.Label = label
	a.Color = colorutil.FromLabel(label)
}

// PointsFromBounds returns the two-corner representation of a box:
// top-left followed by bottom-right.
func PointsFromBounds(b geometry.Rect) []geometry.Point2D {
	return []geometry.Point2D{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y + b.Height},
	}
}

// BoundsFromPoints derives a normalized box from the first two points,
// without assuming any corner ordering. Returns false when fewer than two
// points are available.
func BoundsFromPoints(points []geometry.Point2D) (geometry.Rect, bool) {
	if len(points) < 2 {
		return geometry.Rect{}, false
	}
	return geometry.RectFromCorners(points[0], points[1]), true
}

// EnsureBounds is the read-compatibility shim for documents written before
// bounds existed: it derives Bounds from Points once, on load, so all new
// code paths can rely on Bounds alone. Annotations that already carry
// bounds are returned unchanged (modulo normalization). Boundsless circles
// encode center + rim point, so their box is built from the radius rather
// than treating the points as corners.
func (a Annotation) EnsureBounds() Annotation {
	if a.Bounds != nil {
		norm := a.Bounds.Normalize()
		a.Bounds = &norm
		return a
	}
	if len(a.Points) < 2 {
		return a
	}
	if a.Kind == KindCircle {
		r := a.Points[0].Distance(a.Points[1])
		b := geometry.Rect{
			X:      a.Points[0].X - r,
			Y:      a.Points[0].Y - r,
			Width:  2 * r,
			Height: 2 * r,
		}
		a.Bounds = &b
		return a
	}
	b, ok := BoundsFromPoints(a.Points)
	if !ok {
		return a
	}
	a.Bounds = &b
	return a
}

// SyncPoints regenerates Points from Bounds so the two representations
// stay consistent. No-op without bounds.
func (a Annotation) SyncPoints() Annotation {
	if a.Bounds == nil {
		return a
	}
	a.Points = PointsFromBounds(*a.Bounds)
	return a
}

// Clone returns a deep copy. Transform snapshots rely on this so an
// aborted drag can restore the original geometry.
func (a Annotation) Clone() Annotation {
	c := a
	c.Points = append([]geometry.Point2D(nil), a.Points...)
	if a.Bounds != nil {
		b := *a.Bounds
		c.Bounds = &b
	}
	if a.Confidence != nil {
		v := *a.Confidence
		c.Confidence = &v
	}
	return c
}

// Translate moves the annotation by the given delta, keeping Points and
// Bounds in step. Used for whole-shape drags.
func (a Annotation) Translate(delta geometry.Point2D) Annotation {
	a = a.Clone()
	if a.Bounds != nil {
		a.Bounds.X += delta.X
		a.Bounds.Y += delta.Y
		return a.SyncPoints()
	}
	for i := range a.Points {
		a.Points[i] = a.Points[i].Add(delta)
	}
	return a
}

// CommitSize reports whether the annotation's geometry is large enough to
// be committed at pointer-up. Degenerate drags are rejected here rather
// than stored and cleaned up later.
func (a Annotation) CommitSize() bool {
	b := a.Bounds
	if b == nil {
		derived, ok := BoundsFromPoints(a.Points)
		if !ok {
			return false
		}
		b = &derived
	}
	return b.Width >= CommitMinSize && b.Height >= CommitMinSize
}
