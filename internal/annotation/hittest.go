package annotation

import (
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// HitTest reports whether a point (in image space) falls inside an
// annotation.
//
// When bounds are present both kinds are tested against the bounding box,
// which keeps thin ellipses selectable near their corners. The true-ellipse
// test only applies to boundsless legacy annotations.
func HitTest(p geometry.Point2D, a Annotation) bool {
	if !a.Kind.Valid() {
		return false
	}
	if a.Bounds != nil {
		return a.Bounds.Contains(p)
	}

	// Legacy fallback: no bounds, interpret the raw points per kind.
	if len(a.Points) < 2 {
		return false
	}
	switch a.Kind {
	case KindRectangle:
		return geometry.RectFromCorners(a.Points[0], a.Points[1]).Contains(p)
	case KindCircle:
		// points[0] is the center, points[1] defines a true circular radius.
		radius := a.Points[0].Distance(a.Points[1])
		return p.Distance(a.Points[0]) <= radius
	}
	return false
}

// HandleAt returns the first handle of the box within tolerance of p, in
// HandlesFor enumeration order (corners, edges, rotation). Tolerance is in
// the same units as p; callers hit-testing against screen pixels divide
// the screen tolerance by the view scale first. Returns nil when no handle
// is close enough.
func HandleAt(p geometry.Point2D, b geometry.Rect, tolerance float64) *Handle {
	if tolerance < 0 {
		return nil
	}
	for _, h := range HandlesFor(b) {
		if p.Distance(h.Point) <= tolerance {
			found := h
			return &found
		}
	}
	return nil
}
