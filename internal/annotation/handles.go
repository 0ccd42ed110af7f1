package annotation

import (
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// HandleKind classifies a transform handle.
type HandleKind int

const (
	HandleCorner HandleKind = iota
	HandleEdge
	HandleRotation
)

// HandlePosition identifies where a handle sits on the bounding box.
type HandlePosition string

const (
	HandleNW     HandlePosition = "nw"
	HandleNE     HandlePosition = "ne"
	HandleSW     HandlePosition = "sw"
	HandleSE     HandlePosition = "se"
	HandleN      HandlePosition = "n"
	HandleS      HandlePosition = "s"
	HandleE      HandlePosition = "e"
	HandleW      HandlePosition = "w"
	HandleRotate HandlePosition = "rotate"
)

// Handle is a fixed interaction point on a selected annotation. Handles
// are derived from bounds on demand and owned by the interaction session
// only; they are never stored.
type Handle struct {
	Kind     HandleKind
	Position HandlePosition
	Point    geometry.Point2D
}

// RotationHandleOffset is how far (in image units) the rotation handle
// sits above the box's top-center. The renderer compensates visually for
// zoom; the geometry does not.
const RotationHandleOffset = 30.0

// HandleTolerance is the default hit radius for handles, in screen units.
// Callers divide by the view scale before passing it to HandleAt.
const HandleTolerance = 8.0

// HandlesFor derives the fixed set of nine transform handles from a
// bounding box. The order — corners, then edge midpoints, then rotation —
// is part of the tie-break contract of HandleAt.
func HandlesFor(b geometry.Rect) []Handle {
	cx := b.X + b.Width/2
	cy := b.Y + b.Height/2
	return []Handle{
		{Kind: HandleCorner, Position: HandleNW, Point: geometry.Point2D{X: b.X, Y: b.Y}},
		{Kind: HandleCorner, Position: HandleNE, Point: geometry.Point2D{X: b.X + b.Width, Y: b.Y}},
		{Kind: HandleCorner, Position: HandleSW, Point: geometry.Point2D{X: b.X, Y: b.Y + b.Height}},
		{Kind: HandleCorner, Position: HandleSE, Point: geometry.Point2D{X: b.X + b.Width, Y: b.Y + b.Height}},
		{Kind: HandleEdge, Position: HandleN, Point: geometry.Point2D{X: cx, Y: b.Y}},
		{Kind: HandleEdge, Position: HandleS, Point: geometry.Point2D{X: cx, Y: b.Y + b.Height}},
		{Kind: HandleEdge, Position: HandleE, Point: geometry.Point2D{X: b.X + b.Width, Y: cy}},
		{Kind: HandleEdge, Position: HandleW, Point: geometry.Point2D{X: b.X, Y: cy}},
		{Kind: HandleRotation, Position: HandleRotate, Point: geometry.Point2D{X: cx, Y: b.Y - RotationHandleOffset}},
	}
}

// Cursor hint strings returned to the UI layer. The fyne widget maps them
// onto desktop cursors; any other frontend can map them its own way.
const (
	CursorDefault    = "default"
	CursorMove       = "move"
	CursorCrosshair  = "crosshair"
	CursorResizeNWSE = "nwse-resize"
	CursorResizeNESW = "nesw-resize"
	CursorResizeNS   = "ns-resize"
	CursorResizeEW   = "ew-resize"
	CursorGrab       = "grab"
)

// CursorFor returns the UI cursor hint for a handle position.
func CursorFor(pos HandlePosition) string {
	switch pos {
	case HandleNW, HandleSE:
		return CursorResizeNWSE
	case HandleNE, HandleSW:
		return CursorResizeNESW
	case HandleN, HandleS:
		return CursorResizeNS
	case HandleE, HandleW:
		return CursorResizeEW
	case HandleRotate:
		return CursorGrab
	}
	return CursorDefault
}
