// Package render draws annotations and their selection decorations onto a
// 2D drawing surface. The Surface interface is the minimal contract any
// backend has to satisfy; the package ships a software backend that
// renders into an *image.RGBA the way the rest of the application expects.
package render

import (
	"image/color"

	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// Surface is a minimal 2D drawing surface. All coordinates are in device
// pixels; the annotation renderer converts image-space geometry before
// calling it. Stroke width is in pixels. A dash length of 0 means a solid
// stroke; a positive value alternates drawn and skipped runs of that many
// pixels.
type Surface interface {
	StrokeLine(a, b geometry.Point2D, col color.RGBA, width, dash float64)
	StrokeRect(r geometry.Rect, col color.RGBA, width, dash float64)
	FillRect(r geometry.Rect, col color.RGBA)
	StrokeEllipse(r geometry.Rect, col color.RGBA, width, dash float64)
	FillEllipse(r geometry.Rect, col color.RGBA)
	StrokePolygon(pts []geometry.Point2D, col color.RGBA, width, dash float64)
	FillPolygon(pts []geometry.Point2D, col color.RGBA)
	DrawText(text string, origin geometry.Point2D, col color.RGBA)
	MeasureText(text string) (w, h float64)
}
