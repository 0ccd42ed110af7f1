// Package canvas provides the annotation canvas widget: an image display
// with zoom, pan, and interactive drawing/reshaping of annotations.
package canvas

import (
	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/terravidhal/proto-annot/internal/annotation"
	"github.com/terravidhal/proto-annot/internal/app"
	"github.com/terravidhal/proto-annot/internal/document"
	"github.com/terravidhal/proto-annot/internal/imageio"
	"github.com/terravidhal/proto-annot/internal/interaction"
	"github.com/terravidhal/proto-annot/internal/view"
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// AnnotationCanvas displays the image with its annotations and feeds
// pointer gestures into the interaction session.
type AnnotationCanvas struct {
	widget.BaseWidget

	state   *app.State
	session *interaction.Session
	vw      view.View

	// Live set mirrors the store while a gesture is in progress; the
	// result is written back to the store at pointer-up.
	live   []annotation.Annotation
	draft  *annotation.Annotation
	cursor string

	raster    *fynecanvas.Raster
	content   *pointerContent
	scroll    *zoomScroll
	scheduler *interaction.RedrawScheduler
	imgSize   fyne.Size

	onZoomChange func(zoom float64)
}

// New creates the canvas bound to the application state.
func New(state *app.State) *AnnotationCanvas {
	ac := &AnnotationCanvas{
		state:   state,
		session: interaction.NewSession(),
		vw:      view.New(),
		imgSize: fyne.NewSize(400, 300),
		cursor:  annotation.CursorDefault,
	}

	ac.raster = fynecanvas.NewRaster(ac.draw)
	ac.raster.ScaleMode = fynecanvas.ImageScalePixels
	ac.raster.SetMinSize(ac.imgSize)

	ac.content = newPointerContent(ac, ac.raster)
	ac.scroll = newZoomScroll(ac.content, ac)
	ac.scheduler = interaction.NewRedrawScheduler(interaction.DefaultFrameInterval, ac.raster.Refresh)

	// Any store change invalidates the frame; the scheduler coalesces.
	for _, ev := range []document.EventType{
		document.EventAnnotationsChanged,
		document.EventSelectionChanged,
		document.EventVisibilityChanged,
		document.EventLoaded,
	} {
		state.Store.On(ev, func(interface{}) { ac.Invalidate() })
	}
	state.OnImageReady(func(*imageio.Asset) {
		ac.updateContentSize()
		ac.Invalidate()
	})

	ac.ExtendBaseWidget(ac)
	return ac
}

// Container returns the scrollable container for embedding in layouts.
func (ac *AnnotationCanvas) Container() fyne.CanvasObject {
	return ac.scroll
}

// Invalidate requests a coalesced redraw.
func (ac *AnnotationCanvas) Invalidate() {
	ac.scheduler.Request()
}

// Close cancels any pending redraw. Call when the owning window is torn
// down.
func (ac *AnnotationCanvas) Close() {
	ac.scheduler.Stop()
}

// Zoom returns the current zoom factor.
func (ac *AnnotationCanvas) Zoom() float64 {
	return ac.vw.Scale
}

// SetZoom sets the zoom factor, clamped to the supported range.
func (ac *AnnotationCanvas) SetZoom(zoom float64) {
	ac.vw.Scale = zoom
	ac.vw = ac.vw.Clamp()
	ac.updateContentSize()
	if ac.onZoomChange != nil {
		ac.onZoomChange(ac.vw.Scale)
	}
}

// ZoomIn increases the zoom level by one step.
func (ac *AnnotationCanvas) ZoomIn() { ac.SetZoom(ac.vw.ZoomIn().Scale) }

// ZoomOut decreases the zoom level by one step.
func (ac *AnnotationCanvas) ZoomOut() { ac.SetZoom(ac.vw.ZoomOut().Scale) }

// FitToWindow adjusts zoom so the whole image fits the visible area.
func (ac *AnnotationCanvas) FitToWindow() {
	asset := ac.state.Asset()
	if asset == nil || !asset.Ready() {
		return
	}
	w, h := asset.Size()
	if w == 0 || h == 0 {
		return
	}
	viewSize := ac.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}
	zoomX := float64(viewSize.Width) / float64(w)
	zoomY := float64(viewSize.Height) / float64(h)
	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	ac.SetZoom(zoom * 0.95)
}

// OnZoomChange sets a callback for zoom changes.
func (ac *AnnotationCanvas) OnZoomChange(callback func(zoom float64)) {
	ac.onZoomChange = callback
}

// pointerDown/pointerMove/pointerUp receive positions already converted
// to image space.

func (ac *AnnotationCanvas) pointerDown(p geometry.Point2D) {
	res := ac.session.PointerDown(ac.input(p))
	ac.applyLive(res)
	ac.state.Store.SetSelection(res.Selection)
}

func (ac *AnnotationCanvas) pointerMove(p geometry.Point2D) {
	if !ac.session.Active() {
		ac.setCursor(ac.session.Cursor(ac.input(p)))
		return
	}
	res := ac.session.PointerMove(ac.input(p))
	ac.applyLive(res)
}

func (ac *AnnotationCanvas) pointerUp(p geometry.Point2D) {
	res := ac.session.PointerUp(ac.input(p))
	if res.Changed {
		ac.state.Store.Replace(res.Annotations)
	}
	ac.state.Store.SetSelection(res.Selection)
	ac.live = nil
	ac.draft = nil
	ac.setCursor(res.Cursor)
	ac.Invalidate()
}

func (ac *AnnotationCanvas) input(p geometry.Point2D) interaction.Input {
	return interaction.Input{
		Point:       p,
		Tool:        ac.state.Tool(),
		Label:       ac.state.ActiveLabel(),
		Annotations: ac.state.Store.All(),
		Selection:   ac.state.Store.Selection(),
		Hidden:      ac.state.Store.Hidden(),
		Scale:       ac.vw.Scale,
	}
}

func (ac *AnnotationCanvas) applyLive(res interaction.Result) {
	ac.live = res.Annotations
	ac.draft = res.Draft
	ac.setCursor(res.Cursor)
	ac.Invalidate()
}

func (ac *AnnotationCanvas) setCursor(hint string) {
	if ac.cursor != hint {
		ac.cursor = hint
	}
}

// toImage converts a pointer event position (viewport-relative) into
// image-space coordinates.
func (ac *AnnotationCanvas) toImage(pos fyne.Position) geometry.Point2D {
	offset := ac.scroll.Offset()
	device := geometry.Point2D{
		X: float64(pos.X + offset.X),
		Y: float64(pos.Y + offset.Y),
	}
	return ac.vw.ToImage(device, geometry.Point2D{})
}

// updateContentSize resizes the raster to the zoomed image dimensions.
func (ac *AnnotationCanvas) updateContentSize() {
	asset := ac.state.Asset()
	if asset == nil || !asset.Ready() {
		ac.imgSize = fyne.NewSize(400, 300)
	} else {
		w, h := asset.Size()
		ac.imgSize = fyne.NewSize(
			float32(float64(w)*ac.vw.Scale),
			float32(float64(h)*ac.vw.Scale),
		)
	}

	ac.raster.SetMinSize(ac.imgSize)
	ac.raster.Resize(ac.imgSize)
	if ac.content != nil {
		ac.content.Resize(ac.imgSize)
		ac.content.Refresh()
	}
	ac.Invalidate()
	if ac.scroll != nil {
		ac.scroll.Refresh()
	}
}

// CreateRenderer implements fyne.Widget.
func (ac *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &annotationCanvasRenderer{canvas: ac}
}

type annotationCanvasRenderer struct {
	canvas *AnnotationCanvas
}

func (r *annotationCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
}

func (r *annotationCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *annotationCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *annotationCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *annotationCanvasRenderer) Destroy() {
	r.canvas.scheduler.Stop()
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *AnnotationCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *AnnotationCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pointerContent wraps the raster and translates mouse events into
// session calls.
type pointerContent struct {
	widget.BaseWidget
	canvas *AnnotationCanvas
	raster *fynecanvas.Raster
}

func newPointerContent(ac *AnnotationCanvas, raster *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{canvas: ac, raster: raster}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.raster)
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

func (pc *pointerContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.canvas.pointerDown(pc.canvas.toImage(ev.Position))
}

func (pc *pointerContent) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.canvas.pointerUp(pc.canvas.toImage(ev.Position))
}

func (pc *pointerContent) MouseIn(ev *desktop.MouseEvent) {}

func (pc *pointerContent) MouseMoved(ev *desktop.MouseEvent) {
	pc.canvas.pointerMove(pc.canvas.toImage(ev.Position))
}

func (pc *pointerContent) MouseOut() {}

func (pc *pointerContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		pc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		pc.canvas.ZoomOut()
	}
}

// Cursor implements desktop.Cursorable using the session's cursor hint.
func (pc *pointerContent) Cursor() desktop.Cursor {
	switch pc.canvas.cursor {
	case annotation.CursorCrosshair:
		return desktop.CrosshairCursor
	case annotation.CursorResizeNS:
		return desktop.VResizeCursor
	case annotation.CursorResizeEW:
		return desktop.HResizeCursor
	case annotation.CursorMove, annotation.CursorGrab,
		annotation.CursorResizeNWSE, annotation.CursorResizeNESW:
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}
