// Package interaction drives the pointer-event state machine of the
// annotation canvas: pointer-down decides the mode (select, transform,
// drag, or draw), pointer-move feeds the transform engine or the draw-in-
// progress shape, and pointer-up commits the result.
package interaction

import (
	"github.com/terravidhal/proto-annot/internal/annotation"
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

// Tool selects what a pointer gesture means.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
)

// phase is the explicit interaction state. The per-state data (draft,
// snapshot, handle, start point) lives in the session next to it; only the
// fields belonging to the current phase are meaningful, and every phase
// transition resets them. This replaces the usual scatter of independent
// booleans that lets two modes be active at once.
type phase int

const (
	phaseIdle phase = iota
	phaseDrawing
	phaseTransforming
	phaseDragging
)

// Input carries everything a pointer event needs: the event position
// already converted to image space, the active tool, and the caller-owned
// annotation state. The session copies what it keeps; it never retains a
// reference into the caller's slice.
type Input struct {
	Point       geometry.Point2D
	Tool        Tool
	Label       string
	Annotations []annotation.Annotation
	Selection   string
	Hidden      map[string]bool
	Scale       float64 // view zoom, used to convert handle tolerance to image units
}

// Result is what a pointer event produced. Annotations is the full updated
// set (value semantics: the caller replaces its store, last writer per id
// wins). Draft is a shape still being drawn, rendered but not yet part of
// the set.
type Result struct {
	Annotations []annotation.Annotation
	Draft       *annotation.Annotation
	Selection   string
	Cursor      string
	Changed     bool
}

// Session is the ephemeral interaction state between pointer-down and
// pointer-up. All methods run synchronously on the UI event callback.
type Session struct {
	phase    phase
	draft    annotation.Annotation
	snapshot annotation.Annotation
	handle   annotation.Handle
	start    geometry.Point2D
	working  []annotation.Annotation
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// Active reports whether a gesture is in progress.
func (s *Session) Active() bool {
	return s.phase != phaseIdle
}

// PointerDown starts a gesture. With a draw tool it opens a draft shape;
// with the select tool it picks a handle of the current selection, then
// the topmost shape under the pointer, then clears the selection.
func (s *Session) PointerDown(in Input) Result {
	s.reset()
	s.working = cloneSet(in.Annotations)
	s.start = in.Point

	switch in.Tool {
	case ToolRectangle, ToolCircle:
		kind := annotation.KindRectangle
		if in.Tool == ToolCircle {
			kind = annotation.KindCircle
		}
		s.phase = phaseDrawing
		s.draft = annotation.New(kind, in.Label, in.Point)
		return s.result(in.Selection, annotation.CursorCrosshair)

	case ToolSelect:
		if sel, ok := find(s.working, in.Selection); ok && sel.Bounds != nil && !in.Hidden[sel.ID] {
			if h := annotation.HandleAt(in.Point, *sel.Bounds, tolerance(in.Scale)); h != nil {
				s.phase = phaseTransforming
				s.handle = *h
				s.snapshot = sel.Clone()
				return s.result(in.Selection, annotation.CursorFor(h.Position))
			}
		}
		if hit, ok := topmostHit(s.working, in.Point, in.Hidden); ok {
			s.phase = phaseDragging
			s.snapshot = hit.Clone()
			return s.result(hit.ID, annotation.CursorMove)
		}
		return s.result("", annotation.CursorDefault)
	}
	return s.result(in.Selection, annotation.CursorDefault)
}

// PointerMove advances the gesture. Events arriving while idle (for
// example a move straight after a discarded click) are ignored.
func (s *Session) PointerMove(in Input) Result {
	switch s.phase {
	case phaseDrawing:
		b := geometry.RectFromCorners(s.start, in.Point)
		s.draft.Points = []geometry.Point2D{s.start, in.Point}
		s.draft.Bounds = &b
		return s.result(in.Selection, annotation.CursorCrosshair)

	case phaseTransforming:
		updated := annotation.ApplyTransform(s.snapshot, s.handle, s.start, in.Point)
		upsert(&s.working, updated)
		return s.result(in.Selection, annotation.CursorFor(s.handle.Position))

	case phaseDragging:
		updated := s.snapshot.Translate(in.Point.Sub(s.start))
		upsert(&s.working, updated)
		return s.result(in.Selection, annotation.CursorMove)
	}
	return s.result(in.Selection, s.hoverCursor(in))
}

// PointerUp ends the gesture. A drawn shape is committed only when its
// final bounds reach the minimum visible size; otherwise the whole gesture
// was a click and is discarded.
func (s *Session) PointerUp(in Input) Result {
	defer s.reset()

	switch s.phase {
	case phaseDrawing:
		draft := s.draft
		if b, ok := annotation.BoundsFromPoints(draft.Points); ok {
			draft.Bounds = &b
		}
		if !draft.CommitSize() {
			return s.result(in.Selection, s.hoverCursor(in))
		}
		draft = draft.EnsureBounds().SyncPoints()
		upsert(&s.working, draft)
		res := s.result(draft.ID, annotation.CursorDefault)
		res.Changed = true
		return res

	case phaseTransforming, phaseDragging:
		res := s.result(in.Selection, s.hoverCursor(in))
		res.Changed = true
		return res
	}
	return s.result(in.Selection, s.hoverCursor(in))
}

// Cursor returns the hover cursor hint for the given position without
// changing any state.
func (s *Session) Cursor(in Input) string {
	if s.phase == phaseTransforming {
		return annotation.CursorFor(s.handle.Position)
	}
	if s.phase == phaseDragging {
		return annotation.CursorMove
	}
	if s.phase == phaseDrawing {
		return annotation.CursorCrosshair
	}
	return s.hoverCursor(in)
}

func (s *Session) hoverCursor(in Input) string {
	switch in.Tool {
	case ToolRectangle, ToolCircle:
		return annotation.CursorCrosshair
	}
	set := s.working
	if set == nil {
		set = in.Annotations
	}
	if sel, ok := find(set, in.Selection); ok && sel.Bounds != nil && !in.Hidden[sel.ID] {
		if h := annotation.HandleAt(in.Point, *sel.Bounds, tolerance(in.Scale)); h != nil {
			return annotation.CursorFor(h.Position)
		}
	}
	if _, ok := topmostHit(set, in.Point, in.Hidden); ok {
		return annotation.CursorMove
	}
	return annotation.CursorDefault
}

func (s *Session) result(selection, cursor string) Result {
	res := Result{
		Annotations: s.working,
		Selection:   selection,
		Cursor:      cursor,
	}
	if s.phase == phaseDrawing {
		d := s.draft.Clone()
		res.Draft = &d
	}
	return res
}

func (s *Session) reset() {
	s.phase = phaseIdle
	s.draft = annotation.Annotation{}
	s.snapshot = annotation.Annotation{}
	s.handle = annotation.Handle{}
}

// tolerance converts the screen-space handle tolerance into image units.
func tolerance(scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return annotation.HandleTolerance / scale
}

// topmostHit returns the hit annotation drawn last, matching the visual
// stacking order of the renderer.
func topmostHit(set []annotation.Annotation, p geometry.Point2D, hidden map[string]bool) (annotation.Annotation, bool) {
	for i := len(set) - 1; i >= 0; i-- {
		if hidden[set[i].ID] {
			continue
		}
		if annotation.HitTest(p, set[i]) {
			return set[i], true
		}
	}
	return annotation.Annotation{}, false
}

func find(set []annotation.Annotation, id string) (annotation.Annotation, bool) {
	if id == "" {
		return annotation.Annotation{}, false
	}
	for _, a := range set {
		if a.ID == id {
			return a, true
		}
	}
	return annotation.Annotation{}, false
}

func upsert(set *[]annotation.Annotation, a annotation.Annotation) {
	for i := range *set {
		if (*set)[i].ID == a.ID {
			(*set)[i] = a
			return
		}
	}
	*set = append(*set, a)
}

func cloneSet(set []annotation.Annotation) []annotation.Annotation {
	out := make([]annotation.Annotation, len(set))
	for i, a := range set {
		out[i] = a.Clone()
	}
	return out
}
