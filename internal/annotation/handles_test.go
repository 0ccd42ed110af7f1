package annotation

import (
	"testing"

	"github.com/terravidhal/proto-annot/pkg/geometry"
)

func TestHandlesForLayout(t *testing.T) {
	b := geometry.NewRect(10, 20, 40, 60)
	hs := HandlesFor(b)
	if len(hs) != 9 {
		t.Fatalf("HandlesFor returned %d handles, want 9", len(hs))
	}

	want := []struct {
		pos  HandlePosition
		kind HandleKind
		pt   geometry.Point2D
	}{
		{HandleNW, HandleCorner, geometry.Point2D{X: 10, Y: 20}},
		{HandleNE, HandleCorner, geometry.Point2D{X: 50, Y: 20}},
		{HandleSW, HandleCorner, geometry.Point2D{X: 10, Y: 80}},
		{HandleSE, HandleCorner, geometry.Point2D{X: 50, Y: 80}},
		{HandleN, HandleEdge, geometry.Point2D{X: 30, Y: 20}},
		{HandleS, HandleEdge, geometry.Point2D{X: 30, Y: 80}},
		{HandleE, HandleEdge, geometry.Point2D{X: 50, Y: 50}},
		{HandleW, HandleEdge, geometry.Point2D{X: 10, Y: 50}},
		{HandleRotate, HandleRotation, geometry.Point2D{X: 30, Y: 20 - RotationHandleOffset}},
	}
	for i, w := range want {
		h := hs[i]
		if h.Position != w.pos || h.Kind != w.kind || h.Point != w.pt {
			t.Errorf("handle %d = {%v %v %v}, want {%v %v %v}",
				i, h.Position, h.Kind, h.Point, w.pos, w.kind, w.pt)
		}
	}
}

func TestCursorFor(t *testing.T) {
	cases := map[HandlePosition]string{
		HandleNW:     CursorResizeNWSE,
		HandleSE:     CursorResizeNWSE,
		HandleNE:     CursorResizeNESW,
		HandleSW:     CursorResizeNESW,
		HandleN:      CursorResizeNS,
		HandleS:      CursorResizeNS,
		HandleE:      CursorResizeEW,
		HandleW:      CursorResizeEW,
		HandleRotate: CursorGrab,
	}
	for pos, want := range cases {
		if got := CursorFor(pos); got != want {
			t.Errorf("CursorFor(%s) = %s, want %s", pos, got, want)
		}
	}
	if got := CursorFor(HandlePosition("bogus")); got != CursorDefault {
		t.Errorf("CursorFor(bogus) = %s, want %s", got, CursorDefault)
	}
}
