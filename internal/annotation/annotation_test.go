package annotation

import (
	"testing"

	"github.com/terravidhal/proto-annot/pkg/geometry"
)

func TestPointsBoundsRoundTrip(t *testing.T) {
	cases := []geometry.Rect{
		{X: 0, Y: 0, Width: 10, Height: 10},
		{X: -5, Y: 3.5, Width: 120, Height: 0.25},
		{X: 1000, Y: -1000, Width: 1, Height: 1},
	}
	for _, b := range cases {
		pts := PointsFromBounds(b)
		if len(pts) != 2 {
			t.Fatalf("PointsFromBounds(%v) returned %d points", b, len(pts))
		}
		back, ok := BoundsFromPoints(pts)
		if !ok {
			t.Fatalf("BoundsFromPoints failed for %v", pts)
		}
		if back != b {
			t.Errorf("round trip of %v gave %v", b, back)
		}
	}
}

func TestBoundsFromPointsTooFew(t *testing.T) {
	if _, ok := BoundsFromPoints([]geometry.Point2D{{X: 1, Y: 1}}); ok {
		t.Error("one point must not produce bounds")
	}
	if _, ok := BoundsFromPoints(nil); ok {
		t.Error("nil points must not produce bounds")
	}
}

func TestEnsureBoundsMigration(t *testing.T) {
	// A legacy annotation: raw points, no bounds, corners unordered.
	legacy := Annotation{
		ID:     "legacy",
		Kind:   KindRectangle,
		Points: []geometry.Point2D{{X: 60, Y: 40}, {X: 10, Y: 10}},
	}
	migrated := legacy.EnsureBounds()
	if migrated.Bounds == nil {
		t.Fatal("EnsureBounds did not derive bounds")
	}
	want := geometry.NewRect(10, 10, 50, 30)
	if *migrated.Bounds != want {
		t.Errorf("derived bounds = %v, want %v", *migrated.Bounds, want)
	}

	// Existing bounds win over points, but get normalized.
	b := geometry.Rect{X: 5, Y: 5, Width: -3, Height: 4}
	withBounds := Annotation{ID: "x", Kind: KindCircle, Bounds: &b}
	out := withBounds.EnsureBounds()
	if out.Bounds.Width < 0 {
		t.Errorf("EnsureBounds kept a negative width: %v", out.Bounds)
	}
}

func TestEnsureBoundsLegacyCircle(t *testing.T) {
	// Boundsless circle points are center + rim, not corners: the derived
	// box must span the full diameter even for an axis-aligned rim point.
	circle := Annotation{
		ID:     "c",
		Kind:   KindCircle,
		Points: []geometry.Point2D{{X: 50, Y: 50}, {X: 70, Y: 50}},
	}
	migrated := circle.EnsureBounds()
	if migrated.Bounds == nil {
		t.Fatal("EnsureBounds did not derive bounds")
	}
	want := geometry.NewRect(30, 30, 40, 40)
	if *migrated.Bounds != want {
		t.Fatalf("circle bounds = %v, want %v", *migrated.Bounds, want)
	}
	// A point inside the original circle must still hit after migration.
	if !HitTest(geometry.Point2D{X: 50, Y: 31}, migrated) {
		t.Error("point inside the circle stopped hitting after migration")
	}
}

func TestSyncPoints(t *testing.T) {
	b := geometry.NewRect(2, 3, 10, 20)
	a := Annotation{ID: "a", Kind: KindRectangle, Bounds: &b}
	a = a.SyncPoints()
	want := []geometry.Point2D{{X: 2, Y: 3}, {X: 12, Y: 23}}
	if len(a.Points) != 2 || a.Points[0] != want[0] || a.Points[1] != want[1] {
		t.Errorf("SyncPoints = %v, want %v", a.Points, want)
	}
}

func TestTranslate(t *testing.T) {
	b := geometry.NewRect(0, 0, 10, 10)
	a := Annotation{ID: "a", Kind: KindRectangle, Bounds: &b}
	moved := a.Translate(geometry.Point2D{X: 5, Y: -2})
	if moved.Bounds.X != 5 || moved.Bounds.Y != -2 {
		t.Errorf("Translate origin = (%v,%v), want (5,-2)", moved.Bounds.X, moved.Bounds.Y)
	}
	if moved.Points[1] != (geometry.Point2D{X: 15, Y: 8}) {
		t.Errorf("Translate bottom-right = %v, want (15,8)", moved.Points[1])
	}
	// Original untouched.
	if a.Bounds.X != 0 {
		t.Error("Translate mutated its receiver")
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := geometry.NewRect(0, 0, 10, 10)
	conf := 0.5
	a := Annotation{ID: "a", Kind: KindRectangle, Bounds: &b, Confidence: &conf,
		Points: PointsFromBounds(b)}
	c := a.Clone()
	c.Bounds.X = 99
	c.Points[0].X = 99
	*c.Confidence = 0.9
	if a.Bounds.X == 99 || a.Points[0].X == 99 || *a.Confidence == 0.9 {
		t.Error("Clone shares memory with the original")
	}
}

func TestCommitSize(t *testing.T) {
	small := geometry.NewRect(0, 0, 4.9, 100)
	big := geometry.NewRect(0, 0, 5, 5)
	if (Annotation{Kind: KindRectangle, Bounds: &small}).CommitSize() {
		t.Error("4.9-wide shape must not commit")
	}
	if !(Annotation{Kind: KindRectangle, Bounds: &big}).CommitSize() {
		t.Error("5x5 shape must commit")
	}
	if (Annotation{Kind: KindRectangle}).CommitSize() {
		t.Error("shape without geometry must not commit")
	}
}

func TestNewDerivesColor(t *testing.T) {
	a := New(KindCircle, "vehicle", geometry.Point2D{X: 1, Y: 2})
	if a.ID == "" {
		t.Error("New must assign an id")
	}
	if a.Color == "" {
		t.Error("New must derive a color from the label")
	}
	if a.ScaleX != 1 || a.ScaleY != 1 {
		t.Errorf("reserved scales = (%v,%v), want (1,1)", a.ScaleX, a.ScaleY)
	}
	b := a
	b.SetLabel("person")
	if b.Color == a.Color {
		t.Log("color collision between labels; acceptable but unexpected")
	}
}

func TestKindValid(t *testing.T) {
	if !KindRectangle.Valid() || !KindCircle.Valid() {
		t.Error("built-in kinds must be valid")
	}
	if Kind("triangle").Valid() {
		t.Error("unknown kind must be invalid")
	}
}
