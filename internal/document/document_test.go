package document

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/terravidhal/proto-annot/internal/annotation"
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

func storedAnnotation(id string, b geometry.Rect) annotation.Annotation {
	bb := b
	a := annotation.Annotation{ID: id, Kind: annotation.KindRectangle,
		Label: "part", Color: "#336699", ScaleX: 1, ScaleY: 1, Bounds: &bb}
	return a.SyncPoints()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	s := NewStore()
	s.SetImagePath("board.png")
	s.Upsert(storedAnnotation("a1", geometry.NewRect(10, 10, 50, 30)))
	s.Upsert(storedAnnotation("a2", geometry.NewRect(70, 20, 25, 25)))
	if err := s.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := NewStore()
	if err := loaded.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ImagePath() != "board.png" {
		t.Errorf("image path = %q, want board.png", loaded.ImagePath())
	}
	set := loaded.All()
	if len(set) != 2 {
		t.Fatalf("loaded %d annotations, want 2", len(set))
	}
	if set[0].ID != "a1" || set[1].ID != "a2" {
		t.Errorf("stacking order lost: %s, %s", set[0].ID, set[1].ID)
	}
	if *set[0].Bounds != geometry.NewRect(10, 10, 50, 30) {
		t.Errorf("bounds = %v, want {10 10 50 30}", *set[0].Bounds)
	}
}

func TestLoadMigratesLegacyDocument(t *testing.T) {
	// Hand-written document predating bounds and scale fields.
	legacy := `{
  "version": 1,
  "annotations": [
    {"id": "old", "type": "rectangle", "points": [{"x": 60, "y": 40}, {"x": 10, "y": 10}]},
    {"id": "ring", "type": "circle", "points": [{"x": 50, "y": 50}, {"x": 70, "y": 50}]}
  ]
}`
	path := filepath.Join(t.TempDir(), "legacy.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	if err := s.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	a, ok := s.Get("old")
	if !ok {
		t.Fatal("legacy annotation missing after load")
	}
	if a.Bounds == nil {
		t.Fatal("load must derive bounds for legacy annotations")
	}
	if *a.Bounds != geometry.NewRect(10, 10, 50, 30) {
		t.Errorf("derived bounds = %v, want {10 10 50 30}", *a.Bounds)
	}
	if a.ScaleX != 1 || a.ScaleY != 1 {
		t.Errorf("scales = (%v,%v), want defaults of 1", a.ScaleX, a.ScaleY)
	}

	// Legacy circles store center + rim point; the derived box spans the
	// full diameter.
	c, ok := s.Get("ring")
	if !ok {
		t.Fatal("legacy circle missing after load")
	}
	if c.Bounds == nil {
		t.Fatal("load must derive bounds for legacy circles")
	}
	if *c.Bounds != geometry.NewRect(30, 30, 40, 40) {
		t.Errorf("circle bounds = %v, want {30 30 40 40}", *c.Bounds)
	}
}

func TestLoadErrors(t *testing.T) {
	s := NewStore()
	if err := s.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("loading a missing file must fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(bad); err == nil {
		t.Error("loading malformed JSON must fail")
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	s := NewStore()
	s.Upsert(storedAnnotation("a", geometry.NewRect(0, 0, 10, 10)))
	s.SetSelection("a")
	s.SetHidden("a", true)

	s.Remove("a")
	if s.Selection() != "" {
		t.Errorf("selection = %q after removing it, want cleared", s.Selection())
	}
	if len(s.Hidden()) != 0 {
		t.Error("hidden flag survived removal")
	}
	if _, ok := s.Get("a"); ok {
		t.Error("annotation still present after Remove")
	}
}

func TestEvents(t *testing.T) {
	s := NewStore()

	var changed, selected int
	s.On(EventAnnotationsChanged, func(interface{}) { changed++ })
	s.On(EventSelectionChanged, func(interface{}) { selected++ })

	s.Upsert(storedAnnotation("a", geometry.NewRect(0, 0, 10, 10)))
	s.Replace(s.All())
	if changed != 2 {
		t.Errorf("annotation events = %d, want 2", changed)
	}

	s.SetSelection("a")
	s.SetSelection("a") // unchanged, no event
	s.SetSelection("")
	if selected != 2 {
		t.Errorf("selection events = %d, want 2", selected)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	// Mutations come from UI event handlers while the paint path reads;
	// run both under the race detector.
	s := NewStore()
	s.On(EventAnnotationsChanged, func(interface{}) { _ = s.Selection() })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			a := storedAnnotation("a", geometry.NewRect(float64(i), 0, 10, 10))
			s.Upsert(a)
			s.SetSelection("a")
			s.SetHidden("a", i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = s.All()
			_, _ = s.Get("a")
			_ = s.Hidden()
			_ = s.ImagePath()
		}
	}()
	wg.Wait()

	if got := len(s.All()); got != 1 {
		t.Errorf("store holds %d annotations, want 1", got)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore()
	s.Upsert(storedAnnotation("a", geometry.NewRect(0, 0, 10, 10)))

	set := s.All()
	set[0].Bounds.X = 99
	got, _ := s.Get("a")
	if got.Bounds.X == 99 {
		t.Error("All leaked internal annotation memory")
	}

	h := s.Hidden()
	h["a"] = true
	if s.Hidden()["a"] {
		t.Error("Hidden leaked the internal map")
	}
}
