package export

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/terravidhal/proto-annot/internal/annotation"
	"github.com/terravidhal/proto-annot/pkg/geometry"
)

func boxed(id, label string, b geometry.Rect, conf *float64) annotation.Annotation {
	bb := b
	a := annotation.Annotation{ID: id, Kind: annotation.KindRectangle,
		Label: label, Color: "#ff0000", ScaleX: 1, ScaleY: 1,
		Bounds: &bb, Confidence: conf}
	return a.SyncPoints()
}

func conf(v float64) *float64 { return &v }

func TestSummarize(t *testing.T) {
	set := []annotation.Annotation{
		boxed("1", "cat", geometry.NewRect(0, 0, 10, 10), conf(0.8)),
		boxed("2", "cat", geometry.NewRect(0, 0, 20, 10), conf(0.6)),
		boxed("3", "dog", geometry.NewRect(0, 0, 30, 10), nil),
		boxed("4", "", geometry.NewRect(0, 0, 40, 10), nil),
	}
	got := Summarize(set)
	if len(got) != 3 {
		t.Fatalf("got %d labels, want 3", len(got))
	}
	// Sorted by label: (unlabeled), cat, dog.
	if got[0].Label != "(unlabeled)" || got[1].Label != "cat" || got[2].Label != "dog" {
		t.Fatalf("label order = %s, %s, %s", got[0].Label, got[1].Label, got[2].Label)
	}

	cat := got[1]
	if cat.Count != 2 {
		t.Errorf("cat count = %d, want 2", cat.Count)
	}
	if math.Abs(cat.MeanConfidence-0.7) > 1e-9 {
		t.Errorf("cat mean confidence = %v, want 0.7", cat.MeanConfidence)
	}
	if cat.StdConfidence <= 0 {
		t.Errorf("cat confidence σ = %v, want > 0", cat.StdConfidence)
	}
	if math.Abs(cat.MeanArea-150) > 1e-9 {
		t.Errorf("cat mean area = %v, want 150", cat.MeanArea)
	}

	dog := got[2]
	if dog.MeanConfidence != 0 || dog.StdConfidence != 0 {
		t.Errorf("dog without confidences = (%v, %v), want zeros", dog.MeanConfidence, dog.StdConfidence)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); len(got) != 0 {
		t.Errorf("Summarize(nil) = %v, want empty", got)
	}
}

func TestFormatSummaryHeader(t *testing.T) {
	out := FormatSummary(Summarize([]annotation.Annotation{
		boxed("1", "cat", geometry.NewRect(0, 0, 10, 10), nil),
	}))
	if out == "" {
		t.Fatal("empty summary output")
	}
	if got := len(strings.Split(strings.TrimRight(out, "\n"), "\n")); got != 2 {
		t.Errorf("summary has %d lines, want header + 1 row", got)
	}
}

func TestSnapshotBurnsAnnotations(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range src.Pix {
		src.Pix[i] = 255 // white background
	}

	set := []annotation.Annotation{boxed("1", "cat", geometry.NewRect(20, 20, 40, 40), nil)}
	out := Snapshot(src, set, nil, false)
	if out == nil {
		t.Fatal("snapshot of a ready image returned nil")
	}
	if out.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("snapshot bounds = %v", out.Bounds())
	}

	// The stroked box edge must differ from the white source.
	edge := out.RGBAAt(20, 40)
	if edge == (color.RGBA{255, 255, 255, 255}) {
		t.Error("annotation stroke missing from snapshot")
	}
	// Far corner stays untouched.
	if got := out.RGBAAt(90, 90); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel changed: %v", got)
	}
}

func TestSnapshotSkipsHidden(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	set := []annotation.Annotation{boxed("h", "cat", geometry.NewRect(10, 10, 20, 20), nil)}
	out := Snapshot(src, set, map[string]bool{"h": true}, false)
	if got := out.RGBAAt(10, 20); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("hidden annotation was rendered: %v", got)
	}
}

func TestSnapshotNilSource(t *testing.T) {
	if out := Snapshot(nil, nil, nil, false); out != nil {
		t.Error("snapshot of a nil source must be nil")
	}
}
