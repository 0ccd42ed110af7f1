package export

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/terravidhal/proto-annot/internal/annotation"
)

// LabelSummary aggregates the annotations sharing one label.
type LabelSummary struct {
	Label          string  `json:"label"`
	Count          int     `json:"count"`
	MeanConfidence float64 `json:"meanConfidence"`
	StdConfidence  float64 `json:"stdConfidence"`
	MeanArea       float64 `json:"meanArea"`
}

// Summarize groups annotations by label and computes count, confidence
// mean/σ (over the annotations that carry a confidence), and mean bounds
// area. Results are sorted by label for stable output.
func Summarize(set []annotation.Annotation) []LabelSummary {
	type bucket struct {
		confidences []float64
		areas       []float64
		count       int
	}
	buckets := make(map[string]*bucket)
	for _, a := range set {
		label := a.Label
		if label == "" {
			label = "(unlabeled)"
		}
		b, ok := buckets[label]
		if !ok {
			b = &bucket{}
			buckets[label] = b
		}
		b.count++
		if a.Confidence != nil {
			b.confidences = append(b.confidences, *a.Confidence)
		}
		if a.Bounds != nil {
			b.areas = append(b.areas, a.Bounds.Width*a.Bounds.Height)
		}
	}

	out := make([]LabelSummary, 0, len(buckets))
	for label, b := range buckets {
		s := LabelSummary{Label: label, Count: b.count}
		if len(b.confidences) > 0 {
			s.MeanConfidence = stat.Mean(b.confidences, nil)
			if len(b.confidences) > 1 {
				s.StdConfidence = stat.StdDev(b.confidences, nil)
			}
		}
		if len(b.areas) > 0 {
			s.MeanArea = stat.Mean(b.areas, nil)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// FormatSummary renders the summaries as an aligned text table.
func FormatSummary(summaries []LabelSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-20s %6s %10s %10s %12s\n", "label", "count", "conf mean", "conf std", "mean area")
	for _, s := range summaries {
		fmt.Fprintf(&sb, "%-20s %6d %10.3f %10.3f %12.1f\n",
			s.Label, s.Count, s.MeanConfidence, s.StdConfidence, s.MeanArea)
	}
	return sb.String()
}
