// Package colorutil provides shared color utilities for the annotation
// application: hex parsing, label-derived colors, and alpha variants.
package colorutil

import (
	"hash/fnv"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Common colors used by the renderer.
var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Highlight = color.RGBA{R: 0, G: 153, B: 255, A: 255} // selected-shape stroke
)

// FromLabel derives a stable hex color from an annotation label. The label
// hash picks a hue; saturation and value are fixed so every label maps to
// a readable, saturated stroke color. An empty label gets a neutral gray.
func FromLabel(label string) string {
	if label == "" {
		return "#808080"
	}
	h := fnv.New32a()
	h.Write([]byte(label))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsv(hue, 0.72, 0.86).Hex()
}

// ParseHex parses a "#rrggbb" hex color. Invalid input falls back to gray
// rather than failing, so a corrupted document still renders.
func ParseHex(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// WithAlpha returns the color with the given alpha, premultiplied the way
// image/color.RGBA expects.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	f := uint32(alpha)
	return color.RGBA{
		R: uint8(uint32(c.R) * f / 255),
		G: uint8(uint32(c.G) * f / 255),
		B: uint8(uint32(c.B) * f / 255),
		A: alpha,
	}
}
