package colorutil

import (
	"testing"
)

func TestFromLabelStable(t *testing.T) {
	a := FromLabel("defect")
	b := FromLabel("defect")
	if a != b {
		t.Errorf("FromLabel not deterministic: %s vs %s", a, b)
	}
	if FromLabel("") != "#808080" {
		t.Errorf("empty label = %s, want neutral gray", FromLabel(""))
	}
}

func TestFromLabelParses(t *testing.T) {
	hex := FromLabel("anything")
	c := ParseHex(hex)
	if c.A != 255 {
		t.Errorf("derived color alpha = %d, want 255", c.A)
	}
}

func TestParseHexFallback(t *testing.T) {
	c := ParseHex("not-a-color")
	if c.R != 128 || c.G != 128 || c.B != 128 {
		t.Errorf("invalid hex should fall back to gray, got %v", c)
	}
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(White, 128)
	if c.A != 128 {
		t.Errorf("alpha = %d, want 128", c.A)
	}
	if c.R != 128 {
		t.Errorf("premultiplied R = %d, want 128", c.R)
	}
}
