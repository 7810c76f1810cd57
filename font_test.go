package blit

import "testing"

func TestComposeFontDesc(t *testing.T) {
	tests := []struct {
		style, weight string
		size          float64
		family        string
		want          string
	}{
		{"", "", 16, "", "normal normal 16px Arial"},
		{"italic", "bold", 24, "Helvetica", "italic bold 24px Helvetica"},
		{"normal", "normal", 12.5, "Courier New", "normal normal 12.5px Courier New"},
	}
	for _, tt := range tests {
		if got := composeFontDesc(tt.style, tt.weight, tt.size, tt.family); got != tt.want {
			t.Errorf("composeFontDesc(%q, %q, %v, %q) = %q, want %q",
				tt.style, tt.weight, tt.size, tt.family, got, tt.want)
		}
	}
}

func TestParseFontDesc(t *testing.T) {
	tests := []struct {
		desc string
		want fontDesc
	}{
		{
			"normal normal 16px Arial",
			fontDesc{Style: "normal", Weight: "normal", SizePx: 16, Family: "Arial"},
		},
		{
			"italic bold 24px Helvetica",
			fontDesc{Style: "italic", Weight: "bold", SizePx: 24, Family: "Helvetica"},
		},
		{
			"bold 14px Courier New",
			fontDesc{Style: "normal", Weight: "bold", SizePx: 14, Family: "Courier New"},
		},
		{
			"700 20px Arial",
			fontDesc{Style: "normal", Weight: "bold", SizePx: 20, Family: "Arial"},
		},
		{
			"oblique 10px serif",
			fontDesc{Style: "italic", Weight: "normal", SizePx: 10, Family: "serif"},
		},
		// Malformed size: defaults survive.
		{
			"bold huge Arial",
			fontDesc{Style: "normal", Weight: "bold", SizePx: 16, Family: "Arial"},
		},
		{
			"",
			fontDesc{Style: "normal", Weight: "normal", SizePx: 16, Family: "Arial"},
		},
	}
	for _, tt := range tests {
		if got := parseFontDesc(tt.desc); got != tt.want {
			t.Errorf("parseFontDesc(%q) = %+v, want %+v", tt.desc, got, tt.want)
		}
	}
}

func TestParseComposeRoundTrip(t *testing.T) {
	desc := composeFontDesc("italic", "bold", 18, "Verdana")
	got := parseFontDesc(desc)
	want := fontDesc{Style: "italic", Weight: "bold", SizePx: 18, Family: "Verdana"}
	if got != want {
		t.Errorf("round trip = %+v", got)
	}
}

func TestFontVariantSelection(t *testing.T) {
	regular := fontDesc{Style: "normal", Weight: "normal"}
	bold := fontDesc{Style: "normal", Weight: "bold"}
	italic := fontDesc{Style: "italic", Weight: "normal"}
	boldItalic := fontDesc{Style: "italic", Weight: "bold"}

	seen := map[string]bool{}
	for _, d := range []fontDesc{regular, bold, italic, boldItalic} {
		if len(d.ttf()) == 0 {
			t.Errorf("empty font data for %+v", d)
		}
		if seen[d.variant()] {
			t.Errorf("duplicate variant key %q", d.variant())
		}
		seen[d.variant()] = true
	}
}
