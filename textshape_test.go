package blit

import (
	"testing"

	"github.com/go-text/typesetting/di"
)

func TestBaseDirection(t *testing.T) {
	tests := []struct {
		text string
		want di.Direction
	}{
		{"hello", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
		{"مرحبا", di.DirectionRTL},
		{"", di.DirectionLTR},
		{"   ", di.DirectionLTR},
		{"123", di.DirectionLTR},
	}
	for _, tt := range tests {
		if got := baseDirection(tt.text); got != tt.want {
			t.Errorf("baseDirection(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestShaperMeasureRTL(t *testing.T) {
	d := defaultFontDesc()
	w, h := sharedShaper.Measure("שלום עולם", d)
	if w <= 0 || h <= 0 {
		t.Fatalf("Measure of RTL text = (%v, %v), want positive dimensions", w, h)
	}
}
