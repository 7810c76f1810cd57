package blit

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// textShaper measures text runs with HarfBuzz shaping via
// go-text/typesetting, so measured widths account for kerning and ligature
// substitution rather than summing naive glyph advances.
//
// Parsed font.Font objects are cached per weight/style variant (font.Font is
// read-only and safe to share). HarfbuzzShaper instances carry mutable
// buffers and are pooled instead.
type textShaper struct {
	shaperPool sync.Pool

	mu        sync.Mutex
	fontCache map[string]*font.Font
}

func newTextShaper() *textShaper {
	return &textShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fontCache: make(map[string]*font.Font),
	}
}

// sharedShaper backs every software surface in the process. Font parsing is
// expensive and the parsed fonts are immutable, so one cache suffices.
var sharedShaper = newTextShaper()

// Measure returns the advance width and line height of text rendered with
// the given descriptor, in pixels. Empty text measures as (0, 0).
func (s *textShaper) Measure(text string, d fontDesc) (width, height float64) {
	if text == "" {
		return 0, 0
	}

	f, err := s.fontFor(d)
	if err != nil {
		return 0, 0
	}

	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: baseDirection(text),
		Face:      font.NewFace(f),
		Size:      fixed.Int26_6(d.SizePx * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)

	width = float64(out.Advance) / 64

	// LineBounds.Descent is negative (below baseline).
	ascent := float64(out.LineBounds.Ascent) / 64
	descent := float64(out.LineBounds.Descent) / 64
	if descent < 0 {
		descent = -descent
	}
	gap := float64(out.LineBounds.Gap) / 64
	height = ascent + descent + gap

	return width, height
}

// fontFor returns the cached parsed font for the descriptor's variant,
// parsing the embedded TTF on first use.
func (s *textShaper) fontFor(d fontDesc) (*font.Font, error) {
	key := d.variant()

	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.fontCache[key]; ok {
		return f, nil
	}

	face, err := font.ParseTTF(bytes.NewReader(d.ttf()))
	if err != nil {
		return nil, err
	}
	s.fontCache[key] = face.Font
	return face.Font, nil
}

// baseDirection resolves the paragraph base direction of text using the
// Unicode bidi algorithm. Neutral or unresolvable text defaults to LTR.
func baseDirection(text string) di.Direction {
	p := bidi.Paragraph{}
	_, _ = p.SetString(text, bidi.DefaultDirection(bidi.Neutral))

	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script text should be split into runs by the
// caller; measurement here treats the whole string as one run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
